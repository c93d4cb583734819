package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
)

// suggestWindow is how many recent entries a weight suggestion looks at.
const suggestWindow = 5

// periodDays maps period names to trailing windows. Unknown names mean a week.
var periodDays = map[string]int{
	"week":    7,
	"month":   30,
	"3months": 90,
}

// PeriodStats totals the trailing window named by period.
func (s *Service) PeriodStats(ctx context.Context, userID int, period string) (models.PeriodStats, error) {
	days, ok := periodDays[period]
	if !ok {
		period, days = "week", periodDays["week"]
	}
	stats, err := s.store.PeriodStats(ctx, userID, s.today().AddDate(0, 0, -days))
	if err != nil {
		return models.PeriodStats{}, err
	}
	stats.Period = period
	stats.Days = days
	if stats.Sessions > 0 {
		stats.AvgCalories = stats.TotalCalories / float64(stats.Sessions)
	}
	return stats, nil
}

// TrainingSummary returns per-period session and exercise volume totals.
func (s *Service) TrainingSummary(ctx context.Context, userID int, start, end time.Time, bucket string) ([]storage.TrainingSummaryPeriod, error) {
	return s.store.GetTrainingSummary(ctx, start, end, bucket, userID)
}

// DataStats returns lifetime totals.
func (s *Service) DataStats(ctx context.Context, userID int) (*storage.DataStats, error) {
	return s.store.GetDataStats(ctx, userID)
}

// VolumeLoads returns per-exercise volume rows in [start, end).
func (s *Service) VolumeLoads(ctx context.Context, userID int, exercise string, start, end time.Time) ([]models.VolumeLoadRow, error) {
	return s.store.QueryVolumeLoads(ctx, userID, strings.TrimSpace(exercise), start, end)
}

// SuggestWeight proposes the next working weight for an exercise from its
// most recent entries.
func (s *Service) SuggestWeight(ctx context.Context, userID int, exercise string) (engine.Suggestion, error) {
	exercise = strings.TrimSpace(exercise)
	if exercise == "" {
		return engine.Suggestion{}, invalidf("exercise is required")
	}
	recent, err := s.store.LatestEntries(ctx, userID, exercise, suggestWindow)
	if err != nil {
		return engine.Suggestion{}, fmt.Errorf("loading history of %q: %w", exercise, err)
	}
	return engine.Suggest(recent), nil
}

// CalorieInput is a standalone calorie estimate request. Numeric fields are
// coerced leniently.
type CalorieInput struct {
	WorkoutType     string `json:"workout_type"`
	DurationMinutes any    `json:"duration_minutes"`
	BodyWeightKg    any    `json:"body_weight_kg"`
	TotalVolume     any    `json:"total_volume"`
	SpeedKmh        any    `json:"speed_kmh"`
}

// CalorieEstimate is the result of EstimateCalories.
type CalorieEstimate struct {
	WorkoutType     string  `json:"workout_type"`
	DurationMinutes float64 `json:"duration_minutes"`
	BodyWeightKg    float64 `json:"body_weight_kg"`
	Calories        float64 `json:"calories"`
}

// EstimateCalories estimates energy for an arbitrary workout. A missing body
// weight falls back to the user's stored weight.
func (s *Service) EstimateCalories(ctx context.Context, userID int, in CalorieInput) (CalorieEstimate, error) {
	bw := engine.ParseFloat(in.BodyWeightKg, 0)
	if bw <= 0 {
		stored, err := s.bodyWeight(ctx, userID)
		if err != nil {
			return CalorieEstimate{}, fmt.Errorf("loading body weight: %w", err)
		}
		bw = stored
	}
	w := engine.Workout{
		Kind:            engine.ParseWorkoutKind(in.WorkoutType),
		DurationMinutes: engine.NormalizeDuration(engine.ParseFloat(in.DurationMinutes, s.defaults.DurationMinutes)),
		BodyWeightKg:    engine.NormalizeBodyWeight(bw),
		TotalVolume:     engine.ParseFloat(in.TotalVolume, 0),
		SpeedKmh:        engine.ParseFloat(in.SpeedKmh, 0),
	}
	return CalorieEstimate{
		WorkoutType:     w.Kind.String(),
		DurationMinutes: w.DurationMinutes,
		BodyWeightKg:    w.BodyWeightKg,
		Calories:        engine.Calories(w),
	}, nil
}
