package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// LogResult is what logging one session produced.
type LogResult struct {
	Workout   models.Workout         `json:"workout"`
	Volumes   []models.VolumeLoadRow `json:"volume_loads"`
	Calories  float64                `json:"calories"`
	Kind      string                 `json:"workout_type"`
	Streak    engine.Streak          `json:"streak"`
	Milestone engine.Milestone       `json:"milestone"`
	Goals     []models.GoalRecord    `json:"goals_updated"`
	Duplicate bool                   `json:"duplicate,omitempty"`
}

// LogWorkout validates and stores a session and updates every metric that
// depends on it. A zero Date means today. Sessions without a valid exercise
// fail with engine.ErrNoValidExercises and leave nothing behind.
func (s *Service) LogWorkout(ctx context.Context, userID int, in engine.SessionInput, kind engine.WorkoutKind) (*LogResult, error) {
	return s.logWorkout(ctx, userID, in, kind, uuid.New())
}

func (s *Service) logWorkout(ctx context.Context, userID int, in engine.SessionInput, kind engine.WorkoutKind, id uuid.UUID) (*LogResult, error) {
	if in.Date.IsZero() {
		in.Date = s.now()
	}
	if in.DurationMinutes == nil {
		in.DurationMinutes = s.defaults.DurationMinutes
	}

	session, err := engine.PrepareSession(in)
	if err != nil {
		if errors.Is(err, engine.ErrNoValidExercises) && s.metrics != nil {
			s.metrics.CounterWorkoutsRejects.Inc()
		}
		return nil, err
	}

	bw, err := s.bodyWeight(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading body weight: %w", err)
	}
	kcal := engine.SessionCalories(session, engine.NormalizeBodyWeight(bw), kind)
	kind = engine.KindFor(kind, engine.TotalVolume(session.Exercises))

	workout := models.Workout{
		ID:            id,
		UserID:        userID,
		TotalCalories: kcal,
		CreatedAt:     s.now(),
		Session:       session,
	}

	volumes := volumeRows(userID, workout.ID, session)

	streak, err := s.store.GetStreak(ctx, userID, engine.DefaultStreakType)
	if err != nil {
		return nil, fmt.Errorf("loading streak: %w", err)
	}
	streak.Type = engine.DefaultStreakType
	// Backfilled sessions older than the last activity leave the streak alone.
	if streak.LastActivity == nil || !session.Date.Before(*streak.LastActivity) {
		streak = streak.Record(session.Date)
	}

	goals, err := s.goalsAfter(ctx, userID, session)
	if err != nil {
		return nil, err
	}

	inserted, err := s.store.SaveWorkout(ctx, models.WorkoutCommit{
		Workout: workout,
		Volumes: volumes,
		Calories: models.CalorieRow{
			UserID:          userID,
			SessionID:       workout.ID,
			Date:            session.Date,
			WorkoutType:     kind.String(),
			DurationMinutes: session.DurationMinutes,
			CaloriesBurned:  kcal,
			BodyWeightKg:    bw,
		},
		Streak: streak,
		Goals:  goals,
	})
	if err != nil {
		return nil, fmt.Errorf("saving workout: %w", err)
	}
	if !inserted {
		s.log.Info("workout already stored", "user_id", userID, "workout_id", workout.ID)
		return &LogResult{Workout: workout, Duplicate: true}, nil
	}

	if s.metrics != nil {
		s.metrics.CounterWorkoutsLogged.Inc()
	}
	s.log.Info("workout logged",
		"user_id", userID,
		"workout_id", workout.ID,
		"exercises", len(session.Exercises),
		"calories", kcal,
		"streak", streak.Current)

	return &LogResult{
		Workout:   workout,
		Volumes:   volumes,
		Calories:  kcal,
		Kind:      kind.String(),
		Streak:    streak,
		Milestone: streak.Milestone(),
		Goals:     goals,
	}, nil
}

// volumeRows turns the session's per-exercise aggregates into rows sorted by exercise.
func volumeRows(userID int, sessionID uuid.UUID, session engine.Session) []models.VolumeLoadRow {
	agg := engine.Aggregate(session.Exercises)
	rows := make([]models.VolumeLoadRow, 0, len(agg))
	for exercise, sum := range agg {
		rows = append(rows, models.VolumeLoadRow{
			UserID:        userID,
			SessionID:     sessionID,
			Exercise:      exercise,
			Date:          session.Date,
			VolumeSummary: sum,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Exercise < rows[j].Exercise })
	return rows
}

// goalsAfter re-evaluates the user's goals for exercises in the session. The
// stored latest entry competes with the new session by date; on a tie the new
// session wins.
func (s *Service) goalsAfter(ctx context.Context, userID int, session engine.Session) ([]models.GoalRecord, error) {
	inSession := make(map[string][]engine.DatedEntry)
	for _, ex := range session.Exercises {
		inSession[ex.Exercise] = append(inSession[ex.Exercise], engine.DatedEntry{Date: session.Date, Entry: ex})
	}

	all, err := s.store.ListGoals(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("loading goals: %w", err)
	}

	var updated []models.GoalRecord
	for _, g := range all {
		entries, ok := inSession[g.Exercise]
		if !ok {
			continue
		}
		history, err := s.store.LatestEntries(ctx, userID, g.Exercise, 1)
		if err != nil {
			return nil, fmt.Errorf("loading history of %q: %w", g.Exercise, err)
		}
		g.Goal = engine.Evaluate(g.Goal, append(history, entries...))
		updated = append(updated, g)
	}
	return updated, nil
}

// ListWorkouts returns session summaries with a date in [start, end).
func (s *Service) ListWorkouts(ctx context.Context, userID int, start, end time.Time) ([]models.WorkoutSummary, error) {
	return s.store.QueryWorkouts(ctx, start, end, userID)
}

// GetWorkout returns one session with its exercises.
func (s *Service) GetWorkout(ctx context.Context, userID int, id uuid.UUID) (*models.Workout, error) {
	return s.store.GetWorkout(ctx, id, userID)
}

// DeleteWorkout removes a session and its derived volume and calorie rows.
func (s *Service) DeleteWorkout(ctx context.Context, userID int, id uuid.UUID) error {
	if err := s.store.DeleteWorkout(ctx, id, userID); err != nil {
		return err
	}
	s.log.Info("workout deleted", "user_id", userID, "workout_id", id)
	return nil
}
