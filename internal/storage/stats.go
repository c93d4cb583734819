package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// DataStats holds aggregate statistics about all stored training data.
type DataStats struct {
	TotalWorkouts   int64          `json:"total_workouts"`
	TotalSets       int64          `json:"total_sets"`
	TotalVolume     float64        `json:"total_volume"`
	TotalCalories   float64        `json:"total_calories"`
	OpenGoals       int64          `json:"open_goals"`
	CompletedGoals  int64          `json:"completed_goals"`
	EarliestWorkout *time.Time     `json:"earliest_workout"`
	LatestWorkout   *time.Time     `json:"latest_workout"`
	TopExercises    []ExerciseStat `json:"top_exercises"`
}

// ExerciseStat holds lifetime totals for one exercise.
type ExerciseStat struct {
	Exercise   string  `json:"exercise"`
	Sessions   int64   `json:"sessions"`
	VolumeLoad float64 `json:"volume_load"`
	MaxWeight  float64 `json:"max_weight"`
}

// GetDataStats returns aggregate statistics for a user's stored data.
func (db *DB) GetDataStats(ctx context.Context, userID int) (*DataStats, error) {
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total_calories), 0), MIN(date), MAX(date)
		 FROM workout_sessions WHERE user_id = $1`, userID,
	).Scan(&stats.TotalWorkouts, &stats.TotalCalories, &stats.EarliestWorkout, &stats.LatestWorkout)
	if err != nil {
		return nil, fmt.Errorf("counting workouts: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(sets_count), 0), COALESCE(SUM(volume_load), 0)
		 FROM volume_loads WHERE user_id = $1`, userID,
	).Scan(&stats.TotalSets, &stats.TotalVolume)
	if err != nil {
		return nil, fmt.Errorf("summing volume: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE NOT is_completed), COUNT(*) FILTER (WHERE is_completed)
		 FROM fitness_goals WHERE user_id = $1`, userID,
	).Scan(&stats.OpenGoals, &stats.CompletedGoals)
	if err != nil {
		return nil, fmt.Errorf("counting goals: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT exercise, COUNT(DISTINCT session_id), SUM(volume_load), MAX(max_weight)
		 FROM volume_loads
		 WHERE user_id = $1
		 GROUP BY exercise
		 ORDER BY SUM(volume_load) DESC
		 LIMIT 10`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying exercise stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s ExerciseStat
		if err := rows.Scan(&s.Exercise, &s.Sessions, &s.VolumeLoad, &s.MaxWeight); err != nil {
			return nil, fmt.Errorf("scanning exercise stat: %w", err)
		}
		stats.TopExercises = append(stats.TopExercises, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

// PeriodStats totals sessions, calories, volume and time since the given date.
func (db *DB) PeriodStats(ctx context.Context, userID int, since time.Time) (models.PeriodStats, error) {
	var s models.PeriodStats
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*)::int,
		        COALESCE(SUM(total_calories), 0),
		        COALESCE(SUM(duration_minutes), 0),
		        COALESCE((SELECT SUM(volume_load) FROM volume_loads WHERE user_id = $1 AND date >= $2), 0)
		 FROM workout_sessions
		 WHERE user_id = $1 AND date >= $2`,
		userID, since).Scan(&s.Sessions, &s.TotalCalories, &s.DurationMinutes, &s.TotalVolume)
	if err != nil {
		return s, fmt.Errorf("querying period stats: %w", err)
	}
	return s, nil
}
