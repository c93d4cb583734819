package models

import (
	"time"

	"github.com/claude/liftlog/internal/engine"
	"github.com/google/uuid"
)

// User is a row of the users table.
type User struct {
	ID           int     `json:"id"`
	Login        string  `json:"login"`
	DisplayName  string  `json:"display_name"`
	BodyWeightKg float64 `json:"body_weight_kg"`
}

// Workout is a stored session with its exercises.
type Workout struct {
	ID            uuid.UUID `json:"id"`
	UserID        int       `json:"user_id"`
	TotalCalories float64   `json:"total_calories"`
	CreatedAt     time.Time `json:"created_at"`
	engine.Session
}

// WorkoutSummary is a session row without its exercises.
type WorkoutSummary struct {
	ID              uuid.UUID `json:"id"`
	Date            time.Time `json:"date"`
	Name            string    `json:"name"`
	DurationMinutes float64   `json:"duration_minutes"`
	TotalCalories   float64   `json:"total_calories"`
	ExerciseCount   int       `json:"exercise_count"`
	VolumeLoad      float64   `json:"volume_load"`
}

// VolumeLoadRow is a row of the volume_loads table.
type VolumeLoadRow struct {
	UserID    int       `json:"user_id"`
	SessionID uuid.UUID `json:"session_id"`
	Exercise  string    `json:"exercise"`
	Date      time.Time `json:"date"`
	engine.VolumeSummary
}

// CalorieRow is a row of the calorie_tracking table.
type CalorieRow struct {
	UserID          int       `json:"user_id"`
	SessionID       uuid.UUID `json:"session_id"`
	Date            time.Time `json:"date"`
	WorkoutType     string    `json:"workout_type"`
	DurationMinutes float64   `json:"duration_minutes"`
	CaloriesBurned  float64   `json:"calories_burned"`
	BodyWeightKg    float64   `json:"body_weight_kg"`
}

// GoalRecord is a stored fitness goal.
type GoalRecord struct {
	ID        uuid.UUID `json:"id"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	engine.Goal
}

// LinearPlanRecord is a stored linear progression plan.
type LinearPlanRecord struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Active    bool      `json:"is_active"`
	UpdatedAt time.Time `json:"updated_at"`
	engine.LinearPlan
}

// DoublePlanRecord is a stored double progression plan.
type DoublePlanRecord struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Active    bool      `json:"is_active"`
	UpdatedAt time.Time `json:"updated_at"`
	engine.DoublePlan
}

// WorkoutCommit is everything one logged session writes. It is persisted in a
// single transaction.
type WorkoutCommit struct {
	Workout  Workout
	Volumes  []VolumeLoadRow
	Calories CalorieRow
	Streak   engine.Streak
	Goals    []GoalRecord
}

// PeriodStats aggregates sessions over a trailing window.
type PeriodStats struct {
	Period          string  `json:"period"`
	Days            int     `json:"days"`
	Sessions        int     `json:"sessions"`
	TotalCalories   float64 `json:"total_calories"`
	TotalVolume     float64 `json:"total_volume"`
	DurationMinutes float64 `json:"duration_minutes"`
	AvgCalories     float64 `json:"avg_calories"`
}
