package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveWorkout writes a session with its exercises, volume rows, calorie row,
// streak and goal updates in one transaction. Returns false without writing
// anything if a session with the same ID already exists.
func (db *DB) SaveWorkout(ctx context.Context, c models.WorkoutCommit) (bool, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	w := c.Workout
	tag, err := tx.Exec(ctx,
		`INSERT INTO workout_sessions (id, user_id, date, name, duration_minutes, total_calories)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (id) DO NOTHING`,
		w.ID, w.UserID, w.Date, w.Name, w.DurationMinutes, w.TotalCalories)
	if err != nil {
		return false, fmt.Errorf("inserting workout session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if err := insertExercises(ctx, tx, w.ID, w.Exercises); err != nil {
		return false, err
	}
	if err := insertVolumeLoads(ctx, tx, c.Volumes); err != nil {
		return false, err
	}

	cal := c.Calories
	_, err = tx.Exec(ctx,
		`INSERT INTO calorie_tracking (session_id, user_id, date, workout_type, duration_minutes, calories_burned, body_weight_kg)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		cal.SessionID, cal.UserID, cal.Date, cal.WorkoutType, cal.DurationMinutes, cal.CaloriesBurned, cal.BodyWeightKg)
	if err != nil {
		return false, fmt.Errorf("inserting calorie row: %w", err)
	}

	if err := upsertStreak(ctx, tx, w.UserID, c.Streak); err != nil {
		return false, err
	}
	for _, g := range c.Goals {
		if err := updateGoalProgress(ctx, tx, g); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("committing workout: %w", err)
	}
	return true, nil
}

func insertExercises(ctx context.Context, tx pgx.Tx, sessionID uuid.UUID, exercises []engine.ExerciseEntry) error {
	if len(exercises) == 0 {
		return nil
	}

	query := `INSERT INTO workout_exercises (session_id, position, exercise, sets) VALUES `
	args := make([]any, 0, len(exercises)*4)
	valueStrings := make([]string, 0, len(exercises))

	for i, ex := range exercises {
		sets, err := json.Marshal(ex.Sets)
		if err != nil {
			return fmt.Errorf("encoding sets of %q: %w", ex.Exercise, err)
		}
		base := i * 4
		valueStrings = append(valueStrings, fmt.Sprintf("($%d,$%d,$%d,$%d)", base+1, base+2, base+3, base+4))
		args = append(args, sessionID, ex.Order, ex.Exercise, sets)
	}

	query += strings.Join(valueStrings, ",")
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting workout exercises: %w", err)
	}
	return nil
}

func insertVolumeLoads(ctx context.Context, tx pgx.Tx, rows []models.VolumeLoadRow) error {
	if len(rows) == 0 {
		return nil
	}

	query := `INSERT INTO volume_loads (user_id, session_id, exercise, date,
		volume_load, sets_count, reps_count, max_weight) VALUES `
	args := make([]any, 0, len(rows)*8)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 8
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8,
		))
		args = append(args, r.UserID, r.SessionID, r.Exercise, r.Date,
			r.VolumeLoad, r.SetsCount, r.RepsCount, r.MaxWeight)
	}

	query += strings.Join(valueStrings, ",")
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting volume loads: %w", err)
	}
	return nil
}

// QueryWorkouts retrieves session summaries with a date in [start, end).
func (db *DB) QueryWorkouts(ctx context.Context, start, end time.Time, userID int) ([]models.WorkoutSummary, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT s.id, s.date, s.name, s.duration_minutes, s.total_calories,
		        (SELECT COUNT(*) FROM workout_exercises e WHERE e.session_id = s.id)::int,
		        COALESCE((SELECT SUM(v.volume_load) FROM volume_loads v WHERE v.session_id = s.id), 0)
		 FROM workout_sessions s
		 WHERE s.date >= $1 AND s.date < $2 AND s.user_id = $3
		 ORDER BY s.date DESC, s.created_at DESC`,
		start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutSummary
	for rows.Next() {
		var w models.WorkoutSummary
		if err := rows.Scan(&w.ID, &w.Date, &w.Name, &w.DurationMinutes, &w.TotalCalories,
			&w.ExerciseCount, &w.VolumeLoad); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

// GetWorkout retrieves a single session by ID with its exercises.
func (db *DB) GetWorkout(ctx context.Context, workoutID uuid.UUID, userID int) (*models.Workout, error) {
	w := &models.Workout{}
	err := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, date, name, duration_minutes, total_calories, created_at
		 FROM workout_sessions
		 WHERE id = $1 AND user_id = $2`,
		workoutID, userID).Scan(&w.ID, &w.UserID, &w.Date, &w.Name, &w.DurationMinutes,
		&w.TotalCalories, &w.CreatedAt)
	if err != nil {
		return nil, notFound(err, "workout")
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT position, exercise, sets
		 FROM workout_exercises
		 WHERE session_id = $1
		 ORDER BY position ASC`,
		workoutID)
	if err != nil {
		return nil, fmt.Errorf("querying workout exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ex engine.ExerciseEntry
		var raw []byte
		if err := rows.Scan(&ex.Order, &ex.Exercise, &raw); err != nil {
			return nil, fmt.Errorf("scanning workout exercise: %w", err)
		}
		ex.Sets = engine.DecodeSets(raw)
		w.Exercises = append(w.Exercises, ex)
	}
	return w, rows.Err()
}

// DeleteWorkout removes a session. Exercises, volume and calorie rows go with
// it; streaks and goals keep their stored values.
func (db *DB) DeleteWorkout(ctx context.Context, workoutID uuid.UUID, userID int) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workout_sessions WHERE id = $1 AND user_id = $2`, workoutID, userID)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("workout %s: %w", workoutID, ErrNotFound)
	}
	return nil
}
