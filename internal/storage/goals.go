package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const goalColumns = `id, user_id, exercise, target_weight, target_reps, target_sets,
	current_weight, current_reps, current_sets, target_date, is_completed, created_at`

// InsertGoal stores a new goal.
func (db *DB) InsertGoal(ctx context.Context, g models.GoalRecord) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO fitness_goals (id, user_id, exercise, target_weight, target_reps, target_sets,
		 current_weight, current_reps, current_sets, target_date, is_completed)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		g.ID, g.UserID, g.Exercise, g.TargetWeight, g.TargetReps, g.TargetSets,
		g.CurrentWeight, g.CurrentReps, g.CurrentSets, g.TargetDate, g.Completed)
	if err != nil {
		return fmt.Errorf("inserting goal: %w", err)
	}
	return nil
}

// UpdateGoal writes back the progress fields of a goal.
func (db *DB) UpdateGoal(ctx context.Context, g models.GoalRecord) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := updateGoalProgress(ctx, tx, g); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func updateGoalProgress(ctx context.Context, tx pgx.Tx, g models.GoalRecord) error {
	tag, err := tx.Exec(ctx,
		`UPDATE fitness_goals
		 SET current_weight = $3, current_reps = $4, current_sets = $5, is_completed = $6
		 WHERE id = $1 AND user_id = $2`,
		g.ID, g.UserID, g.CurrentWeight, g.CurrentReps, g.CurrentSets, g.Completed)
	if err != nil {
		return fmt.Errorf("updating goal %s: %w", g.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("goal %s: %w", g.ID, ErrNotFound)
	}
	return nil
}

// GetGoal returns one goal of the user.
func (db *DB) GetGoal(ctx context.Context, goalID uuid.UUID, userID int) (models.GoalRecord, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+goalColumns+` FROM fitness_goals WHERE id = $1 AND user_id = $2`,
		goalID, userID)
	g, err := scanGoal(row)
	if err != nil {
		return models.GoalRecord{}, notFound(err, "goal")
	}
	return g, nil
}

// ListGoals returns the user's goals, open goals first. A non-empty exercise
// restricts the result to that exercise.
func (db *DB) ListGoals(ctx context.Context, userID int, exercise string) ([]models.GoalRecord, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+goalColumns+`
		 FROM fitness_goals
		 WHERE user_id = $1 AND ($2 = '' OR exercise = $2)
		 ORDER BY is_completed ASC, created_at DESC`,
		userID, exercise)
	if err != nil {
		return nil, fmt.Errorf("querying goals: %w", err)
	}
	defer rows.Close()

	var result []models.GoalRecord
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

// DeleteGoal removes a goal.
func (db *DB) DeleteGoal(ctx context.Context, goalID uuid.UUID, userID int) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM fitness_goals WHERE id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("goal %s: %w", goalID, ErrNotFound)
	}
	return nil
}

func scanGoal(row pgx.Row) (models.GoalRecord, error) {
	var g models.GoalRecord
	err := row.Scan(&g.ID, &g.UserID, &g.Exercise, &g.TargetWeight, &g.TargetReps, &g.TargetSets,
		&g.CurrentWeight, &g.CurrentReps, &g.CurrentSets, &g.TargetDate, &g.Completed, &g.CreatedAt)
	return g, err
}
