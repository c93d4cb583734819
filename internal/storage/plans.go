package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/jackc/pgx/v5"
)

// UpsertLinearPlan creates the active linear plan for the exercise or updates
// it in place. There is never more than one active plan per exercise.
func (db *DB) UpsertLinearPlan(ctx context.Context, p models.LinearPlanRecord) (int, error) {
	var id int
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO progression_plans (user_id, exercise, current_weight, target_weight, weight_increment, reps_increment)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (user_id, exercise) WHERE is_active DO UPDATE
		 SET current_weight = EXCLUDED.current_weight,
		     target_weight = EXCLUDED.target_weight,
		     weight_increment = EXCLUDED.weight_increment,
		     reps_increment = EXCLUDED.reps_increment,
		     updated_at = NOW()
		 RETURNING id`,
		p.UserID, p.Exercise, p.CurrentWeight, p.TargetWeight, p.WeightIncrement, p.RepsIncrement,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upserting linear plan: %w", err)
	}
	return id, nil
}

const linearColumns = `id, user_id, exercise, current_weight, target_weight,
	weight_increment, reps_increment, is_active, updated_at`

// ListLinearPlans returns the user's active linear plans by exercise.
func (db *DB) ListLinearPlans(ctx context.Context, userID int) ([]models.LinearPlanRecord, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+linearColumns+`
		 FROM progression_plans
		 WHERE user_id = $1 AND is_active
		 ORDER BY exercise ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying linear plans: %w", err)
	}
	defer rows.Close()

	var result []models.LinearPlanRecord
	for rows.Next() {
		p, err := scanLinearPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning linear plan: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// GetLinearPlan returns the active linear plan for an exercise.
func (db *DB) GetLinearPlan(ctx context.Context, userID int, exercise string) (models.LinearPlanRecord, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+linearColumns+`
		 FROM progression_plans
		 WHERE user_id = $1 AND exercise = $2 AND is_active`,
		userID, exercise)
	p, err := scanLinearPlan(row)
	if err != nil {
		return models.LinearPlanRecord{}, notFound(err, "linear plan")
	}
	return p, nil
}

func scanLinearPlan(row pgx.Row) (models.LinearPlanRecord, error) {
	var p models.LinearPlanRecord
	err := row.Scan(&p.ID, &p.UserID, &p.Exercise, &p.CurrentWeight, &p.TargetWeight,
		&p.WeightIncrement, &p.RepsIncrement, &p.Active, &p.UpdatedAt)
	return p, err
}

// UpsertDoublePlan creates the active double progression plan for the
// exercise or updates it in place. An update keeps the increase history.
func (db *DB) UpsertDoublePlan(ctx context.Context, p models.DoublePlanRecord) (int, error) {
	var id int
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO double_progressions (user_id, exercise, current_weight, min_reps, max_reps,
		 current_reps, last_increase_date, increase_count)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 ON CONFLICT (user_id, exercise) WHERE is_active DO UPDATE
		 SET current_weight = EXCLUDED.current_weight,
		     min_reps = EXCLUDED.min_reps,
		     max_reps = EXCLUDED.max_reps,
		     current_reps = EXCLUDED.current_reps,
		     updated_at = NOW()
		 RETURNING id`,
		p.UserID, p.Exercise, p.CurrentWeight, p.MinReps, p.MaxReps,
		p.CurrentReps, p.LastIncrease, p.IncreaseCount,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upserting double plan: %w", err)
	}
	return id, nil
}

// UpdateDoublePlan stores the state of an active plan after a recorded performance.
func (db *DB) UpdateDoublePlan(ctx context.Context, p models.DoublePlanRecord) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE double_progressions
		 SET current_weight = $3, current_reps = $4, last_increase_date = $5,
		     increase_count = $6, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2 AND is_active`,
		p.ID, p.UserID, p.CurrentWeight, p.CurrentReps, p.LastIncrease, p.IncreaseCount)
	if err != nil {
		return fmt.Errorf("updating double plan %d: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("double plan %d: %w", p.ID, ErrNotFound)
	}
	return nil
}

const doubleColumns = `id, user_id, exercise, current_weight, min_reps, max_reps,
	current_reps, last_increase_date, increase_count, is_active, updated_at`

// ListDoublePlans returns the user's active double progression plans.
func (db *DB) ListDoublePlans(ctx context.Context, userID int) ([]models.DoublePlanRecord, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+doubleColumns+`
		 FROM double_progressions
		 WHERE user_id = $1 AND is_active
		 ORDER BY exercise ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying double plans: %w", err)
	}
	defer rows.Close()

	var result []models.DoublePlanRecord
	for rows.Next() {
		p, err := scanDoublePlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning double plan: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// GetDoublePlan returns the active double progression plan for an exercise.
func (db *DB) GetDoublePlan(ctx context.Context, userID int, exercise string) (models.DoublePlanRecord, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+doubleColumns+`
		 FROM double_progressions
		 WHERE user_id = $1 AND exercise = $2 AND is_active`,
		userID, exercise)
	p, err := scanDoublePlan(row)
	if err != nil {
		return models.DoublePlanRecord{}, notFound(err, "double plan")
	}
	return p, nil
}

func scanDoublePlan(row pgx.Row) (models.DoublePlanRecord, error) {
	var p models.DoublePlanRecord
	err := row.Scan(&p.ID, &p.UserID, &p.Exercise, &p.CurrentWeight, &p.MinReps, &p.MaxReps,
		&p.CurrentReps, &p.LastIncrease, &p.IncreaseCount, &p.Active, &p.UpdatedAt)
	return p, err
}

// DeactivatePlan retires the active plan of the given kind ("linear" or
// "double") for an exercise. History rows are kept.
func (db *DB) DeactivatePlan(ctx context.Context, kind string, userID int, exercise string) error {
	table, err := planTable(kind)
	if err != nil {
		return err
	}
	tag, err := db.Pool.Exec(ctx,
		`UPDATE `+table+` SET is_active = FALSE, updated_at = NOW()
		 WHERE user_id = $1 AND exercise = $2 AND is_active`,
		userID, exercise)
	if err != nil {
		return fmt.Errorf("deactivating %s plan: %w", kind, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s plan for %q: %w", kind, exercise, ErrNotFound)
	}
	return nil
}

func planTable(kind string) (string, error) {
	switch kind {
	case "linear":
		return "progression_plans", nil
	case "double":
		return "double_progressions", nil
	default:
		return "", fmt.Errorf("unknown plan kind %q", kind)
	}
}
