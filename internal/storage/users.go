package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
)

// GetOrCreateUser finds or creates a user by login name.
// Returns the user ID. Updates last_seen and display_name on each call.
func (db *DB) GetOrCreateUser(ctx context.Context, login, displayName string) (int, error) {
	var id int
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO users (login, display_name)
		VALUES ($1, $2)
		ON CONFLICT (login) DO UPDATE
			SET last_seen = NOW(), display_name = COALESCE(NULLIF($2, ''), users.display_name)
		RETURNING id
	`, login, displayName).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upserting user %q: %w", login, err)
	}
	return id, nil
}

// GetUser returns a user by id.
func (db *DB) GetUser(ctx context.Context, userID int) (models.User, error) {
	var u models.User
	err := db.Pool.QueryRow(ctx,
		`SELECT id, login, display_name, body_weight_kg FROM users WHERE id = $1`,
		userID).Scan(&u.ID, &u.Login, &u.DisplayName, &u.BodyWeightKg)
	if err != nil {
		return models.User{}, notFound(err, "user")
	}
	return u, nil
}

// UpdateBodyWeight stores the body weight used for calorie estimates.
func (db *DB) UpdateBodyWeight(ctx context.Context, userID int, kg float64) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE users SET body_weight_kg = $2 WHERE id = $1`, userID, kg)
	if err != nil {
		return fmt.Errorf("updating body weight: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	return nil
}
