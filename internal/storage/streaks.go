package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/liftlog/internal/engine"
	"github.com/jackc/pgx/v5"
)

// GetStreak returns the stored streak of the given type. A user who never
// logged anything gets a zero streak, not an error.
func (db *DB) GetStreak(ctx context.Context, userID int, streakType string) (engine.Streak, error) {
	s := engine.Streak{Type: streakType}
	err := db.Pool.QueryRow(ctx,
		`SELECT current_streak, longest_streak, last_activity_date
		 FROM workout_streaks
		 WHERE user_id = $1 AND streak_type = $2`,
		userID, streakType).Scan(&s.Current, &s.Longest, &s.LastActivity)
	if errors.Is(err, pgx.ErrNoRows) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("querying streak: %w", err)
	}
	return s, nil
}

func upsertStreak(ctx context.Context, tx pgx.Tx, userID int, s engine.Streak) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO workout_streaks (user_id, streak_type, current_streak, longest_streak, last_activity_date)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (user_id, streak_type) DO UPDATE
		 SET current_streak = EXCLUDED.current_streak,
		     longest_streak = EXCLUDED.longest_streak,
		     last_activity_date = EXCLUDED.last_activity_date`,
		userID, s.Type, s.Current, s.Longest, s.LastActivity)
	if err != nil {
		return fmt.Errorf("upserting streak: %w", err)
	}
	return nil
}
