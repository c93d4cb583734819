package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/models"
)

// LatestEntries returns up to limit logged entries of one exercise, newest
// session first. Entries of sessions on the same date are ordered by when
// they were logged, newest first.
func (db *DB) LatestEntries(ctx context.Context, userID int, exercise string, limit int) ([]engine.DatedEntry, error) {
	if limit <= 0 {
		limit = 1
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT s.date, e.position, e.exercise, e.sets
		 FROM workout_exercises e
		 JOIN workout_sessions s ON s.id = e.session_id
		 WHERE s.user_id = $1 AND e.exercise = $2
		 ORDER BY s.date DESC, s.created_at DESC, e.position DESC
		 LIMIT $3`,
		userID, exercise, limit)
	if err != nil {
		return nil, fmt.Errorf("querying entries of %q: %w", exercise, err)
	}
	defer rows.Close()

	var result []engine.DatedEntry
	for rows.Next() {
		var d engine.DatedEntry
		var raw []byte
		if err := rows.Scan(&d.Date, &d.Entry.Order, &d.Entry.Exercise, &raw); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		d.Entry.Sets = engine.DecodeSets(raw)
		result = append(result, d)
	}
	return result, rows.Err()
}

// ExerciseHistory returns the top working weight per session date for one
// exercise since the given date, oldest first.
func (db *DB) ExerciseHistory(ctx context.Context, userID int, exercise string, since time.Time) ([]engine.WeightPoint, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT date, MAX(max_weight)
		 FROM volume_loads
		 WHERE user_id = $1 AND exercise = $2 AND date >= $3
		 GROUP BY date
		 ORDER BY date ASC`,
		userID, exercise, since)
	if err != nil {
		return nil, fmt.Errorf("querying history of %q: %w", exercise, err)
	}
	defer rows.Close()

	var result []engine.WeightPoint
	for rows.Next() {
		var p engine.WeightPoint
		if err := rows.Scan(&p.Date, &p.Weight); err != nil {
			return nil, fmt.Errorf("scanning history point: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// QueryVolumeLoads retrieves per-exercise volume rows with a date in
// [start, end). An empty exercise matches all exercises.
func (db *DB) QueryVolumeLoads(ctx context.Context, userID int, exercise string, start, end time.Time) ([]models.VolumeLoadRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT user_id, session_id, exercise, date, volume_load, sets_count, reps_count, max_weight
		 FROM volume_loads
		 WHERE user_id = $1 AND ($2 = '' OR exercise = $2) AND date >= $3 AND date < $4
		 ORDER BY date DESC, exercise ASC`,
		userID, exercise, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying volume loads: %w", err)
	}
	defer rows.Close()

	var result []models.VolumeLoadRow
	for rows.Next() {
		var r models.VolumeLoadRow
		if err := rows.Scan(&r.UserID, &r.SessionID, &r.Exercise, &r.Date,
			&r.VolumeLoad, &r.SetsCount, &r.RepsCount, &r.MaxWeight); err != nil {
			return nil, fmt.Errorf("scanning volume load: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
