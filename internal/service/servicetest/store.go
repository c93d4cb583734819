// Package servicetest provides an in-memory service.Store for tests.
package servicetest

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
)

// Store keeps everything in memory. It is not safe for concurrent use.
type Store struct {
	Users    map[int]models.User
	Workouts []models.Workout
	Volumes  []models.VolumeLoadRow
	Streaks  map[int]engine.Streak
	Goals    []models.GoalRecord
	Linear   []models.LinearPlanRecord
	Double   []models.DoublePlanRecord
	Imports  []storage.ImportLog
	Commits  int
	nextPlan int
}

// NewStore returns a store seeded with user 1, "local", weighing 70 kg.
func NewStore() *Store {
	return &Store{
		Users:   map[int]models.User{1: {ID: 1, Login: "local", BodyWeightKg: 70}},
		Streaks: make(map[int]engine.Streak),
	}
}

func (s *Store) GetUser(_ context.Context, userID int) (models.User, error) {
	u, ok := s.Users[userID]
	if !ok {
		return models.User{}, fmt.Errorf("user: %w", storage.ErrNotFound)
	}
	return u, nil
}

func (s *Store) UpdateBodyWeight(_ context.Context, userID int, kg float64) error {
	u, ok := s.Users[userID]
	if !ok {
		return storage.ErrNotFound
	}
	u.BodyWeightKg = kg
	s.Users[userID] = u
	return nil
}

func (s *Store) SaveWorkout(_ context.Context, c models.WorkoutCommit) (bool, error) {
	for _, w := range s.Workouts {
		if w.ID == c.Workout.ID {
			return false, nil
		}
	}
	s.Commits++
	s.Workouts = append(s.Workouts, c.Workout)
	s.Volumes = append(s.Volumes, c.Volumes...)
	s.Streaks[c.Workout.UserID] = c.Streak
	for _, g := range c.Goals {
		for i := range s.Goals {
			if s.Goals[i].ID == g.ID {
				s.Goals[i] = g
			}
		}
	}
	return true, nil
}

func (s *Store) QueryWorkouts(_ context.Context, start, end time.Time, userID int) ([]models.WorkoutSummary, error) {
	var out []models.WorkoutSummary
	for _, w := range s.Workouts {
		if w.UserID == userID && !w.Date.Before(start) && w.Date.Before(end) {
			out = append(out, models.WorkoutSummary{ID: w.ID, Date: w.Date, Name: w.Name,
				DurationMinutes: w.DurationMinutes, TotalCalories: w.TotalCalories,
				ExerciseCount: len(w.Exercises), VolumeLoad: engine.TotalVolume(w.Exercises)})
		}
	}
	return out, nil
}

func (s *Store) GetWorkout(_ context.Context, id uuid.UUID, userID int) (*models.Workout, error) {
	for _, w := range s.Workouts {
		if w.ID == id && w.UserID == userID {
			return &w, nil
		}
	}
	return nil, fmt.Errorf("workout: %w", storage.ErrNotFound)
}

func (s *Store) DeleteWorkout(_ context.Context, id uuid.UUID, userID int) error {
	for i, w := range s.Workouts {
		if w.ID == id && w.UserID == userID {
			s.Workouts = append(s.Workouts[:i], s.Workouts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("workout: %w", storage.ErrNotFound)
}

func (s *Store) LatestEntries(_ context.Context, userID int, exercise string, limit int) ([]engine.DatedEntry, error) {
	type row struct {
		entry   engine.DatedEntry
		created time.Time
	}
	var rows []row
	for _, w := range s.Workouts {
		if w.UserID != userID {
			continue
		}
		for _, ex := range w.Exercises {
			if ex.Exercise == exercise {
				rows = append(rows, row{engine.DatedEntry{Date: w.Date, Entry: ex}, w.CreatedAt})
			}
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].entry.Date.Equal(rows[j].entry.Date) {
			return rows[i].entry.Date.After(rows[j].entry.Date)
		}
		return rows[i].created.After(rows[j].created)
	})
	var out []engine.DatedEntry
	for i := 0; i < len(rows) && i < limit; i++ {
		out = append(out, rows[i].entry)
	}
	return out, nil
}

func (s *Store) ExerciseHistory(_ context.Context, userID int, exercise string, since time.Time) ([]engine.WeightPoint, error) {
	var out []engine.WeightPoint
	for _, v := range s.Volumes {
		if v.UserID == userID && v.Exercise == exercise && !v.Date.Before(since) {
			out = append(out, engine.WeightPoint{Date: v.Date, Weight: v.MaxWeight})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *Store) QueryVolumeLoads(_ context.Context, userID int, exercise string, start, end time.Time) ([]models.VolumeLoadRow, error) {
	var out []models.VolumeLoadRow
	for _, v := range s.Volumes {
		if v.UserID == userID && (exercise == "" || v.Exercise == exercise) && !v.Date.Before(start) && v.Date.Before(end) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *Store) PeriodStats(_ context.Context, userID int, since time.Time) (models.PeriodStats, error) {
	var ps models.PeriodStats
	for _, w := range s.Workouts {
		if w.UserID == userID && !w.Date.Before(since) {
			ps.Sessions++
			ps.TotalCalories += w.TotalCalories
			ps.DurationMinutes += w.DurationMinutes
			ps.TotalVolume += engine.TotalVolume(w.Exercises)
		}
	}
	return ps, nil
}

func (s *Store) GetTrainingSummary(context.Context, time.Time, time.Time, string, int) ([]storage.TrainingSummaryPeriod, error) {
	return nil, nil
}

func (s *Store) GetDataStats(_ context.Context, userID int) (*storage.DataStats, error) {
	return &storage.DataStats{TotalWorkouts: int64(len(s.Workouts))}, nil
}

func (s *Store) GetStreak(_ context.Context, userID int, streakType string) (engine.Streak, error) {
	st := s.Streaks[userID]
	st.Type = streakType
	return st, nil
}

func (s *Store) InsertGoal(_ context.Context, g models.GoalRecord) error {
	s.Goals = append(s.Goals, g)
	return nil
}

func (s *Store) UpdateGoal(_ context.Context, g models.GoalRecord) error {
	for i := range s.Goals {
		if s.Goals[i].ID == g.ID && s.Goals[i].UserID == g.UserID {
			s.Goals[i] = g
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *Store) GetGoal(_ context.Context, id uuid.UUID, userID int) (models.GoalRecord, error) {
	for _, g := range s.Goals {
		if g.ID == id && g.UserID == userID {
			return g, nil
		}
	}
	return models.GoalRecord{}, fmt.Errorf("goal: %w", storage.ErrNotFound)
}

func (s *Store) ListGoals(_ context.Context, userID int, exercise string) ([]models.GoalRecord, error) {
	var out []models.GoalRecord
	for _, g := range s.Goals {
		if g.UserID == userID && (exercise == "" || g.Exercise == exercise) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *Store) DeleteGoal(_ context.Context, id uuid.UUID, userID int) error {
	for i, g := range s.Goals {
		if g.ID == id && g.UserID == userID {
			s.Goals = append(s.Goals[:i], s.Goals[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("goal: %w", storage.ErrNotFound)
}

func (s *Store) UpsertLinearPlan(_ context.Context, p models.LinearPlanRecord) (int, error) {
	for i, cur := range s.Linear {
		if cur.UserID == p.UserID && cur.Exercise == p.Exercise && cur.Active {
			p.ID, p.Active = cur.ID, true
			s.Linear[i] = p
			return p.ID, nil
		}
	}
	s.nextPlan++
	p.ID, p.Active = s.nextPlan, true
	s.Linear = append(s.Linear, p)
	return p.ID, nil
}

func (s *Store) ListLinearPlans(_ context.Context, userID int) ([]models.LinearPlanRecord, error) {
	var out []models.LinearPlanRecord
	for _, p := range s.Linear {
		if p.UserID == userID && p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) GetLinearPlan(_ context.Context, userID int, exercise string) (models.LinearPlanRecord, error) {
	for _, p := range s.Linear {
		if p.UserID == userID && p.Exercise == exercise && p.Active {
			return p, nil
		}
	}
	return models.LinearPlanRecord{}, fmt.Errorf("linear plan: %w", storage.ErrNotFound)
}

func (s *Store) UpsertDoublePlan(_ context.Context, p models.DoublePlanRecord) (int, error) {
	for i, cur := range s.Double {
		if cur.UserID == p.UserID && cur.Exercise == p.Exercise && cur.Active {
			p.ID, p.Active = cur.ID, true
			p.LastIncrease, p.IncreaseCount = cur.LastIncrease, cur.IncreaseCount
			s.Double[i] = p
			return p.ID, nil
		}
	}
	s.nextPlan++
	p.ID, p.Active = s.nextPlan, true
	s.Double = append(s.Double, p)
	return p.ID, nil
}

func (s *Store) UpdateDoublePlan(_ context.Context, p models.DoublePlanRecord) error {
	for i, cur := range s.Double {
		if cur.ID == p.ID && cur.Active {
			s.Double[i] = p
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *Store) ListDoublePlans(_ context.Context, userID int) ([]models.DoublePlanRecord, error) {
	var out []models.DoublePlanRecord
	for _, p := range s.Double {
		if p.UserID == userID && p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) GetDoublePlan(_ context.Context, userID int, exercise string) (models.DoublePlanRecord, error) {
	for _, p := range s.Double {
		if p.UserID == userID && p.Exercise == exercise && p.Active {
			return p, nil
		}
	}
	return models.DoublePlanRecord{}, fmt.Errorf("double plan: %w", storage.ErrNotFound)
}

func (s *Store) DeactivatePlan(_ context.Context, kind string, userID int, exercise string) error {
	switch kind {
	case "linear":
		for i, p := range s.Linear {
			if p.UserID == userID && p.Exercise == exercise && p.Active {
				s.Linear[i].Active = false
				return nil
			}
		}
	case "double":
		for i, p := range s.Double {
			if p.UserID == userID && p.Exercise == exercise && p.Active {
				s.Double[i].Active = false
				return nil
			}
		}
	}
	return storage.ErrNotFound
}

func (s *Store) InsertImportLog(_ context.Context, l storage.ImportLog) (int64, error) {
	l.ID = int64(len(s.Imports) + 1)
	s.Imports = append(s.Imports, l)
	return l.ID, nil
}

func (s *Store) UpdateImportLog(_ context.Context, id int64, l storage.ImportLog) error {
	l.ID = id
	s.Imports[id-1] = l
	return nil
}

func (s *Store) QueryImportLogs(_ context.Context, userID, limit int) ([]storage.ImportLog, error) {
	return s.Imports, nil
}
