// Package service runs the training engine against stored data. Every method
// takes the acting user's ID explicitly.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/metrics"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
)

// Store is the persistence the service needs. *storage.DB implements it.
type Store interface {
	GetUser(ctx context.Context, userID int) (models.User, error)
	UpdateBodyWeight(ctx context.Context, userID int, kg float64) error

	SaveWorkout(ctx context.Context, c models.WorkoutCommit) (bool, error)
	QueryWorkouts(ctx context.Context, start, end time.Time, userID int) ([]models.WorkoutSummary, error)
	GetWorkout(ctx context.Context, workoutID uuid.UUID, userID int) (*models.Workout, error)
	DeleteWorkout(ctx context.Context, workoutID uuid.UUID, userID int) error

	LatestEntries(ctx context.Context, userID int, exercise string, limit int) ([]engine.DatedEntry, error)
	ExerciseHistory(ctx context.Context, userID int, exercise string, since time.Time) ([]engine.WeightPoint, error)
	QueryVolumeLoads(ctx context.Context, userID int, exercise string, start, end time.Time) ([]models.VolumeLoadRow, error)
	PeriodStats(ctx context.Context, userID int, since time.Time) (models.PeriodStats, error)
	GetTrainingSummary(ctx context.Context, start, end time.Time, bucket string, userID int) ([]storage.TrainingSummaryPeriod, error)
	GetDataStats(ctx context.Context, userID int) (*storage.DataStats, error)

	GetStreak(ctx context.Context, userID int, streakType string) (engine.Streak, error)

	InsertGoal(ctx context.Context, g models.GoalRecord) error
	UpdateGoal(ctx context.Context, g models.GoalRecord) error
	GetGoal(ctx context.Context, goalID uuid.UUID, userID int) (models.GoalRecord, error)
	ListGoals(ctx context.Context, userID int, exercise string) ([]models.GoalRecord, error)
	DeleteGoal(ctx context.Context, goalID uuid.UUID, userID int) error

	UpsertLinearPlan(ctx context.Context, p models.LinearPlanRecord) (int, error)
	ListLinearPlans(ctx context.Context, userID int) ([]models.LinearPlanRecord, error)
	GetLinearPlan(ctx context.Context, userID int, exercise string) (models.LinearPlanRecord, error)
	UpsertDoublePlan(ctx context.Context, p models.DoublePlanRecord) (int, error)
	UpdateDoublePlan(ctx context.Context, p models.DoublePlanRecord) error
	ListDoublePlans(ctx context.Context, userID int) ([]models.DoublePlanRecord, error)
	GetDoublePlan(ctx context.Context, userID int, exercise string) (models.DoublePlanRecord, error)
	DeactivatePlan(ctx context.Context, kind string, userID int, exercise string) error

	InsertImportLog(ctx context.Context, log storage.ImportLog) (int64, error)
	UpdateImportLog(ctx context.Context, id int64, log storage.ImportLog) error
	QueryImportLogs(ctx context.Context, userID, limit int) ([]storage.ImportLog, error)
}

// Compile-time check: *storage.DB satisfies Store.
var _ Store = (*storage.DB)(nil)

// Defaults fill in values a submission or user profile leaves out.
type Defaults struct {
	BodyWeightKg    float64
	DurationMinutes float64
	TargetReps      int
}

// Service orchestrates the engine and the store.
type Service struct {
	store    Store
	log      *slog.Logger
	metrics  *metrics.Manager
	defaults Defaults
	now      func() time.Time
}

// New creates a Service. m may be nil.
func New(store Store, log *slog.Logger, m *metrics.Manager, d Defaults) *Service {
	if d.BodyWeightKg <= 0 {
		d.BodyWeightKg = engine.DefaultBodyWeightKg
	}
	if d.DurationMinutes <= 0 {
		d.DurationMinutes = engine.DefaultDurationMinutes
	}
	if d.TargetReps <= 0 {
		d.TargetReps = engine.DefaultTargetReps
	}
	return &Service{
		store:    store,
		log:      log,
		metrics:  m,
		defaults: d,
		now:      time.Now,
	}
}

// today is the current calendar date as midnight UTC.
func (s *Service) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// User returns the user's profile.
func (s *Service) User(ctx context.Context, userID int) (models.User, error) {
	return s.store.GetUser(ctx, userID)
}

// SetBodyWeight stores the body weight used for calorie estimates.
func (s *Service) SetBodyWeight(ctx context.Context, userID int, kg float64) error {
	if kg <= 0 {
		return invalidf("body weight must be greater than 0")
	}
	return s.store.UpdateBodyWeight(ctx, userID, kg)
}

func (s *Service) bodyWeight(ctx context.Context, userID int) (float64, error) {
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if u.BodyWeightKg > 0 {
		return u.BodyWeightKg, nil
	}
	return s.defaults.BodyWeightKg, nil
}
