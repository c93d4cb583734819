package mcp

import (
	"context"
	"time"

	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/service"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
)

// DataSource is the read side of the training service the tools need. Both
// *service.Service (in process) and HTTPClient (remote via REST API) satisfy it.
type DataSource interface {
	ListWorkouts(ctx context.Context, userID int, start, end time.Time) ([]models.WorkoutSummary, error)
	GetWorkout(ctx context.Context, userID int, id uuid.UUID) (*models.Workout, error)
	PeriodStats(ctx context.Context, userID int, period string) (models.PeriodStats, error)
	TrainingSummary(ctx context.Context, userID int, start, end time.Time, bucket string) ([]storage.TrainingSummaryPeriod, error)
	DataStats(ctx context.Context, userID int) (*storage.DataStats, error)
	GetStreak(ctx context.Context, userID int) (service.StreakView, error)
	ListGoals(ctx context.Context, userID int, exercise string) ([]service.GoalView, error)
	ListLinearPlans(ctx context.Context, userID int) ([]service.LinearPlanView, error)
	ListDoublePlans(ctx context.Context, userID int) ([]service.DoublePlanView, error)
	NextWeight(ctx context.Context, userID int, exercise string, performedReps, targetReps int) (service.NextWeightResult, error)
	SuggestWeight(ctx context.Context, userID int, exercise string) (engine.Suggestion, error)
	Forecast(ctx context.Context, userID int, in service.ForecastInput) (engine.ForecastResult, error)
}

// Compile-time check: *service.Service satisfies DataSource.
var _ DataSource = (*service.Service)(nil)
