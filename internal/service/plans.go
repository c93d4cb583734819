package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
)

// historyWindowDays bounds the history a forecast looks at.
const historyWindowDays = 90

// LinearPlanInput is a linear plan as submitted.
type LinearPlanInput struct {
	Exercise        string  `json:"exercise"`
	CurrentWeight   float64 `json:"current_weight"`
	TargetWeight    float64 `json:"target_weight"`
	WeightIncrement float64 `json:"weight_increment"`
	RepsIncrement   int     `json:"reps_increment"`
}

// LinearPlanView is a plan with its ETA to target.
type LinearPlanView struct {
	models.LinearPlanRecord
	engine.ETA
}

// SaveLinearPlan creates the exercise's active linear plan or updates the
// existing one in place.
func (s *Service) SaveLinearPlan(ctx context.Context, userID int, in LinearPlanInput) (LinearPlanView, error) {
	exercise := strings.TrimSpace(in.Exercise)
	if exercise == "" {
		return LinearPlanView{}, invalidf("exercise is required")
	}
	if in.CurrentWeight <= 0 || in.TargetWeight <= 0 {
		return LinearPlanView{}, invalidf("current and target weight must be greater than 0")
	}
	if in.WeightIncrement <= 0 {
		in.WeightIncrement = engine.DefaultWeightIncrement
	}
	if in.RepsIncrement <= 0 {
		in.RepsIncrement = engine.DefaultRepsIncrement
	}

	rec := models.LinearPlanRecord{
		UserID:    userID,
		Active:    true,
		UpdatedAt: s.now(),
		LinearPlan: engine.LinearPlan{
			Exercise:        exercise,
			CurrentWeight:   in.CurrentWeight,
			TargetWeight:    in.TargetWeight,
			WeightIncrement: in.WeightIncrement,
			RepsIncrement:   in.RepsIncrement,
		},
	}
	id, err := s.store.UpsertLinearPlan(ctx, rec)
	if err != nil {
		return LinearPlanView{}, err
	}
	rec.ID = id
	s.log.Info("linear plan saved", "user_id", userID, "plan_id", id, "exercise", exercise)
	return LinearPlanView{LinearPlanRecord: rec, ETA: rec.ETA(s.today())}, nil
}

// ListLinearPlans returns active linear plans with their ETA.
func (s *Service) ListLinearPlans(ctx context.Context, userID int) ([]LinearPlanView, error) {
	plans, err := s.store.ListLinearPlans(ctx, userID)
	if err != nil {
		return nil, err
	}
	today := s.today()
	views := make([]LinearPlanView, 0, len(plans))
	for _, p := range plans {
		views = append(views, LinearPlanView{LinearPlanRecord: p, ETA: p.ETA(today)})
	}
	return views, nil
}

// NextWeightResult answers what to load next session on a linear plan.
type NextWeightResult struct {
	Exercise      string  `json:"exercise"`
	CurrentWeight float64 `json:"current_weight"`
	PerformedReps int     `json:"performed_reps"`
	TargetReps    int     `json:"target_reps"`
	NextWeight    float64 `json:"next_weight"`
	Increased     bool    `json:"increased"`
}

// NextWeight applies the exercise's linear plan to a performance. A
// non-positive targetReps uses the configured default.
func (s *Service) NextWeight(ctx context.Context, userID int, exercise string, performedReps, targetReps int) (NextWeightResult, error) {
	p, err := s.store.GetLinearPlan(ctx, userID, strings.TrimSpace(exercise))
	if err != nil {
		return NextWeightResult{}, err
	}
	if targetReps <= 0 {
		targetReps = s.defaults.TargetReps
	}
	next := p.NextWeight(performedReps, targetReps)
	return NextWeightResult{
		Exercise:      p.Exercise,
		CurrentWeight: p.CurrentWeight,
		PerformedReps: performedReps,
		TargetReps:    targetReps,
		NextWeight:    next,
		Increased:     next > p.CurrentWeight,
	}, nil
}

// AdvanceLinearPlan applies a performance like NextWeight and stores the new
// current weight when it went up.
func (s *Service) AdvanceLinearPlan(ctx context.Context, userID int, exercise string, performedReps, targetReps int) (NextWeightResult, error) {
	res, err := s.NextWeight(ctx, userID, exercise, performedReps, targetReps)
	if err != nil || !res.Increased {
		return res, err
	}
	p, err := s.store.GetLinearPlan(ctx, userID, res.Exercise)
	if err != nil {
		return res, err
	}
	p.CurrentWeight = res.NextWeight
	if _, err := s.store.UpsertLinearPlan(ctx, p); err != nil {
		return res, fmt.Errorf("storing progression: %w", err)
	}
	if s.metrics != nil {
		s.metrics.CounterWeightIncreases.WithLabelValues("linear").Inc()
	}
	s.log.Info("linear plan weight increased", "user_id", userID, "exercise", res.Exercise, "weight", res.NextWeight)
	return res, nil
}

// ForecastInput drives a progression forecast. Current falls back to the
// active linear plan, then to the latest logged top weight.
type ForecastInput struct {
	Exercise  string  `json:"exercise"`
	Current   float64 `json:"current_weight"`
	Target    float64 `json:"target_weight"`
	Frequency int     `json:"frequency"`
}

// Forecast projects weekly weights toward a target from recent history.
func (s *Service) Forecast(ctx context.Context, userID int, in ForecastInput) (engine.ForecastResult, error) {
	exercise := strings.TrimSpace(in.Exercise)
	if exercise == "" {
		return engine.ForecastResult{}, invalidf("exercise is required")
	}
	if in.Target <= 0 {
		return engine.ForecastResult{}, invalidf("target weight must be greater than 0")
	}

	history, err := s.store.ExerciseHistory(ctx, userID, exercise, s.today().AddDate(0, 0, -historyWindowDays))
	if err != nil {
		return engine.ForecastResult{}, err
	}

	current := in.Current
	if current <= 0 {
		plan, err := s.store.GetLinearPlan(ctx, userID, exercise)
		switch {
		case err == nil:
			current = plan.CurrentWeight
		case !errors.Is(err, storage.ErrNotFound):
			return engine.ForecastResult{}, err
		case len(history) > 0:
			current = history[len(history)-1].Weight
		default:
			return engine.ForecastResult{}, invalidf("no current weight for %q", exercise)
		}
	}

	return engine.Forecast(current, in.Target, history, in.Frequency), nil
}

// DoublePlanInput is a double progression plan as submitted.
type DoublePlanInput struct {
	Exercise      string  `json:"exercise"`
	CurrentWeight float64 `json:"current_weight"`
	MinReps       int     `json:"min_reps"`
	MaxReps       int     `json:"max_reps"`
	CurrentReps   int     `json:"current_reps"`
}

// DoublePlanView is a plan with its next-session instructions.
type DoublePlanView struct {
	models.DoublePlanRecord
	Instructions engine.Instructions `json:"instructions"`
}

// SaveDoublePlan creates the exercise's active double progression plan or
// updates the existing one in place, keeping its increase history.
func (s *Service) SaveDoublePlan(ctx context.Context, userID int, in DoublePlanInput) (DoublePlanView, error) {
	exercise := strings.TrimSpace(in.Exercise)
	if exercise == "" {
		return DoublePlanView{}, invalidf("exercise is required")
	}
	if in.CurrentWeight <= 0 {
		return DoublePlanView{}, invalidf("current weight must be greater than 0")
	}
	if in.MinReps <= 0 {
		in.MinReps = engine.DefaultMinReps
	}
	if in.MaxReps <= 0 {
		in.MaxReps = engine.DefaultMaxReps
	}
	if in.MinReps > in.MaxReps {
		return DoublePlanView{}, invalidf("min reps %d is above max reps %d", in.MinReps, in.MaxReps)
	}
	if in.CurrentReps <= 0 {
		in.CurrentReps = in.MinReps
	}

	rec := models.DoublePlanRecord{
		UserID:    userID,
		Active:    true,
		UpdatedAt: s.now(),
		DoublePlan: engine.DoublePlan{
			Exercise:      exercise,
			CurrentWeight: in.CurrentWeight,
			MinReps:       in.MinReps,
			MaxReps:       in.MaxReps,
			CurrentReps:   in.CurrentReps,
		},
	}
	if _, err := s.store.UpsertDoublePlan(ctx, rec); err != nil {
		return DoublePlanView{}, err
	}
	saved, err := s.store.GetDoublePlan(ctx, userID, exercise)
	if err != nil {
		return DoublePlanView{}, err
	}
	s.log.Info("double plan saved", "user_id", userID, "plan_id", saved.ID, "exercise", exercise)
	return DoublePlanView{DoublePlanRecord: saved, Instructions: saved.Instructions()}, nil
}

// ListDoublePlans returns active double progression plans with instructions.
func (s *Service) ListDoublePlans(ctx context.Context, userID int) ([]DoublePlanView, error) {
	plans, err := s.store.ListDoublePlans(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]DoublePlanView, 0, len(plans))
	for _, p := range plans {
		views = append(views, DoublePlanView{DoublePlanRecord: p, Instructions: p.Instructions()})
	}
	return views, nil
}

// DoubleResult is the outcome of recording a performance on a double plan.
type DoubleResult struct {
	DoublePlanView
	Outcome engine.Outcome `json:"outcome"`
}

// RecordDoublePerformance applies the reps achieved in a session to the
// exercise's double progression plan and stores the new state. Zero reps is a
// session without progression.
func (s *Service) RecordDoublePerformance(ctx context.Context, userID int, exercise string, performedReps int) (DoubleResult, error) {
	if performedReps < 0 {
		return DoubleResult{}, invalidf("performed reps must not be negative")
	}
	rec, err := s.store.GetDoublePlan(ctx, userID, strings.TrimSpace(exercise))
	if err != nil {
		return DoubleResult{}, err
	}

	var out engine.Outcome
	rec.DoublePlan, out = rec.Record(performedReps, s.today())
	if out.Progressed() {
		if err := s.store.UpdateDoublePlan(ctx, rec); err != nil {
			return DoubleResult{}, fmt.Errorf("storing progression: %w", err)
		}
	}
	if out == engine.OutcomeWeightIncreased {
		if s.metrics != nil {
			s.metrics.CounterWeightIncreases.WithLabelValues("double").Inc()
		}
		s.log.Info("double progression weight increased",
			"user_id", userID, "exercise", rec.Exercise, "weight", rec.CurrentWeight)
	}

	return DoubleResult{
		DoublePlanView: DoublePlanView{DoublePlanRecord: rec, Instructions: rec.Instructions()},
		Outcome:        out,
	}, nil
}

// DeactivatePlan retires the active "linear" or "double" plan of an exercise.
func (s *Service) DeactivatePlan(ctx context.Context, userID int, kind, exercise string) error {
	if kind != "linear" && kind != "double" {
		return invalidf("unknown plan kind %q", kind)
	}
	return s.store.DeactivatePlan(ctx, kind, userID, strings.TrimSpace(exercise))
}
