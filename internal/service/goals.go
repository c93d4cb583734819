package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// GoalInput is a goal as submitted.
type GoalInput struct {
	Exercise     string     `json:"exercise"`
	TargetWeight float64    `json:"target_weight"`
	TargetReps   int        `json:"target_reps"`
	TargetSets   int        `json:"target_sets"`
	TargetDate   *time.Time `json:"target_date,omitempty"`
}

// GoalView is a goal with its derived progress figures.
type GoalView struct {
	models.GoalRecord
	ProgressPercentage float64 `json:"progress_percentage"`
	DaysRemaining      int     `json:"days_remaining"`
}

func (s *Service) goalView(g models.GoalRecord) GoalView {
	return GoalView{
		GoalRecord:         g,
		ProgressPercentage: g.ProgressPercentage(),
		DaysRemaining:      g.DaysRemaining(s.today()),
	}
}

// CreateGoal stores a new goal and evaluates it against the latest logged
// entry of its exercise.
func (s *Service) CreateGoal(ctx context.Context, userID int, in GoalInput) (GoalView, error) {
	exercise := strings.TrimSpace(in.Exercise)
	if exercise == "" {
		return GoalView{}, invalidf("exercise is required")
	}
	if in.TargetWeight <= 0 {
		return GoalView{}, invalidf("target weight must be greater than 0")
	}
	if in.TargetDate != nil && !in.TargetDate.After(s.today()) {
		return GoalView{}, invalidf("target date must be in the future")
	}
	if in.TargetReps <= 0 {
		in.TargetReps = engine.DefaultGoalReps
	}
	if in.TargetSets <= 0 {
		in.TargetSets = engine.DefaultGoalSets
	}

	history, err := s.store.LatestEntries(ctx, userID, exercise, 1)
	if err != nil {
		return GoalView{}, fmt.Errorf("loading history of %q: %w", exercise, err)
	}

	g := models.GoalRecord{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: s.now(),
		Goal: engine.Evaluate(engine.Goal{
			Exercise:     exercise,
			TargetWeight: in.TargetWeight,
			TargetReps:   in.TargetReps,
			TargetSets:   in.TargetSets,
			TargetDate:   in.TargetDate,
		}, history),
	}
	if err := s.store.InsertGoal(ctx, g); err != nil {
		return GoalView{}, err
	}
	s.log.Info("goal created", "user_id", userID, "goal_id", g.ID, "exercise", exercise)
	return s.goalView(g), nil
}

// RefreshGoal re-evaluates a goal against the latest logged entry.
func (s *Service) RefreshGoal(ctx context.Context, userID int, id uuid.UUID) (GoalView, error) {
	g, err := s.store.GetGoal(ctx, id, userID)
	if err != nil {
		return GoalView{}, err
	}
	history, err := s.store.LatestEntries(ctx, userID, g.Exercise, 1)
	if err != nil {
		return GoalView{}, fmt.Errorf("loading history of %q: %w", g.Exercise, err)
	}
	g.Goal = engine.Evaluate(g.Goal, history)
	if err := s.store.UpdateGoal(ctx, g); err != nil {
		return GoalView{}, err
	}
	return s.goalView(g), nil
}

// ListGoals returns the user's goals. A non-empty exercise filters them.
func (s *Service) ListGoals(ctx context.Context, userID int, exercise string) ([]GoalView, error) {
	goals, err := s.store.ListGoals(ctx, userID, strings.TrimSpace(exercise))
	if err != nil {
		return nil, err
	}
	views := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, s.goalView(g))
	}
	return views, nil
}

// DeleteGoal removes a goal.
func (s *Service) DeleteGoal(ctx context.Context, userID int, id uuid.UUID) error {
	return s.store.DeleteGoal(ctx, id, userID)
}

// GetStreak returns the workout streak with its milestone label.
func (s *Service) GetStreak(ctx context.Context, userID int) (StreakView, error) {
	st, err := s.store.GetStreak(ctx, userID, engine.DefaultStreakType)
	if err != nil {
		return StreakView{}, err
	}
	st.Type = engine.DefaultStreakType
	return StreakView{Streak: st, Milestone: st.Milestone()}, nil
}

// StreakView is a streak with its milestone label.
type StreakView struct {
	engine.Streak
	Milestone engine.Milestone `json:"milestone"`
}
