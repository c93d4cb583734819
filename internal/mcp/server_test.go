package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/service"
	"github.com/claude/liftlog/internal/service/servicetest"
	"github.com/mark3labs/mcp-go/mcp"
)

// TestUserIDFromContextDefault verifies the default user ID (1) when no value
// is set in the context.
func TestUserIDFromContextDefault(t *testing.T) {
	ctx := context.Background()
	if id := UserIDFromContext(ctx); id != 1 {
		t.Errorf("UserIDFromContext(empty) = %d, want 1", id)
	}
}

// TestUserIDFromContextSet verifies the user ID is extracted from context
// after being set by WithUserID.
func TestUserIDFromContextSet(t *testing.T) {
	ctx := WithUserID(context.Background(), 42)
	if id := UserIDFromContext(ctx); id != 42 {
		t.Errorf("UserIDFromContext = %d, want 42", id)
	}
}

// TestDefaultTimeRange verifies time range defaults (last 7 days) and parsing.
func TestDefaultTimeRange(t *testing.T) {
	// Both empty: defaults to last 7 days
	start, end, err := defaultTimeRange("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	diff := end.Sub(start)
	if diff.Hours() < 167 || diff.Hours() > 169 { // ~168 hours = 7 days
		t.Errorf("default range = %.0f hours, want ~168", diff.Hours())
	}

	// Explicit dates
	start, end, err = defaultTimeRange("2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Year() != 2024 || start.Month() != 1 || start.Day() != 1 {
		t.Errorf("start = %v, want 2024-01-01", start)
	}
	if end.Year() != 2024 || end.Month() != 1 || end.Day() != 31 {
		t.Errorf("end = %v, want 2024-01-31", end)
	}

	// RFC3339
	start, _, err = defaultTimeRange("2024-06-15T10:30:00Z", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Hour() != 10 || start.Minute() != 30 {
		t.Errorf("start = %v, want 10:30", start)
	}

	// Invalid
	_, _, err = defaultTimeRange("not-a-date", "")
	if err == nil {
		t.Error("expected error for invalid date")
	}
}

func newTestHandlers(t *testing.T) (*handlers, *service.Service) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(servicetest.NewStore(), log, nil, service.Defaults{})
	return &handlers{ds: svc, log: log}, svc
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	}
	t.Fatalf("content type %T, want text", res.Content[0])
	return ""
}

// TestGetNextWeightTool verifies the tool applies the linear plan without
// changing it.
func TestGetNextWeightTool(t *testing.T) {
	h, svc := newTestHandlers(t)
	ctx := context.Background()
	if _, err := svc.SaveLinearPlan(ctx, 1, service.LinearPlanInput{
		Exercise: "Squat", CurrentWeight: 100, TargetWeight: 140, WeightIncrement: 2.5,
	}); err != nil {
		t.Fatal(err)
	}

	res, err := h.getNextWeight(ctx, callRequest(map[string]any{
		"exercise": "Squat", "performed_reps": 8.0, "target_reps": 8.0,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}
	var got service.NextWeightResult
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if got.NextWeight != 102.5 || !got.Increased {
		t.Errorf("result = %+v, want 102.5 increased", got)
	}

	plans, _ := svc.ListLinearPlans(ctx, 1)
	if len(plans) != 1 || plans[0].CurrentWeight != 100 {
		t.Errorf("plan changed: %+v", plans)
	}
}

// TestToolArgumentErrors verifies missing or malformed arguments come back as
// tool errors rather than protocol errors.
func TestToolArgumentErrors(t *testing.T) {
	h, _ := newTestHandlers(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() (*mcp.CallToolResult, error)
	}{
		{"get_workout without id", func() (*mcp.CallToolResult, error) {
			return h.getWorkout(ctx, callRequest(nil))
		}},
		{"get_workout bad id", func() (*mcp.CallToolResult, error) {
			return h.getWorkout(ctx, callRequest(map[string]any{"id": "nope"}))
		}},
		{"get_workouts bad date", func() (*mcp.CallToolResult, error) {
			return h.getWorkouts(ctx, callRequest(map[string]any{"start": "yesterday"}))
		}},
		{"get_next_weight without reps", func() (*mcp.CallToolResult, error) {
			return h.getNextWeight(ctx, callRequest(map[string]any{"exercise": "Squat"}))
		}},
		{"get_next_weight without plan", func() (*mcp.CallToolResult, error) {
			return h.getNextWeight(ctx, callRequest(map[string]any{"exercise": "Squat", "performed_reps": 8.0}))
		}},
		{"get_progression_plans bad type", func() (*mcp.CallToolResult, error) {
			return h.getProgressionPlans(ctx, callRequest(map[string]any{"type": "weekly"}))
		}},
	}
	for _, tt := range tests {
		res, err := tt.call()
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
			continue
		}
		if !res.IsError {
			t.Errorf("%s: IsError = false, want true", tt.name)
		}
	}
}

// TestStreakAndWorkoutTools verifies a logged session shows up in the
// workout list and starts the streak.
func TestStreakAndWorkoutTools(t *testing.T) {
	h, svc := newTestHandlers(t)
	ctx := WithUserID(context.Background(), 1)

	if _, err := svc.LogWorkout(ctx, 1, engine.SessionInput{
		Exercises: []engine.ExerciseInput{{
			Exercise: "Bench",
			Sets:     []engine.RawSet{{Weight: 100.0, Reps: 8.0}, {Weight: 100.0, Reps: 8.0}},
		}},
	}, engine.Strength); err != nil {
		t.Fatal(err)
	}

	res, err := h.getStreak(ctx, callRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	var streak service.StreakView
	if err := json.Unmarshal([]byte(resultText(t, res)), &streak); err != nil {
		t.Fatal(err)
	}
	if streak.Current != 1 || streak.Milestone != engine.MilestoneNone {
		t.Errorf("streak = %+v, want 1 none", streak)
	}

	res, err = h.getWorkouts(ctx, callRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	var workouts []models.WorkoutSummary
	if err := json.Unmarshal([]byte(resultText(t, res)), &workouts); err != nil {
		t.Fatal(err)
	}
	if len(workouts) != 1 || workouts[0].VolumeLoad != 1600 {
		t.Errorf("workouts = %+v, want one with volume 1600", workouts)
	}
}
