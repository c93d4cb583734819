package mcp

import (
	"context"
	"time"

	"github.com/claude/liftlog/internal/service"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultTimeRange returns start/end defaulting to the last 7 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -7)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// --- Tool definitions ---

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("List logged workout sessions with duration, calories, exercise count and total volume load."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 7 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Get one workout session with every exercise and set."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout ID as returned by get_workouts")),
)

var toolGetPeriodStats = mcp.NewTool("get_period_stats",
	mcp.WithDescription("Totals over a trailing window: sessions, volume load, calories and training minutes."),
	mcp.WithString("period", mcp.Description("Window to total. Defaults to week."), mcp.Enum("week", "month", "3months")),
)

var toolGetTrainingSummary = mcp.NewTool("get_training_summary",
	mcp.WithDescription("Per-week or per-month training volume: sessions, calories and per-exercise sets, reps, volume and max weight."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 7 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
	mcp.WithString("bucket", mcp.Description("Period size. Defaults to '1 week'."), mcp.Enum("1 week", "1 month")),
)

var toolGetStreak = mcp.NewTool("get_streak",
	mcp.WithDescription("Current and longest streak of consecutive training days, with the milestone reached."),
)

var toolGetGoals = mcp.NewTool("get_goals",
	mcp.WithDescription("Strength goals with current best values, completion and progress percentage."),
	mcp.WithString("exercise", mcp.Description("Only goals for this exercise")),
)

var toolGetProgressionPlans = mcp.NewTool("get_progression_plans",
	mcp.WithDescription("Active progression plans. Linear plans include the ETA to target; double progression plans include next-session instructions."),
	mcp.WithString("type", mcp.Description("Plan type. Defaults to all."), mcp.Enum("linear", "double", "all")),
)

var toolGetNextWeight = mcp.NewTool("get_next_weight",
	mcp.WithDescription("Apply the exercise's linear plan to a performance: the weight goes up by the plan increment when the rep target was reached. Does not change the plan."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name")),
	mcp.WithNumber("performed_reps", mcp.Required(), mcp.Description("Reps achieved in the last set")),
	mcp.WithNumber("target_reps", mcp.Description("Rep target. Defaults to 8.")),
)

var toolSuggestWeight = mcp.NewTool("suggest_weight",
	mcp.WithDescription("Suggest the working weight for the next session of an exercise from its recent history, with the recent trend."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name")),
)

var toolForecastProgress = mcp.NewTool("forecast_progress",
	mcp.WithDescription("Estimate how many weeks it takes to reach a target weight, using the last 90 days of progress."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name")),
	mcp.WithNumber("target_weight", mcp.Required(), mcp.Description("Target weight in kg")),
	mcp.WithNumber("current_weight", mcp.Description("Current weight in kg. Defaults to the linear plan or latest logged weight.")),
	mcp.WithNumber("frequency", mcp.Description("Sessions per week. Defaults to 2.")),
)

// --- Tool handlers ---

// jsonResult wraps v as a tool result, or reports err as a tool error.
func (h *handlers) jsonResult(tool string, v any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		h.log.Error("mcp "+tool, "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	workouts, err := h.ds.ListWorkouts(ctx, UserIDFromContext(ctx), start, end)
	return h.jsonResult("get_workouts", workouts, err)
}

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid workout ID"), nil
	}
	workout, err := h.ds.GetWorkout(ctx, UserIDFromContext(ctx), id)
	return h.jsonResult("get_workout", workout, err)
}

func (h *handlers) getPeriodStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.ds.PeriodStats(ctx, UserIDFromContext(ctx), req.GetString("period", "week"))
	return h.jsonResult("get_period_stats", stats, err)
}

func (h *handlers) getTrainingSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	bucket := req.GetString("bucket", "1 week")
	summary, err := h.ds.TrainingSummary(ctx, UserIDFromContext(ctx), start, end, bucket)
	return h.jsonResult("get_training_summary", summary, err)
}

func (h *handlers) getStreak(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	streak, err := h.ds.GetStreak(ctx, UserIDFromContext(ctx))
	return h.jsonResult("get_streak", streak, err)
}

func (h *handlers) getGoals(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	goals, err := h.ds.ListGoals(ctx, UserIDFromContext(ctx), req.GetString("exercise", ""))
	return h.jsonResult("get_goals", goals, err)
}

func (h *handlers) getProgressionPlans(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	kind := req.GetString("type", "all")
	out := map[string]any{}

	if kind == "linear" || kind == "all" {
		plans, err := h.ds.ListLinearPlans(ctx, uid)
		if err != nil {
			return h.jsonResult("get_progression_plans", nil, err)
		}
		out["linear"] = plans
	}
	if kind == "double" || kind == "all" {
		plans, err := h.ds.ListDoublePlans(ctx, uid)
		if err != nil {
			return h.jsonResult("get_progression_plans", nil, err)
		}
		out["double"] = plans
	}
	if len(out) == 0 {
		return mcp.NewToolResultError("type must be linear, double or all"), nil
	}
	return h.jsonResult("get_progression_plans", out, nil)
}

func (h *handlers) getNextWeight(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	performed, err := req.RequireFloat("performed_reps")
	if err != nil {
		return mcp.NewToolResultError("performed_reps parameter is required"), nil
	}
	target := req.GetFloat("target_reps", 0)
	res, err := h.ds.NextWeight(ctx, UserIDFromContext(ctx), exercise, int(performed), int(target))
	return h.jsonResult("get_next_weight", res, err)
}

func (h *handlers) suggestWeight(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	sugg, err := h.ds.SuggestWeight(ctx, UserIDFromContext(ctx), exercise)
	return h.jsonResult("suggest_weight", sugg, err)
}

func (h *handlers) forecastProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	target, err := req.RequireFloat("target_weight")
	if err != nil {
		return mcp.NewToolResultError("target_weight parameter is required"), nil
	}
	res, err := h.ds.Forecast(ctx, UserIDFromContext(ctx), service.ForecastInput{
		Exercise:  exercise,
		Current:   req.GetFloat("current_weight", 0),
		Target:    target,
		Frequency: int(req.GetFloat("frequency", 0)),
	})
	return h.jsonResult("forecast_progress", res, err)
}
