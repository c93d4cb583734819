package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/service"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
)

// HTTPClient implements DataSource by calling the LiftLog REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// bucketToAgg maps MCP bucket values to REST API agg parameter values.
func bucketToAgg(bucket string) string {
	if bucket == "1 month" {
		return "monthly"
	}
	return "weekly"
}

// do sends the request and returns the body of a 200 response. The user ID
// travels in X-User-ID; a Tailscale-fronted server ignores it and resolves
// the caller from the tailnet instead.
func (c *HTTPClient) do(ctx context.Context, method, path string, userID int, params url.Values, payload any) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("httpclient: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID > 0 {
		req.Header.Set("X-User-ID", strconv.Itoa(userID))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, respBody)
	}

	return respBody, nil
}

// getJSON decodes the response of a GET into out.
func (c *HTTPClient) getJSON(ctx context.Context, path string, userID int, params url.Values, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, userID, params, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func timeParams(start, end time.Time) url.Values {
	v := url.Values{}
	v.Set("start", start.Format(time.RFC3339))
	v.Set("end", end.Format(time.RFC3339))
	return v
}

func (c *HTTPClient) ListWorkouts(ctx context.Context, userID int, start, end time.Time) ([]models.WorkoutSummary, error) {
	var workouts []models.WorkoutSummary
	if err := c.getJSON(ctx, "/api/v1/workouts", userID, timeParams(start, end), &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (c *HTTPClient) GetWorkout(ctx context.Context, userID int, id uuid.UUID) (*models.Workout, error) {
	var workout models.Workout
	if err := c.getJSON(ctx, "/api/v1/workouts/"+id.String(), userID, nil, &workout); err != nil {
		return nil, err
	}
	return &workout, nil
}

func (c *HTTPClient) PeriodStats(ctx context.Context, userID int, period string) (models.PeriodStats, error) {
	var stats models.PeriodStats
	err := c.getJSON(ctx, "/api/v1/stats/period", userID, url.Values{"period": {period}}, &stats)
	return stats, err
}

func (c *HTTPClient) TrainingSummary(ctx context.Context, userID int, start, end time.Time, bucket string) ([]storage.TrainingSummaryPeriod, error) {
	params := timeParams(start, end)
	params.Set("agg", bucketToAgg(bucket))

	var periods []storage.TrainingSummaryPeriod
	if err := c.getJSON(ctx, "/api/v1/training-summary", userID, params, &periods); err != nil {
		return nil, err
	}
	return periods, nil
}

func (c *HTTPClient) DataStats(ctx context.Context, userID int) (*storage.DataStats, error) {
	var stats storage.DataStats
	if err := c.getJSON(ctx, "/api/v1/stats", userID, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *HTTPClient) GetStreak(ctx context.Context, userID int) (service.StreakView, error) {
	var streak service.StreakView
	err := c.getJSON(ctx, "/api/v1/streak", userID, nil, &streak)
	return streak, err
}

func (c *HTTPClient) ListGoals(ctx context.Context, userID int, exercise string) ([]service.GoalView, error) {
	var params url.Values
	if exercise != "" {
		params = url.Values{"exercise": {exercise}}
	}
	var goals []service.GoalView
	if err := c.getJSON(ctx, "/api/v1/goals", userID, params, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (c *HTTPClient) ListLinearPlans(ctx context.Context, userID int) ([]service.LinearPlanView, error) {
	var plans []service.LinearPlanView
	if err := c.getJSON(ctx, "/api/v1/plans/linear", userID, nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (c *HTTPClient) ListDoublePlans(ctx context.Context, userID int) ([]service.DoublePlanView, error) {
	var plans []service.DoublePlanView
	if err := c.getJSON(ctx, "/api/v1/plans/double", userID, nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (c *HTTPClient) NextWeight(ctx context.Context, userID int, exercise string, performedReps, targetReps int) (service.NextWeightResult, error) {
	params := url.Values{}
	params.Set("exercise", exercise)
	params.Set("performed_reps", strconv.Itoa(performedReps))
	if targetReps > 0 {
		params.Set("target_reps", strconv.Itoa(targetReps))
	}

	var res service.NextWeightResult
	err := c.getJSON(ctx, "/api/v1/plans/linear/next", userID, params, &res)
	return res, err
}

func (c *HTTPClient) SuggestWeight(ctx context.Context, userID int, exercise string) (engine.Suggestion, error) {
	var sugg engine.Suggestion
	err := c.getJSON(ctx, "/api/v1/suggestion", userID, url.Values{"exercise": {exercise}}, &sugg)
	return sugg, err
}

func (c *HTTPClient) Forecast(ctx context.Context, userID int, in service.ForecastInput) (engine.ForecastResult, error) {
	var res engine.ForecastResult
	body, err := c.do(ctx, http.MethodPost, "/api/v1/plans/forecast", userID, nil, in)
	if err != nil {
		return res, err
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return res, fmt.Errorf("httpclient: decode forecast: %w", err)
	}
	return res, nil
}
