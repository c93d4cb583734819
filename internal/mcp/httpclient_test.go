package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/service"
	"github.com/claude/liftlog/internal/storage"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by path. Verifies the HTTP client sends correct paths and query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestListWorkouts verifies the time range and user header are sent and the
// JSON array is parsed.
func TestListWorkouts(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/workouts": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("start"); got != "2026-01-01T00:00:00Z" {
				t.Errorf("start=%q", got)
			}
			if got := r.Header.Get("X-User-ID"); got != "7" {
				t.Errorf("X-User-ID=%q, want 7", got)
			}
			writeTestJSON(t, w, []models.WorkoutSummary{
				{Name: "Push", ExerciseCount: 3, VolumeLoad: 4200},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)

	workouts, err := client.ListWorkouts(context.Background(), 7, start, end)
	if err != nil {
		t.Fatal(err)
	}
	if len(workouts) != 1 {
		t.Fatalf("got %d workouts, want 1", len(workouts))
	}
	if workouts[0].VolumeLoad != 4200 {
		t.Errorf("volume=%v, want 4200", workouts[0].VolumeLoad)
	}
}

// TestPeriodStats verifies the period parameter and single struct response.
func TestPeriodStats(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/stats/period": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("period"); got != "month" {
				t.Errorf("period=%q, want month", got)
			}
			writeTestJSON(t, w, models.PeriodStats{Period: "month", Days: 30, Sessions: 12})
		},
	})
	defer ts.Close()

	stats, err := NewHTTPClient(ts.URL).PeriodStats(context.Background(), 1, "month")
	if err != nil {
		t.Fatal(err)
	}
	if stats.Sessions != 12 {
		t.Errorf("sessions=%d, want 12", stats.Sessions)
	}
}

// TestTrainingSummary verifies the bucket is mapped to the agg parameter.
func TestTrainingSummary(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/training-summary": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("agg"); got != "monthly" {
				t.Errorf("agg=%q, want monthly", got)
			}
			writeTestJSON(t, w, []storage.TrainingSummaryPeriod{{Sessions: 9}})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	periods, err := client.TrainingSummary(context.Background(), 1, start, start.AddDate(0, 3, 0), "1 month")
	if err != nil {
		t.Fatal(err)
	}
	if len(periods) != 1 || periods[0].Sessions != 9 {
		t.Errorf("periods=%+v", periods)
	}
}

// TestListGoalsFilter verifies the exercise filter is only sent when set.
func TestListGoalsFilter(t *testing.T) {
	var seen []string
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/goals": func(w http.ResponseWriter, r *http.Request) {
			seen = append(seen, r.URL.RawQuery)
			writeTestJSON(t, w, []service.GoalView{})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	for _, ex := range []string{"", "Bench Press"} {
		if _, err := client.ListGoals(context.Background(), 1, ex); err != nil {
			t.Fatal(err)
		}
	}
	if len(seen) != 2 || seen[0] != "" || seen[1] != "exercise=Bench+Press" {
		t.Errorf("queries=%q", seen)
	}
}

// TestNextWeight verifies the rep parameters are encoded as integers.
func TestNextWeight(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/plans/linear/next": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("exercise") != "Squat" || q.Get("performed_reps") != "8" || q.Get("target_reps") != "" {
				t.Errorf("query=%q", r.URL.RawQuery)
			}
			writeTestJSON(t, w, service.NextWeightResult{Exercise: "Squat", NextWeight: 102.5, Increased: true})
		},
	})
	defer ts.Close()

	res, err := NewHTTPClient(ts.URL).NextWeight(context.Background(), 1, "Squat", 8, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.NextWeight != 102.5 || !res.Increased {
		t.Errorf("result=%+v", res)
	}
}

// TestForecast verifies the forecast input is posted as JSON.
func TestForecast(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/plans/forecast": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("method=%s, want POST", r.Method)
			}
			var in service.ForecastInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				t.Fatal(err)
			}
			if in.Exercise != "Deadlift" || in.Target != 200 {
				t.Errorf("input=%+v", in)
			}
			writeTestJSON(t, w, engine.ForecastResult{EstimatedWeeks: 8})
		},
	})
	defer ts.Close()

	res, err := NewHTTPClient(ts.URL).Forecast(context.Background(), 1, service.ForecastInput{
		Exercise: "Deadlift", Current: 180, Target: 200,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.EstimatedWeeks != 8 {
		t.Errorf("weeks=%v, want 8", res.EstimatedWeeks)
	}
}

// TestHTTPClientErrorStatus verifies non-200 responses are returned as errors.
func TestHTTPClientErrorStatus(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/streak": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		},
	})
	defer ts.Close()

	if _, err := NewHTTPClient(ts.URL).GetStreak(context.Background(), 1); err == nil {
		t.Error("expected error for 500 response")
	}
}

// TestHTTPClientStreakDecode verifies the embedded streak fields and the
// milestone both survive decoding.
func TestHTTPClientStreakDecode(t *testing.T) {
	last := time.Date(2026, 6, 9, 0, 0, 0, 0, time.UTC)
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/streak": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, service.StreakView{
				Streak:    engine.Streak{Type: "workout", Current: 5, Longest: 9, LastActivity: &last},
				Milestone: engine.MilestoneFive,
			})
		},
	})
	defer ts.Close()

	streak, err := NewHTTPClient(ts.URL).GetStreak(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if streak.Current != 5 || streak.Longest != 9 || streak.Milestone != engine.MilestoneFive {
		t.Errorf("streak=%+v", streak)
	}
	if streak.LastActivity == nil || !streak.LastActivity.Equal(last) {
		t.Errorf("last activity=%v, want %v", streak.LastActivity, last)
	}
}
