package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/service"
	"github.com/claude/liftlog/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	u, err := s.svc.User(r.Context(), userIDFromContext(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleSetBodyWeight(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BodyWeightKg float64 `json:"body_weight_kg"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.svc.SetBodyWeight(r.Context(), userIDFromContext(r), req.BodyWeightKg); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"body_weight_kg": req.BodyWeightKg})
}

// logWorkoutRequest accepts the date as RFC 3339 or YYYY-MM-DD.
type logWorkoutRequest struct {
	engine.SessionInput
	Date        string `json:"date"`
	WorkoutType string `json:"workout_type"`
}

func (s *Server) handleLogWorkout(w http.ResponseWriter, r *http.Request) {
	var req logWorkoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in := req.SessionInput
	if req.Date != "" {
		d, err := parseDate(req.Date)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date: " + err.Error()})
			return
		}
		in.Date = d
	}

	res, err := s.svc.LogWorkout(r.Context(), userIDFromContext(r), in, engine.ParseWorkoutKind(req.WorkoutType))
	if errors.Is(err, engine.ErrNoValidExercises) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":    err.Error(),
			"problems": engine.ValidateSession(in),
		})
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	workouts, err := s.svc.ListWorkouts(r.Context(), userIDFromContext(r), start, end)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r)
	if !ok {
		return
	}
	workout, err := s.svc.GetWorkout(r.Context(), userIDFromContext(r), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r)
	if !ok {
		return
	}
	if err := s.svc.DeleteWorkout(r.Context(), userIDFromContext(r), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.DataStats(r.Context(), userIDFromContext(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handlePeriodStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.PeriodStats(r.Context(), userIDFromContext(r), r.URL.Query().Get("period"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleTrainingSummary(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	bucket := "1 week"
	if r.URL.Query().Get("agg") == "monthly" {
		bucket = "1 month"
	}
	periods, err := s.svc.TrainingSummary(r.Context(), userIDFromContext(r), start, end, bucket)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, periods)
}

func (s *Server) handleVolumeLoads(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	rows, err := s.svc.VolumeLoads(r.Context(), userIDFromContext(r), r.URL.Query().Get("exercise"), start, end)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleSuggestWeight(w http.ResponseWriter, r *http.Request) {
	sugg, err := s.svc.SuggestWeight(r.Context(), userIDFromContext(r), r.URL.Query().Get("exercise"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sugg)
}

func (s *Server) handleEstimateCalories(w http.ResponseWriter, r *http.Request) {
	var in service.CalorieInput
	if !decodeJSON(w, r, &in) {
		return
	}
	est, err := s.svc.EstimateCalories(r.Context(), userIDFromContext(r), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, est)
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.GetStreak(r.Context(), userIDFromContext(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleImportLogs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	logs, err := s.svc.ImportLogs(r.Context(), userIDFromContext(r), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (s *Server) handleAlphaImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 32*maxBodyBytes)
	res, err := s.alpha.Ingest(r.Context(), r.Body, userIDFromContext(r))
	if err != nil {
		s.log.Error("alpha import error", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error(), "result": res})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// writeError maps service and storage errors to a status code.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, engine.ErrNoValidExercises):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	default:
		s.log.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a JSON body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

func uuidParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid ID"})
		return uuid.Nil, false
	}
	return id, true
}

// parseDate accepts RFC 3339 timestamps and plain dates.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// parseTimeRange reads start and end, defaulting to the last 30 days. A
// plain end date includes that whole day.
func parseTimeRange(r *http.Request) (start, end time.Time, err error) {
	q := r.URL.Query()

	end = time.Now()
	if v := q.Get("end"); v != "" {
		end, err = parseDate(v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if len(v) == len("2006-01-02") {
			end = end.AddDate(0, 0, 1)
		}
	}

	start = end.AddDate(0, 0, -30)
	if v := q.Get("start"); v != "" {
		start, err = parseDate(v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return start, end, nil
}
