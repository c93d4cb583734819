package server

import (
	"net/http"
	"strconv"

	"github.com/claude/liftlog/internal/service"
	"github.com/go-chi/chi/v5"
)

type goalRequest struct {
	Exercise     string  `json:"exercise"`
	TargetWeight float64 `json:"target_weight"`
	TargetReps   int     `json:"target_reps"`
	TargetSets   int     `json:"target_sets"`
	TargetDate   string  `json:"target_date"`
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in := service.GoalInput{
		Exercise:     req.Exercise,
		TargetWeight: req.TargetWeight,
		TargetReps:   req.TargetReps,
		TargetSets:   req.TargetSets,
	}
	if req.TargetDate != "" {
		d, err := parseDate(req.TargetDate)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid target_date: " + err.Error()})
			return
		}
		in.TargetDate = &d
	}

	goal, err := s.svc.CreateGoal(r.Context(), userIDFromContext(r), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.svc.ListGoals(r.Context(), userIDFromContext(r), r.URL.Query().Get("exercise"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (s *Server) handleRefreshGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r)
	if !ok {
		return
	}
	goal, err := s.svc.RefreshGoal(r.Context(), userIDFromContext(r), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r)
	if !ok {
		return
	}
	if err := s.svc.DeleteGoal(r.Context(), userIDFromContext(r), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListLinearPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.svc.ListLinearPlans(r.Context(), userIDFromContext(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

func (s *Server) handleSaveLinearPlan(w http.ResponseWriter, r *http.Request) {
	var in service.LinearPlanInput
	if !decodeJSON(w, r, &in) {
		return
	}
	plan, err := s.svc.SaveLinearPlan(r.Context(), userIDFromContext(r), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleNextWeight(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	performed, err := strconv.Atoi(q.Get("performed_reps"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "performed_reps must be an integer"})
		return
	}
	target, _ := strconv.Atoi(q.Get("target_reps"))

	res, err := s.svc.NextWeight(r.Context(), userIDFromContext(r), q.Get("exercise"), performed, target)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type performanceRequest struct {
	Exercise      string `json:"exercise"`
	PerformedReps int    `json:"performed_reps"`
	TargetReps    int    `json:"target_reps"`
}

func (s *Server) handleAdvanceLinearPlan(w http.ResponseWriter, r *http.Request) {
	var req performanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := s.svc.AdvanceLinearPlan(r.Context(), userIDFromContext(r), req.Exercise, req.PerformedReps, req.TargetReps)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	var in service.ForecastInput
	if !decodeJSON(w, r, &in) {
		return
	}
	res, err := s.svc.Forecast(r.Context(), userIDFromContext(r), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleListDoublePlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.svc.ListDoublePlans(r.Context(), userIDFromContext(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

func (s *Server) handleSaveDoublePlan(w http.ResponseWriter, r *http.Request) {
	var in service.DoublePlanInput
	if !decodeJSON(w, r, &in) {
		return
	}
	plan, err := s.svc.SaveDoublePlan(r.Context(), userIDFromContext(r), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleRecordDouble(w http.ResponseWriter, r *http.Request) {
	var req performanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := s.svc.RecordDoublePerformance(r.Context(), userIDFromContext(r), req.Exercise, req.PerformedReps)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleDeactivatePlan retires the plan named by ?exercise=.
func (s *Server) handleDeactivatePlan(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	if err := s.svc.DeactivatePlan(r.Context(), userIDFromContext(r), kind, r.URL.Query().Get("exercise")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
