package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/liftlog/internal/ingest/alpha"
	"github.com/claude/liftlog/internal/metrics"
	"github.com/claude/liftlog/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options carries the optional parts of a Server.
type Options struct {
	// APIKey guards the import endpoints.
	APIKey string
	// Identity resolves the caller. Nil means DevIdentity.
	Identity func(http.Handler) http.Handler
	// Metrics and Gatherer enable request metrics and /metrics.
	Metrics  *metrics.Manager
	Gatherer prometheus.Gatherer
	// MCP is mounted at /mcp behind Identity when set.
	MCP http.Handler
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	svc    *service.Service
	alpha  *alpha.Provider
	log    *slog.Logger
	opts   Options
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(svc *service.Service, alphaProvider *alpha.Provider, opts Options, log *slog.Logger) *Server {
	if opts.Identity == nil {
		opts.Identity = DevIdentity
	}
	s := &Server{
		svc:    svc,
		alpha:  alphaProvider,
		log:    log,
		opts:   opts,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(PanicRecovery(s.log, s.opts.Metrics))
	s.router.Use(RequestMetrics(s.opts.Metrics))
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	if s.opts.Gatherer != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))
	}

	s.router.Group(func(r chi.Router) {
		r.Use(s.opts.Identity)

		if s.opts.MCP != nil {
			r.Mount("/mcp", s.opts.MCP)
		}

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/me", s.handleMe)
			r.Get("/profile", s.handleProfile)
			r.Put("/profile/body-weight", s.handleSetBodyWeight)

			r.Post("/workouts", s.handleLogWorkout)
			r.Get("/workouts", s.handleListWorkouts)
			r.Get("/workouts/{id}", s.handleGetWorkout)
			r.Delete("/workouts/{id}", s.handleDeleteWorkout)

			r.Get("/stats", s.handleStats)
			r.Get("/stats/period", s.handlePeriodStats)
			r.Get("/training-summary", s.handleTrainingSummary)
			r.Get("/volume", s.handleVolumeLoads)
			r.Get("/suggestion", s.handleSuggestWeight)
			r.Post("/calories/estimate", s.handleEstimateCalories)

			r.Get("/streak", s.handleStreak)

			r.Get("/goals", s.handleListGoals)
			r.Post("/goals", s.handleCreateGoal)
			r.Post("/goals/{id}/refresh", s.handleRefreshGoal)
			r.Delete("/goals/{id}", s.handleDeleteGoal)

			r.Get("/plans/linear", s.handleListLinearPlans)
			r.Post("/plans/linear", s.handleSaveLinearPlan)
			r.Get("/plans/linear/next", s.handleNextWeight)
			r.Post("/plans/linear/advance", s.handleAdvanceLinearPlan)
			r.Post("/plans/forecast", s.handleForecast)
			r.Get("/plans/double", s.handleListDoublePlans)
			r.Post("/plans/double", s.handleSaveDoublePlan)
			r.Post("/plans/double/record", s.handleRecordDouble)
			r.Delete("/plans/{kind}", s.handleDeactivatePlan)

			r.Get("/import/logs", s.handleImportLogs)
			r.Group(func(r chi.Router) {
				r.Use(APIKeyAuth(s.opts.APIKey))
				r.Post("/import/alpha", s.handleAlphaImport)
			})
		})
	})
}
