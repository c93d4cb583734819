// Package metrics holds the Prometheus collectors exposed at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "liftlog"

// Manager groups the request and training counters.
type Manager struct {
	CounterRequests        *prometheus.CounterVec
	CounterHandlerPanics   prometheus.Counter
	CounterWorkoutsLogged  prometheus.Counter
	CounterWorkoutsRejects prometheus.Counter
	CounterWeightIncreases *prometheus.CounterVec
	CounterImportedSets    prometheus.Counter

	HistRequestDuration prometheus.Histogram
}

// NewRegistry returns a registry carrying build, Go runtime and process
// collectors plus any extra collectors given.
func NewRegistry(extra ...prometheus.Collector) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	for _, c := range extra {
		reg.MustRegister(c)
	}
	return reg
}

// NewTestManager returns a Manager on a throwaway registry.
func NewTestManager() *Manager {
	return NewManager("test", prometheus.NewRegistry())
}

func NewManager(subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requests_total",
			Help:      "The total number of HTTP requests",
		}, []string{"method", "status"}),
		CounterHandlerPanics: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "handler_panics_total",
			Help:      "The total number of recovered handler panics",
		}),
		CounterWorkoutsLogged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "workouts_logged_total",
			Help:      "Workout sessions stored",
		}),
		CounterWorkoutsRejects: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "workouts_rejected_total",
			Help:      "Workout submissions rejected for having no valid exercise",
		}),
		CounterWeightIncreases: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "weight_increases_total",
			Help:      "Weight increases granted by progression plans",
		}, []string{"plan"}),
		CounterImportedSets: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "imported_sets_total",
			Help:      "Working sets imported from CSV exports",
		}),
		HistRequestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		}),
	}
}
