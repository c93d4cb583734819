package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestNewManagerRegistersCollectors verifies every collector lands on the
// registry under the namespace and subsystem.
func TestNewManagerRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewManager("server", reg)

	m.CounterRequests.WithLabelValues("GET", "200").Inc()
	m.CounterWeightIncreases.WithLabelValues("linear").Inc()
	m.CounterWorkoutsLogged.Inc()
	m.CounterWorkoutsRejects.Inc()
	m.CounterImportedSets.Add(12)
	m.CounterHandlerPanics.Inc()
	m.HistRequestDuration.Observe(0.02)

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	if len(families) != 7 {
		t.Errorf("families = %d, want 7", len(families))
	}
	for _, f := range families {
		if !strings.HasPrefix(f.GetName(), "liftlog_server_") {
			t.Errorf("metric %q missing liftlog_server_ prefix", f.GetName())
		}
	}
	if got := testutil.ToFloat64(m.CounterImportedSets); got != 12 {
		t.Errorf("imported sets = %v, want 12", got)
	}
}

// TestNewRegistryExtraCollectors verifies extra collectors are registered
// next to the runtime collectors.
func TestNewRegistryExtraCollectors(t *testing.T) {
	extra := prometheus.NewCounter(prometheus.CounterOpts{Name: "extra_total", Help: "extra"})
	reg := NewRegistry(extra)

	if err := reg.Register(extra); err == nil {
		t.Error("expected duplicate registration error")
	}
	if got, err := testutil.GatherAndCount(reg, "extra_total"); err != nil || got != 1 {
		t.Errorf("extra_total count = %d (%v), want 1", got, err)
	}
}

// TestNewTestManagerIsolated verifies test managers do not collide.
func TestNewTestManagerIsolated(t *testing.T) {
	a := NewTestManager()
	b := NewTestManager()
	a.CounterWorkoutsLogged.Inc()
	if got := testutil.ToFloat64(b.CounterWorkoutsLogged); got != 0 {
		t.Errorf("b workouts = %v, want 0", got)
	}
}
