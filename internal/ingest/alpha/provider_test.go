package alpha

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/service"
)

type recordingImporter struct {
	userID   int
	source   string
	sessions []engine.SessionInput
}

func (r *recordingImporter) ImportSessions(_ context.Context, userID int, source string, sessions []engine.SessionInput) (service.ImportResult, error) {
	r.userID, r.source, r.sessions = userID, source, sessions
	return service.ImportResult{Received: len(sessions), Logged: len(sessions)}, nil
}

// TestToSessionInputsDropsWarmups verifies only working sets are converted and
// the duration is read from the session header.
func TestToSessionInputsDropsWarmups(t *testing.T) {
	sessions, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	inputs := ToSessionInputs(sessions)
	if len(inputs) != 2 {
		t.Fatalf("inputs = %d, want 2", len(inputs))
	}

	legs := inputs[0]
	if legs.DurationMinutes != 62.0 {
		t.Errorf("DurationMinutes = %v, want 62", legs.DurationMinutes)
	}
	hack := legs.Exercises[0]
	if hack.Exercise != "Hack Squats" || len(hack.Sets) != 3 {
		t.Fatalf("hack squats = %+v", hack)
	}
	if hack.Sets[0].Weight != 115.0 || hack.Sets[0].SetNumber != 1 {
		t.Errorf("first working set = %+v", hack.Sets[0])
	}

	session, err := engine.PrepareSession(legs)
	if err != nil {
		t.Fatal(err)
	}
	// Hanging Leg Raises are all "+0" sets and carry no load.
	if len(session.Exercises) != 5 {
		t.Errorf("prepared exercises = %d, want 5", len(session.Exercises))
	}
	if got := engine.Aggregate(session.Exercises)["Hack Squats"].VolumeLoad; got != 115*28 {
		t.Errorf("hack squat volume = %v, want %v", got, 115*28)
	}
}

func TestProviderIngest(t *testing.T) {
	imp := &recordingImporter{}
	p := NewProvider(imp, slog.New(slog.NewTextHandler(io.Discard, nil)))

	res, err := p.Ingest(context.Background(), strings.NewReader(sampleCSV), 7)
	if err != nil {
		t.Fatal(err)
	}
	if res.Logged != 2 {
		t.Errorf("Logged = %d, want 2", res.Logged)
	}
	if imp.userID != 7 || imp.source != Source || len(imp.sessions) != 2 {
		t.Errorf("importer got user=%d source=%q sessions=%d", imp.userID, imp.source, len(imp.sessions))
	}
}

func TestProviderIngestBadDate(t *testing.T) {
	p := NewProvider(&recordingImporter{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	in := "\"Push\";\"2026-13-45 5:04 h\";\"1:12 hr\"\n"
	if _, err := p.Ingest(context.Background(), strings.NewReader(in), 1); err == nil {
		t.Error("expected error for invalid session date")
	}
}
