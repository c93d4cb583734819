package alpha

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/service"
)

// Source tags sessions and import logs created from these exports.
const Source = "alpha"

// Importer stores converted sessions. *service.Service implements it.
type Importer interface {
	ImportSessions(ctx context.Context, userID int, source string, sessions []engine.SessionInput) (service.ImportResult, error)
}

// Provider turns Alpha Progression CSV exports into logged sessions.
type Provider struct {
	importer Importer
	log      *slog.Logger
}

// NewProvider creates a new Alpha Progression ingest provider.
func NewProvider(importer Importer, log *slog.Logger) *Provider {
	return &Provider{importer: importer, log: log}
}

// Ingest parses an export and imports its sessions for userID. Re-importing
// the same export stores nothing new.
func (p *Provider) Ingest(ctx context.Context, r io.Reader, userID int) (service.ImportResult, error) {
	sessions, err := Parse(r)
	if err != nil {
		return service.ImportResult{}, fmt.Errorf("parsing CSV: %w", err)
	}
	inputs := ToSessionInputs(sessions)
	p.log.Info("alpha export parsed", "user_id", userID, "sessions", len(inputs))
	return p.importer.ImportSessions(ctx, userID, Source, inputs)
}

// ToSessionInputs converts parsed sessions. Warmups are dropped. Exercises are
// identified by name alone, so the same lift on different equipment shares
// its history.
func ToSessionInputs(sessions []Session) []engine.SessionInput {
	out := make([]engine.SessionInput, 0, len(sessions))
	for _, s := range sessions {
		in := engine.SessionInput{Date: s.Date, Name: s.Name}
		if minutes, ok := parseDuration(s.Duration); ok {
			in.DurationMinutes = minutes
		}
		for _, ex := range s.Exercises {
			var sets []engine.RawSet
			for _, set := range ex.Sets {
				if set.Warmup {
					continue
				}
				sets = append(sets, engine.RawSet{
					SetNumber: len(sets) + 1,
					Weight:    set.WeightKg,
					Reps:      set.Reps,
				})
			}
			in.Exercises = append(in.Exercises, engine.ExerciseInput{Exercise: ex.Name, Sets: sets})
		}
		out = append(out, in)
	}
	return out
}
