package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
)

// importNamespace seeds the deterministic IDs of imported sessions, so
// importing the same export twice stores each session once.
var importNamespace = uuid.MustParse("6f1c9a52-3b0e-4d7e-9a61-2f4f1d8b7c10")

// ImportResult summarizes one import.
type ImportResult struct {
	Received     int   `json:"sessions_received"`
	Logged       int   `json:"sessions_logged"`
	Duplicates   int   `json:"sessions_duplicate"`
	Rejected     int   `json:"sessions_rejected"`
	SetsImported int64 `json:"sets_imported"`
}

// ImportSessions logs externally recorded sessions oldest first so streaks
// build up in order. Sessions without a valid exercise are counted as
// rejected and skipped.
func (s *Service) ImportSessions(ctx context.Context, userID int, source string, sessions []engine.SessionInput) (ImportResult, error) {
	start := time.Now()
	res := ImportResult{Received: len(sessions)}

	logID, err := s.store.InsertImportLog(ctx, storage.ImportLog{
		UserID:           userID,
		Source:           source,
		Status:           "running",
		SessionsReceived: len(sessions),
	})
	if err != nil {
		s.log.Error("failed to create import log", "error", err)
	}

	ordered := make([]engine.SessionInput, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })

	var importErr error
	for _, in := range ordered {
		id := uuid.NewSHA1(importNamespace, fmt.Appendf(nil, "%d|%s|%s|%s",
			userID, source, in.Date.Format(time.RFC3339), in.Name))
		lr, err := s.logWorkout(ctx, userID, in, engine.Strength, id)
		if errors.Is(err, engine.ErrNoValidExercises) {
			res.Rejected++
			continue
		}
		if err != nil {
			importErr = fmt.Errorf("importing session %q on %s: %w", in.Name, in.Date.Format("2006-01-02"), err)
			break
		}
		if lr.Duplicate {
			res.Duplicates++
			continue
		}
		res.Logged++
		for _, v := range lr.Volumes {
			res.SetsImported += int64(v.SetsCount)
		}
	}

	if s.metrics != nil {
		s.metrics.CounterImportedSets.Add(float64(res.SetsImported))
	}

	if logID > 0 {
		durationMs := int(time.Since(start).Milliseconds())
		entry := storage.ImportLog{
			Status:           "success",
			SessionsReceived: res.Received,
			SessionsLogged:   res.Logged,
			SessionsRejected: res.Rejected,
			SetsImported:     res.SetsImported,
			DurationMs:       &durationMs,
		}
		if importErr != nil {
			msg := importErr.Error()
			entry.Status = "error"
			entry.ErrorMessage = &msg
		}
		if err := s.store.UpdateImportLog(ctx, logID, entry); err != nil {
			s.log.Error("failed to update import log", "error", err)
		}
	}

	if importErr != nil {
		return res, importErr
	}
	s.log.Info("import complete",
		"user_id", userID,
		"source", source,
		"logged", res.Logged,
		"duplicates", res.Duplicates,
		"rejected", res.Rejected)
	return res, nil
}

// ImportLogs returns the most recent imports.
func (s *Service) ImportLogs(ctx context.Context, userID, limit int) ([]storage.ImportLog, error) {
	return s.store.QueryImportLogs(ctx, userID, limit)
}
