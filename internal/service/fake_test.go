package service

import (
	"io"
	"log/slog"
	"time"

	"github.com/claude/liftlog/internal/service/servicetest"
)

func testService(st *servicetest.Store, now time.Time) *Service {
	s := New(st, slog.New(slog.NewTextHandler(io.Discard, nil)), nil, Defaults{})
	s.now = func() time.Time { return now }
	return s
}
