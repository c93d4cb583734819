package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/ingest/alpha"
	"github.com/claude/liftlog/internal/service"
	"github.com/claude/liftlog/internal/storage"
	"github.com/claude/liftlog/internal/upload"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	exportPath := flag.String("path", "", "CSV export file or directory of exports (required)")
	userID := flag.Int("user", 1, "user ID to import into")
	dryRun := flag.Bool("dry-run", false, "parse exports without writing to the database")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *exportPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-import -config config.yaml -path /path/to/export.csv [-user N] [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	files, err := exportFiles(*exportPath)
	if err != nil {
		log.Error("export path not readable", "path", *exportPath, "error", err)
		os.Exit(1)
	}
	log.Info("found exports", "files", len(files))

	if *dryRun {
		log.Info("DRY RUN mode: no data will be written to the database")
		for _, f := range files {
			sessions, err := parseFile(f)
			if err != nil {
				log.Error("parse failed", "file", f, "error", err)
				continue
			}
			prepared := alpha.ToSessionInputs(sessions)
			log.Info("parsed export", "file", f, "sessions", len(sessions), "with_working_sets", len(prepared))
		}
		return
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()

	// Run migrations
	if err := storage.RunMigrations(dsn); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	ctx := context.Background()

	// Connect database
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	svc := service.New(db, log, nil, service.Defaults{
		BodyWeightKg:    cfg.Defaults.BodyWeightKg,
		DurationMinutes: cfg.Defaults.DurationMinutes,
		TargetReps:      cfg.Defaults.TargetReps,
	})
	provider := alpha.NewProvider(svc, log)

	var total service.ImportResult
	failed := 0
	for _, f := range files {
		res, err := ingestFile(ctx, provider, f, *userID)
		if err != nil {
			log.Error("import failed", "file", f, "error", err)
			failed++
			continue
		}
		total.Received += res.Received
		total.Logged += res.Logged
		total.Duplicates += res.Duplicates
		total.Rejected += res.Rejected
		total.SetsImported += res.SetsImported
	}

	log.Info("import stats",
		"files", len(files),
		"files_failed", failed,
		"sessions_received", total.Received,
		"sessions_logged", total.Logged,
		"sessions_duplicate", total.Duplicates,
		"sessions_rejected", total.Rejected,
		"sets_imported", total.SetsImported,
	)
	if failed > 0 {
		os.Exit(1)
	}
	log.Info("import complete")
}

// exportFiles returns path itself for a file, or every CSV below a directory.
func exportFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return upload.FindExports(path)
}

func parseFile(path string) ([]alpha.Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return alpha.Parse(f)
}

func ingestFile(ctx context.Context, p *alpha.Provider, path string, userID int) (service.ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return service.ImportResult{}, err
	}
	defer f.Close()
	return p.Ingest(ctx, f, userID)
}
