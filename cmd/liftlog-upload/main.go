package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/claude/liftlog/internal/upload"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "LiftLog server URL (e.g. https://liftlog.tail1234.ts.net)")
	exportPath := flag.String("path", "", "directory containing Alpha Progression CSV exports")
	apiKey := flag.String("api-key", os.Getenv("LIFTLOG_AUTH_API_KEY"), "import API key (default $LIFTLOG_AUTH_API_KEY)")
	stateDir := flag.String("state-dir", "", "directory for the upload state database (default ~/.liftlog-upload)")
	dryRun := flag.Bool("dry-run", false, "parse exports but don't send to server")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftlog-upload", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *exportPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-upload -server <URL> -path <export dir> [-api-key KEY] [-dry-run]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *serverURL == "" && !*dryRun {
		fmt.Fprintf(os.Stderr, "Error: -server is required (or use -dry-run)\n")
		os.Exit(1)
	}

	info, err := os.Stat(*exportPath)
	if err != nil || !info.IsDir() {
		log.Error("export directory not found", "path", *exportPath)
		os.Exit(1)
	}

	// Open state database
	if *stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}
		*stateDir = filepath.Join(homeDir, ".liftlog-upload")
	}

	state, err := upload.OpenStateDB(*stateDir)
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	if last, err := state.SyncState(upload.LastSyncKey); err == nil && last != "" {
		log.Info("previous sync", "at", last)
	}

	// Create client (nil in dry-run mode)
	var client *upload.Client
	if !*dryRun {
		client = upload.NewClient(*serverURL, *apiKey)
	} else {
		log.Info("DRY RUN mode: files will be parsed but not sent")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	uploader := upload.New(client, state, *exportPath, *dryRun, log)
	stats, err := uploader.Run(ctx)
	if err != nil {
		log.Error("upload failed", "error", err)
		printStats(stats)
		os.Exit(1)
	}

	printStats(stats)
	log.Info("upload complete")
}

func printStats(stats *upload.Stats) {
	fmt.Println()
	fmt.Println("=== Upload Summary ===")
	fmt.Printf("  Files total:      %d\n", stats.FilesTotal)
	fmt.Printf("  Files uploaded:   %d\n", stats.FilesUploaded)
	fmt.Printf("  Files skipped:    %d (already uploaded)\n", stats.FilesSkipped)
	fmt.Printf("  Files errored:    %d\n", stats.FilesErrored)
	fmt.Println()
	fmt.Printf("  Sessions read:    %d\n", stats.SessionsReceived)
	fmt.Printf("  Sessions logged:  %d\n", stats.SessionsLogged)
	fmt.Printf("  Duplicates:       %d\n", stats.SessionsDuplicate)
	fmt.Printf("  Rejected:         %d\n", stats.SessionsRejected)
	fmt.Printf("  Sets imported:    %d\n", stats.SetsImported)
	fmt.Println()
}
