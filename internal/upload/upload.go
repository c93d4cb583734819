package upload

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/ingest/alpha"
)

// Stats tracks upload progress.
type Stats struct {
	FilesTotal    int
	FilesUploaded int
	FilesSkipped  int
	FilesErrored  int

	SessionsReceived  int
	SessionsLogged    int
	SessionsDuplicate int
	SessionsRejected  int
	SetsImported      int64
}

// Uploader walks an export directory and POSTs every new or changed CSV file
// to the LiftLog server.
type Uploader struct {
	client *Client
	state  *StateDB
	dir    string
	dryRun bool
	log    *slog.Logger
	stats  Stats
}

// New creates a new Uploader. client may be nil in dry-run mode.
func New(client *Client, state *StateDB, dir string, dryRun bool, log *slog.Logger) *Uploader {
	return &Uploader{
		client: client,
		state:  state,
		dir:    dir,
		dryRun: dryRun,
		log:    log,
	}
}

// LastSyncKey is the sync_state key holding the time of the last completed run.
const LastSyncKey = "last_sync"

// Run executes the upload pipeline. Unreadable files are counted and skipped;
// a failed upload aborts the run so the file is retried next time.
func (u *Uploader) Run(ctx context.Context) (*Stats, error) {
	files, err := FindExports(u.dir)
	if err != nil {
		return &u.stats, fmt.Errorf("scanning %s: %w", u.dir, err)
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return &u.stats, err
		}
		u.stats.FilesTotal++

		relPath, _ := filepath.Rel(u.dir, f)
		info, err := os.Stat(f)
		if err != nil {
			u.log.Warn("stat failed", "file", f, "error", err)
			u.stats.FilesErrored++
			continue
		}

		hash, err := HashFile(f)
		if err != nil {
			u.log.Warn("hash failed", "file", f, "error", err)
			u.stats.FilesErrored++
			continue
		}

		uploaded, err := u.state.IsUploaded(relPath, info.Size(), hash)
		if err != nil {
			u.log.Warn("state check failed", "file", f, "error", err)
			u.stats.FilesErrored++
			continue
		}
		if uploaded {
			u.stats.FilesSkipped++
			continue
		}

		data, err := os.ReadFile(f)
		if err != nil {
			u.log.Warn("read failed", "file", f, "error", err)
			u.stats.FilesErrored++
			continue
		}

		if u.dryRun {
			sessions, err := alpha.Parse(bytes.NewReader(data))
			if err != nil {
				u.log.Warn("parse failed", "file", f, "error", err)
				u.stats.FilesErrored++
				continue
			}
			u.log.Info("dry-run: would send", "file", relPath, "sessions", len(sessions))
			u.stats.SessionsReceived += len(sessions)
			continue
		}

		sum, err := u.client.SendCSV(ctx, data)
		if err != nil {
			return &u.stats, fmt.Errorf("sending %s: %w", relPath, err)
		}
		u.add(sum)

		if err := u.state.MarkUploaded(relPath, info.Size(), hash, sum.Logged); err != nil {
			u.log.Warn("failed to mark uploaded", "file", relPath, "error", err)
		}
		u.stats.FilesUploaded++

		u.log.Info("uploaded export",
			"file", relPath,
			"logged", sum.Logged,
			"duplicates", sum.Duplicates,
			"rejected", sum.Rejected,
		)
	}

	if !u.dryRun {
		if err := u.state.SetSyncState(LastSyncKey, time.Now().UTC().Format(time.RFC3339)); err != nil {
			u.log.Warn("failed to save sync state", "error", err)
		}
	}

	return &u.stats, nil
}

func (u *Uploader) add(sum ImportSummary) {
	u.stats.SessionsReceived += sum.Received
	u.stats.SessionsLogged += sum.Logged
	u.stats.SessionsDuplicate += sum.Duplicates
	u.stats.SessionsRejected += sum.Rejected
	u.stats.SetsImported += sum.SetsImported
}

// FindExports returns every .csv file below dir in lexical order. Hidden
// directories are skipped.
func FindExports(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".csv") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
