package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"postersync/internal/poster"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCanceled  = "canceled"
)

// Store is the SQLite-backed run journal.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the journal at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One writer at a time; the run is sequential anyway.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Run is an open journal entry for one sync run.
type Run struct {
	ID     string
	DryRun bool
	store  *Store
}

// BeginRun records the start of a run.
func (s *Store) BeginRun(ctx context.Context, dryRun bool) (*Run, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, dry_run, status) VALUES (?, ?, ?, ?)`,
		id, timestamp(time.Now()), boolInt(dryRun), StatusRunning,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return &Run{ID: id, DryRun: dryRun, store: s}, nil
}

// Record journals one collection result.
func (r *Run) Record(ctx context.Context, result poster.Result) error {
	var defaultImage, errText any
	if result.Default != nil {
		defaultImage = result.Default.ImageID
	}
	if result.Err != nil {
		errText = result.Err.Error()
	}
	_, err := r.store.db.ExecContext(ctx,
		`INSERT INTO results (
            run_id, section_key, section_title, rating_key, title, outcome,
            poster_path, hash, image_id, default_image, error, recorded_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		result.Entity.Scope.Key,
		result.Entity.Scope.Title,
		result.Entity.ID,
		result.Entity.Title,
		result.Outcome.String(),
		nullable(result.Candidate.Path),
		nullable(result.Candidate.Hash),
		nullable(result.ImageID),
		defaultImage,
		errText,
		timestamp(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// Finish closes the run. A context error marks it canceled, any other error
// failed. The write uses a fresh context so a canceled run is still closed.
func (r *Run) Finish(runErr error) error {
	status := StatusCompleted
	var errText any
	switch {
	case runErr == nil:
	case errors.Is(runErr, context.Canceled), errors.Is(runErr, context.DeadlineExceeded):
		status = StatusCanceled
		errText = runErr.Error()
	default:
		status = StatusFailed
		errText = runErr.Error()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := r.store.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, status = ?, error = ? WHERE id = ?`,
		timestamp(time.Now()), status, errText, r.ID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func timestamp(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}
