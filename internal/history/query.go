package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RunSummary is one journaled run with its outcome tallies.
type RunSummary struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	DryRun     bool
	Status     string
	Error      string
	Found      int
	Missing    int
	Skipped    int
	Failed     int
	Mutations  int
}

// Entry is one journaled collection result.
type Entry struct {
	SectionKey   string
	SectionTitle string
	RatingKey    string
	Title        string
	Outcome      string
	PosterPath   string
	ImageID      string
	DefaultImage string
	Error        string
	RecordedAt   time.Time
}

// Recent returns the latest runs, newest first. A limit of zero or less
// returns every run.
func (s *Store) Recent(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `
        SELECT r.id, r.started_at, r.finished_at, r.dry_run, r.status, r.error,
            COALESCE(SUM(CASE WHEN x.outcome IN ('already_correct', 'reselected', 'uploaded') THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN x.outcome = 'missing' THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN x.outcome = 'skipped' THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN x.outcome = 'failed' THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN x.outcome IN ('reselected', 'uploaded') OR x.default_image IS NOT NULL THEN 1 ELSE 0 END), 0)
        FROM runs r
        LEFT JOIN results x ON x.run_id = r.id
        GROUP BY r.id
        ORDER BY r.started_at DESC, r.rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			run      RunSummary
			started  string
			finished sql.NullString
			dryRun   int
			errText  sql.NullString
		)
		if err := rows.Scan(&run.ID, &started, &finished, &dryRun, &run.Status, &errText,
			&run.Found, &run.Missing, &run.Skipped, &run.Failed, &run.Mutations); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt = parseTime(started)
		if finished.Valid {
			run.FinishedAt = parseTime(finished.String)
		}
		run.DryRun = dryRun != 0
		run.Error = errText.String
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Results returns the journaled results of one run in processing order.
func (s *Store) Results(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT section_key, section_title, rating_key, title, outcome,
            poster_path, image_id, default_image, error, recorded_at
        FROM results WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry                                    Entry
			posterPath, imageID, defaultImg, errText sql.NullString
			recorded                                 string
		)
		if err := rows.Scan(&entry.SectionKey, &entry.SectionTitle, &entry.RatingKey, &entry.Title, &entry.Outcome,
			&posterPath, &imageID, &defaultImg, &errText, &recorded); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		entry.PosterPath = posterPath.String
		entry.ImageID = imageID.String
		entry.DefaultImage = defaultImg.String
		entry.Error = errText.String
		entry.RecordedAt = parseTime(recorded)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return entries, nil
}

func parseTime(value string) time.Time {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
