package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"resonate/internal/ingest"
)

// Run kinds recorded in the ledger.
const (
	KindScan   = "scan"
	KindIngest = "ingest"
	KindReport = "report"
	KindExport = "export"
	KindSync   = "sync"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Run is one recorded pipeline invocation.
type Run struct {
	ID         string
	Kind       string
	Status     string
	StartedAt  time.Time
	FinishedAt time.Time
	Summary    string
}

// Finished reports whether the run has a recorded end time.
func (r Run) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// Store manages run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the ledger database and applies
// migrations. The parent directory is created if needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure ledger dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

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
	if err := store.applyMigrations(context.Background()); err != nil {
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

// BeginRun records the start of a run and returns its generated ID.
func (s *Store) BeginRun(ctx context.Context, kind string) (string, error) {
	id := uuid.NewString()
	started := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, kind, status, started_at) VALUES (?, ?, ?, ?)",
		id, kind, StatusRunning, started,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// FinishRun marks a run as completed or failed and stores its summary.
// The summary is marshaled to JSON; a nil summary stores NULL.
func (s *Store) FinishRun(ctx context.Context, id, status string, summary any) error {
	finished := time.Now().UTC().Format(time.RFC3339Nano)

	var summaryJSON sql.NullString
	if summary != nil {
		data, err := json.Marshal(summary)
		if err != nil {
			return fmt.Errorf("marshal run summary: %w", err)
		}
		summaryJSON = sql.NullString{String: string(data), Valid: true}
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE runs SET status = ?, finished_at = ?, summary_json = ? WHERE id = ?",
		status, finished, summaryJSON, id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("finish run: no run with id %s", id)
	}
	return nil
}

// RecordIngestActions stores the per-file outcomes of an ingest batch.
func (s *Store) RecordIngestActions(ctx context.Context, runID string, actions []ingest.Action) error {
	if len(actions) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin actions tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO ingest_actions (run_id, source, destination, conflict, playlist, status, detail)
         VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare action insert: %w", err)
	}
	defer stmt.Close()

	for _, action := range actions {
		_, err := stmt.ExecContext(ctx,
			runID,
			action.Source,
			nullableString(action.Destination),
			nullableString(action.Conflict),
			nullableString(action.Playlist),
			string(action.Status),
			nullableString(action.Detail),
		)
		if err != nil {
			return fmt.Errorf("insert action for %s: %w", action.Source, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit actions: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first. A limit <= 0 returns
// everything.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	query := "SELECT id, kind, status, started_at, finished_at, summary_json FROM runs ORDER BY started_at DESC"
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

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// IngestActions returns the recorded actions of one ingest run in insert
// order.
func (s *Store) IngestActions(ctx context.Context, runID string) ([]ingest.Action, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT source, destination, conflict, playlist, status, detail FROM ingest_actions WHERE run_id = ? ORDER BY id",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query actions: %w", err)
	}
	defer rows.Close()

	var actions []ingest.Action
	for rows.Next() {
		var action ingest.Action
		var destination, conflict, playlist, detail sql.NullString
		var status string
		if err := rows.Scan(&action.Source, &destination, &conflict, &playlist, &status, &detail); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		action.Destination = destination.String
		action.Conflict = conflict.String
		action.Playlist = playlist.String
		action.Detail = detail.String
		action.Status = ingest.Status(status)
		actions = append(actions, action)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate actions: %w", err)
	}
	return actions, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var run Run
	var started string
	var finished, summary sql.NullString
	if err := rows.Scan(&run.ID, &run.Kind, &run.Status, &started, &finished, &summary); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	startedAt, err := time.Parse(time.RFC3339Nano, started)
	if err != nil {
		return Run{}, fmt.Errorf("parse run start time: %w", err)
	}
	run.StartedAt = startedAt

	if finished.Valid {
		finishedAt, err := time.Parse(time.RFC3339Nano, finished.String)
		if err != nil {
			return Run{}, fmt.Errorf("parse run finish time: %w", err)
		}
		run.FinishedAt = finishedAt
	}
	run.Summary = summary.String
	return run, nil
}

func nullableString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
