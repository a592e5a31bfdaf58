package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/jtquiroga/DAA-por-region/internal/export"
	"github.com/jtquiroga/DAA-por-region/pkg/platform/sentinel"
)

// sqliteTimeFormat is fixed-width so lexical ordering of the created_at
// column matches chronological ordering. RFC3339Nano drops trailing zeros
// and would not sort correctly.
const sqliteTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore persists run records in a single SQLite table as JSON
// payloads, typically in a file next to the exported artifacts.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens, and if needed creates, the history database at path.
func NewSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "exports/history.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS export_runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create export_runs table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Append records a new run.
func (s *SQLiteStore) Append(ctx context.Context, run export.Run) error {
	payload, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO export_runs (id, created_at, payload) VALUES (?, ?, ?) ON CONFLICT(id) DO NOTHING`,
		run.ID, run.CreatedAt.UTC().Format(sqliteTimeFormat), payload,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if inserted == 0 {
		return fmt.Errorf("run %s already exists: %w", run.ID, sentinel.ErrConflict)
	}
	return nil
}

// Get returns the run with the given ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (export.Run, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM export_runs WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return export.Run{}, fmt.Errorf("run %s: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return export.Run{}, fmt.Errorf("select run: %w", err)
	}
	return decodeRun(payload)
}

// Update replaces an existing run record.
func (s *SQLiteStore) Update(ctx context.Context, run export.Run) error {
	payload, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `UPDATE export_runs SET payload = ? WHERE id = ?`, payload, run.ID)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	updated, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if updated == 0 {
		return fmt.Errorf("run %s: %w", run.ID, sentinel.ErrNotFound)
	}
	return nil
}

// List returns up to limit runs, most recently created first.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]export.Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM export_runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []export.Run
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run, err := decodeRun(payload)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func decodeRun(payload []byte) (export.Run, error) {
	var run export.Run
	if err := json.Unmarshal(payload, &run); err != nil {
		return export.Run{}, fmt.Errorf("decode run: %w", err)
	}
	return run, nil
}
