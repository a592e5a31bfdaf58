package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // postgres driver

	"github.com/jtquiroga/DAA-por-region/internal/export"
	"github.com/jtquiroga/DAA-por-region/pkg/platform/sentinel"
)

// PostgresStore persists run records in PostgreSQL for deployments where the
// dashboard runs more than one replica.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres connects to url and ensures the export_runs table exists.
func NewPostgres(ctx context.Context, url string) (*PostgresStore, error) {
	if url == "" {
		return nil, errors.New("postgres URL required")
	}
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS export_runs (
		id TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		payload JSONB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create export_runs table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Append records a new run.
func (s *PostgresStore) Append(ctx context.Context, run export.Run) error {
	payload, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO export_runs (id, created_at, payload) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`,
		run.ID, run.CreatedAt.UTC(), payload,
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
func (s *PostgresStore) Get(ctx context.Context, id string) (export.Run, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM export_runs WHERE id = $1`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return export.Run{}, fmt.Errorf("run %s: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return export.Run{}, fmt.Errorf("select run: %w", err)
	}
	return decodeRun(payload)
}

// Update replaces an existing run record.
func (s *PostgresStore) Update(ctx context.Context, run export.Run) error {
	payload, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `UPDATE export_runs SET payload = $1 WHERE id = $2`, payload, run.ID)
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
func (s *PostgresStore) List(ctx context.Context, limit int) ([]export.Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM export_runs ORDER BY created_at DESC, id LIMIT $1`, limit)
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
