package scanstate

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS scan_runs (
	id          TEXT PRIMARY KEY,
	finished_at TEXT NOT NULL
)`

// SQLiteStore records every finished scan as a row in scan_runs.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and prepares the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create scan_runs: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// LastScan returns the most recent finished_at, or nil when there are no runs.
func (s *SQLiteStore) LastScan(ctx context.Context) (*time.Time, error) {
	var raw sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT MAX(finished_at) FROM scan_runs`).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("query last scan: %w", err)
	}
	if !raw.Valid {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw.String)
	if err != nil {
		return nil, fmt.Errorf("parse last scan %q: %w", raw.String, err)
	}
	return &t, nil
}

// SetLastScan inserts a new run finishing at t.
func (s *SQLiteStore) SetLastScan(ctx context.Context, t time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scan_runs (id, finished_at) VALUES (?, ?)`,
		uuid.NewString(), t.UTC().Format(sortableLayout))
	if err != nil {
		return fmt.Errorf("record scan run: %w", err)
	}
	return nil
}

// sortableLayout is fixed width so MAX() over text orders by time.
const sortableLayout = "2006-01-02T15:04:05.000000000Z07:00"
