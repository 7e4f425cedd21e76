package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	perr "cattery/internal/platform/errors"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS cattery_snapshots (
	installation_id TEXT PRIMARY KEY,
	payload BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLite keeps the record in a row of cattery_snapshots
type SQLite struct {
	db *sql.DB
	id string
}

// NewSQLite returns a SQLite backend for one installation
func NewSQLite(db *sql.DB, installationID string) *SQLite {
	return &SQLite{db: db, id: installationID}
}

// Migrate implements Migrator
func (s *SQLite) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteSchema)
	return perr.FromSQLite(err, "migrate cattery_snapshots")
}

// Read implements Snapshots
func (s *SQLite) Read(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM cattery_snapshots WHERE installation_id = ?`, s.id,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, perr.ErrNotFound
	}
	if err != nil {
		return nil, perr.FromSQLite(err, "read cattery snapshot")
	}
	return payload, nil
}

// Write implements Snapshots
func (s *SQLite) Write(ctx context.Context, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cattery_snapshots (installation_id, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(installation_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		s.id, payload, time.Now().UnixMilli(),
	)
	return perr.FromSQLite(err, "write cattery snapshot")
}
