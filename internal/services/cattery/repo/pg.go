package repo

import (
	"context"
	"errors"

	"cattery/internal/modkit/repokit"
	perr "cattery/internal/platform/errors"
	"cattery/internal/platform/store"

	"github.com/jackc/pgx/v5"
)

const pgSchema = `CREATE TABLE IF NOT EXISTS cattery_snapshots (
	installation_id uuid PRIMARY KEY,
	payload jsonb NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
)`

type (
	pg struct {
		q  repokit.Queryer
		id string
	}
	pgBinder struct{ id string }
)

// NewPG constructs a repo binder for Postgres scoped to one installation
func NewPG(installationID string) repokit.Binder[Snapshots] { return pgBinder{id: installationID} }

// Bind implements repokit.Binder
func (b pgBinder) Bind(q repokit.Queryer) Snapshots { return &pg{q: q, id: b.id} }

// Migrate implements Migrator
func (s *pg) Migrate(ctx context.Context) error {
	_, err := s.q.Exec(ctx, pgSchema)
	return perr.FromPostgres(err, "migrate cattery_snapshots")
}

// Read implements Snapshots
func (s *pg) Read(ctx context.Context) ([]byte, error) {
	payload, err := store.Scalar[[]byte](ctx, s.q,
		`SELECT payload FROM cattery_snapshots WHERE installation_id = $1`, s.id)
	if err != nil {
		if errors.Is(store.NotFoundIf(err, pgx.ErrNoRows), perr.ErrNotFound) {
			return nil, perr.ErrNotFound
		}
		return nil, perr.FromPostgres(err, "read cattery snapshot")
	}
	return payload, nil
}

// pgWriteAttempts bounds retries of a write the server rolled back
const pgWriteAttempts = 3

// Write implements Snapshots
// concurrent writers for the same installation queue on an advisory lock
func (s *pg) Write(ctx context.Context, payload []byte) error {
	q := s.q
	if tx, ok := q.(repokit.TxRunner); ok {
		q = repokit.WithBeginHooks(tx, repokit.AdvisoryXactLock("cattery:"+s.id))
	}
	var err error
	for attempt := 1; attempt <= pgWriteAttempts; attempt++ {
		err = repokit.WithTx(ctx, q, func(q repokit.Queryer) error {
			return store.ExecOne(ctx, q, `
				INSERT INTO cattery_snapshots (installation_id, payload, updated_at)
				VALUES ($1, $2::jsonb, now())
				ON CONFLICT (installation_id) DO UPDATE
				SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
				s.id, string(payload),
			)
		})
		if !perr.Retryable(err) {
			break
		}
	}
	return perr.FromPostgres(err, "write cattery snapshot")
}
