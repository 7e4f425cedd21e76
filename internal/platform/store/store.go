// Package store opens the optional storage backends a process is configured for
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"cattery/internal/platform/logger"
)

// Store holds whichever backends Open enabled; the rest stay nil
type Store struct {
	Log logger.Logger

	PG     TxRunner
	SQLite *sql.DB
	CH     Clickhouse
	Blob   Blob
}

// Row is a single result row
type Row interface {
	Scan(dest ...any) error
}

// Rows iterates a result set; Close must be called
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag reports what a write touched
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier runs sql against a pool or a transaction
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also open a transaction
// fn's error rolls back, nil commits
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse appends and reads columnar rows
type Clickhouse interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close() error
}

// Blob reads and writes whole objects by key
type Blob interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// Pinger reports readiness
type Pinger interface{ Ping(context.Context) error }

// Open connects every backend cfg enables, closing the earlier ones if a later one fails
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	steps := []struct {
		on   bool
		name string
		open func() error
	}{
		{cfg.PG.Enabled, "pg", func() (err error) { s.PG, err = openPG(ctx, cfg, s); return }},
		{cfg.SQLite.Enabled, "sqlite", func() (err error) { s.SQLite, err = openSQLite(ctx, cfg); return }},
		{cfg.CH.Enabled, "ch", func() (err error) { s.CH, err = openCH(ctx, cfg); return }},
		{cfg.S3.Enabled, "s3", func() (err error) { s.Blob, err = openS3(ctx, cfg); return }},
	}
	for _, st := range steps {
		if !st.on {
			continue
		}
		if err := st.open(); err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("store: open %s: %w", st.name, err)
		}
	}

	s.Log.Debug().
		Bool("pg", s.PG != nil).
		Bool("sqlite", s.SQLite != nil).
		Bool("ch", s.CH != nil).
		Bool("s3", s.Blob != nil).
		Msg("store opened")
	return s, nil
}

type backend struct {
	name string
	v    any
}

// backends lists the open backends by name, in open order
func (s *Store) backends() []backend {
	var out []backend
	if s.PG != nil {
		out = append(out, backend{"pg", s.PG})
	}
	if s.SQLite != nil {
		out = append(out, backend{"sqlite", s.SQLite})
	}
	if s.CH != nil {
		out = append(out, backend{"ch", s.CH})
	}
	if s.Blob != nil {
		out = append(out, backend{"s3", s.Blob})
	}
	return out
}

// Backends names every backend Open knows, in open order
var Backends = []string{"pg", "sqlite", "ch", "s3"}

// Probe pings each open backend; backends that are not open are absent from the result
func (s *Store) Probe(ctx context.Context) map[string]error {
	out := map[string]error{}
	if s == nil {
		return out
	}
	for _, b := range s.backends() {
		switch v := b.v.(type) {
		case *sql.DB:
			out[b.name] = v.PingContext(ctx)
		case Pinger:
			out[b.name] = v.Ping(ctx)
		default:
			out[b.name] = nil
		}
	}
	return out
}

// Guard joins every Probe failure as "<name>: <err>"
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	res := s.Probe(ctx)
	var errs []error
	for _, name := range Backends {
		if err := res[name]; err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Close closes every open backend that can be closed, in reverse open order
func (s *Store) Close(_ context.Context) error {
	var errs []error
	bs := s.backends()
	for i := len(bs) - 1; i >= 0; i-- {
		if c, ok := bs[i].v.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", bs[i].name, err))
			}
		}
	}
	return errors.Join(errs...)
}
