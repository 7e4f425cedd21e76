// Package repo persists the cattery aggregate as one versioned record per installation
package repo

import (
	"context"
	"fmt"
	"strings"

	"cattery/internal/modkit/repokit"
	perr "cattery/internal/platform/errors"
	"cattery/internal/platform/store"
)

// Snapshots reads and replaces the single stored record
// Read returns perr.ErrNotFound when nothing has been written yet
type Snapshots interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, payload []byte) error
}

// Migrator is implemented by backends that own a schema
type Migrator interface {
	Migrate(ctx context.Context) error
}

// Backend names accepted by Open
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

// Backends lists every accepted backend name
var Backends = []string{BackendMemory, BackendFile, BackendSQLite, BackendPostgres, BackendS3}

// Config selects and locates a backend
type Config struct {
	Backend        string
	InstallationID string
	FilePath       string
	S3Prefix       string
}

// Open builds the configured backend over the store seams
func Open(ctx context.Context, st *store.Store, cfg Config) (Snapshots, error) {
	var snaps Snapshots
	switch strings.ToLower(cfg.Backend) {
	case BackendMemory:
		snaps = NewMemory()
	case BackendFile:
		snaps = NewFile(cfg.FilePath)
	case BackendSQLite:
		if st == nil || st.SQLite == nil {
			return nil, perr.Unavailablef("cattery: sqlite backend selected but not opened")
		}
		snaps = NewSQLite(st.SQLite, cfg.InstallationID)
	case BackendPostgres:
		if st == nil || st.PG == nil {
			return nil, perr.Unavailablef("cattery: postgres backend selected but not opened")
		}
		snaps = repokit.MustBind(NewPG(cfg.InstallationID), st.PG)
	case BackendS3:
		if st == nil || st.Blob == nil {
			return nil, perr.Unavailablef("cattery: s3 backend selected but not opened")
		}
		snaps = NewS3(st.Blob, cfg.S3Prefix, cfg.InstallationID)
	default:
		return nil, perr.InvalidArgf("cattery: unknown backend %q", cfg.Backend)
	}

	if m, ok := snaps.(Migrator); ok {
		if err := m.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("cattery: migrate %s: %w", cfg.Backend, err)
		}
	}
	return snaps, nil
}
