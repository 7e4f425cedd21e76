package repo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	perr "cattery/internal/platform/errors"
	"cattery/internal/platform/store"
	s3x "cattery/internal/platform/store/s3"
	"cattery/internal/platform/store/sqlite"
)

// exercise runs the shared Snapshots contract
func exercise(t *testing.T, name string, s Snapshots) {
	t.Helper()
	ctx := context.Background()
	if _, err := s.Read(ctx); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("%s: empty read want not found, got %v", name, err)
	}
	if err := s.Write(ctx, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("%s: write: %v", name, err)
	}
	if err := s.Write(ctx, []byte(`{"a":2}`)); err != nil {
		t.Fatalf("%s: overwrite: %v", name, err)
	}
	got, err := s.Read(ctx)
	if err != nil {
		t.Fatalf("%s: read: %v", name, err)
	}
	if string(got) != `{"a":2}` {
		t.Fatalf("%s: got %s", name, got)
	}
}

func TestMemorySnapshots(t *testing.T) {
	m := NewMemory()
	exercise(t, "memory", m)

	b, _ := m.Read(context.Background())
	b[0] = 'x'
	again, _ := m.Read(context.Background())
	if again[0] != '{' {
		t.Fatalf("memory leaked its buffer")
	}
}

func TestFileSnapshots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cattery.json")
	f := NewFile(path)
	exercise(t, "file", f)

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
	if NewFile("").Path() != DefaultFilePath {
		t.Fatalf("default path not applied")
	}
}

func TestSQLiteSnapshots(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.Config{Path: filepath.Join(t.TempDir(), "c.db")})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	st := &store.Store{SQLite: db}
	snaps, err := Open(ctx, st, Config{Backend: BackendSQLite, InstallationID: "one"})
	if err != nil {
		t.Fatalf("open backend: %v", err)
	}
	exercise(t, "sqlite", snaps)

	// a second installation does not see the first one's record
	other, err := Open(ctx, st, Config{Backend: BackendSQLite, InstallationID: "two"})
	if err != nil {
		t.Fatalf("open other: %v", err)
	}
	if _, err := other.Read(ctx); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("installations should be isolated, got %v", err)
	}
}

func TestS3Snapshots(t *testing.T) {
	fake := s3x.NewFake()
	blob := s3x.New(fake, "pets")
	s := NewS3(blob, "cattery/", "abc")
	if s.Key() != "cattery/abc.json" {
		t.Fatalf("key: %s", s.Key())
	}
	exercise(t, "s3", s)

	fake.Err = errors.New("boom")
	if _, err := s.Read(context.Background()); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
}

func TestOpenRejectsMissingSeams(t *testing.T) {
	ctx := context.Background()
	for _, b := range []string{BackendSQLite, BackendPostgres, BackendS3} {
		if _, err := Open(ctx, &store.Store{}, Config{Backend: b}); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
			t.Fatalf("%s: want unavailable, got %v", b, err)
		}
	}
	if _, err := Open(ctx, nil, Config{Backend: "tape"}); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("unknown backend: %v", err)
	}
	if s, err := Open(ctx, nil, Config{Backend: "MEMORY"}); err != nil || s == nil {
		t.Fatalf("memory should open without seams: %v", err)
	}
}
