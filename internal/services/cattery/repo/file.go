package repo

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	perr "cattery/internal/platform/errors"
)

// DefaultFilePath is where the file backend writes when no path is configured
const DefaultFilePath = "data/cattery.json"

// File keeps the record in a single JSON file replaced atomically
type File struct {
	path string
}

// NewFile returns a File at path
func NewFile(path string) *File {
	if path == "" {
		path = DefaultFilePath
	}
	return &File{path: path}
}

// Path is the file being written
func (f *File) Path() string { return f.path }

// Read implements Snapshots
func (f *File) Read(_ context.Context) ([]byte, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, perr.ErrNotFound
	}
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "read %s", f.path)
	}
	return b, nil
}

// Write implements Snapshots
func (f *File) Write(_ context.Context, payload []byte) error {
	if err := atomicWrite(f.path, payload); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "write %s", f.path)
	}
	return nil
}

func atomicWrite(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
