package repo

import (
	"context"
	"errors"

	perr "cattery/internal/platform/errors"
	"cattery/internal/platform/store"
	s3x "cattery/internal/platform/store/s3"
)

// S3 keeps the record as <prefix><installation id>.json
type S3 struct {
	blob store.Blob
	key  string
}

// NewS3 returns an S3 backend for one installation
func NewS3(blob store.Blob, prefix, installationID string) *S3 {
	return &S3{blob: blob, key: prefix + installationID + ".json"}
}

// Key is the object key being written
func (s *S3) Key() string { return s.key }

// Read implements Snapshots
func (s *S3) Read(ctx context.Context) ([]byte, error) {
	b, err := s.blob.Get(ctx, s.key)
	if errors.Is(err, s3x.ErrNoObject) {
		return nil, perr.ErrNotFound
	}
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "get %s", s.key)
	}
	return b, nil
}

// Write implements Snapshots
func (s *S3) Write(ctx context.Context, payload []byte) error {
	if err := s.blob.Put(ctx, s.key, payload); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "put %s", s.key)
	}
	return nil
}
