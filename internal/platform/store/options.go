package store

import (
	"cattery/internal/platform/logger"
)

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by subclients
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithBlob installs an object store without going through S3 config
func WithBlob(b Blob) Option {
	return func(s *Store) error {
		s.Blob = b
		return nil
	}
}
