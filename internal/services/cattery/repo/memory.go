package repo

import (
	"context"
	"sync"

	perr "cattery/internal/platform/errors"
)

// Memory keeps the record in process
type Memory struct {
	mu   sync.Mutex
	data []byte
}

// NewMemory returns an empty Memory
func NewMemory() *Memory { return &Memory{} }

// Read implements Snapshots
func (m *Memory) Read(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, perr.ErrNotFound
	}
	return append([]byte(nil), m.data...), nil
}

// Write implements Snapshots
func (m *Memory) Write(_ context.Context, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), payload...)
	return nil
}
