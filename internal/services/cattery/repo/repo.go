package repo

import (
	"context"

	"cattery/internal/core/cattery"
)

// Storage loads and saves the whole aggregate
type Storage interface {
	Load(ctx context.Context) (cattery.State, error)
	Save(ctx context.Context, s cattery.State) error
}

// Codec adapts a Snapshots backend to Storage
type Codec struct {
	Snaps Snapshots
}

// NewStorage wraps snaps with the record codec
func NewStorage(snaps Snapshots) *Codec { return &Codec{Snaps: snaps} }

// Load reads and decodes the record; missing records surface as perr.ErrNotFound
func (c *Codec) Load(ctx context.Context) (cattery.State, error) {
	b, err := c.Snaps.Read(ctx)
	if err != nil {
		return cattery.State{}, err
	}
	return Decode(b)
}

// Save encodes and replaces the record
func (c *Codec) Save(ctx context.Context, s cattery.State) error {
	b, err := Encode(s)
	if err != nil {
		return err
	}
	return c.Snaps.Write(ctx, b)
}
