package service

import (
	"context"
	"time"

	"cattery/internal/platform/logger"
)

// Caretaker refreshes decay and interaction resets on a fixed period
type Caretaker struct {
	svc   *Svc
	every time.Duration
	log   *logger.Logger
}

// NewCaretaker returns a caretaker; every <= 0 disables it
func NewCaretaker(svc *Svc, every time.Duration) *Caretaker {
	return &Caretaker{svc: svc, every: every, log: logger.Named("cattery.caretaker")}
}

// Run blocks until ctx ends
func (c *Caretaker) Run(ctx context.Context) error {
	if c.every <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}
	t := time.NewTicker(c.every)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			c.tick(ctx)
		}
	}
}

func (c *Caretaker) tick(ctx context.Context) {
	_, changed, err := c.svc.Refresh(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("refresh failed")
		return
	}
	if changed {
		c.log.Debug().Msg("cattery refreshed")
	}
}
