package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cattery/internal/core/cattery"
)

func TestCaretakerRefreshesUntilCancelled(t *testing.T) {
	f := newFixture(t, 3)
	f.miss()
	if _, err := f.svc.Adopt(context.Background()); err != nil {
		t.Fatalf("adopt: %v", err)
	}
	f.clock.Advance(15 * cattery.Day)

	events, cancelSub := f.svc.Subscribe()
	defer cancelSub()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewCaretaker(f.svc, time.Millisecond).Run(ctx) }()

	select {
	case v := <-events:
		if v.State.Cats[0].Brightness != cattery.FadedBrightness {
			t.Fatalf("caretaker did not fade: %+v", v.State.Cats[0])
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("caretaker never refreshed")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("run: %v", err)
	}
}

func TestCaretakerDisabled(t *testing.T) {
	f := newFixture(t, 3)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := NewCaretaker(f.svc, 0).Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("run: %v", err)
	}
	if f.storage.saves != 0 {
		t.Fatalf("disabled caretaker touched storage")
	}
}
