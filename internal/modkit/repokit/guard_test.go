package repokit

import (
	"context"
	"errors"
	"testing"
	"time"

	kit "cattery/internal/platform/testkit"
)

type fakeGuard struct {
	err error
	ctx context.Context
}

func (f *fakeGuard) Guard(ctx context.Context) error {
	f.ctx = ctx
	return f.err
}

func TestMustGuard_PanicsOnError(t *testing.T) {
	kit.MustPanic(t, func() {
		MustGuard(context.Background(), &fakeGuard{err: errors.New("sqlite: disk I/O error")})
	})
}

func TestMustGuard_AddsDefaultDeadline(t *testing.T) {
	g := &fakeGuard{}
	start := time.Now()
	kit.MustNotPanic(t, func() { MustGuard(context.Background(), g) })

	dl, ok := g.ctx.Deadline()
	if !ok {
		t.Fatalf("expected a deadline")
	}
	if got := dl.Sub(start); got < GuardTimeout-time.Second || got > GuardTimeout+time.Second {
		t.Fatalf("deadline not ~%v: %v", GuardTimeout, got)
	}
}

func TestMustGuard_HonorsExistingDeadline(t *testing.T) {
	parent, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	g := &fakeGuard{}
	MustGuard(parent, g)

	want, _ := parent.Deadline()
	got, _ := g.ctx.Deadline()
	if !got.Equal(want) {
		t.Fatalf("deadline = %v, want %v", got, want)
	}
}
