package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cattery/internal/core/cattery"
	"cattery/internal/platform/testkit"
	"cattery/internal/services/cattery/repo"
)

func TestOfferKeepsOnlyLatest(t *testing.T) {
	ch := make(chan int, 1)
	offer(ch, 1)
	offer(ch, 2)
	offer(ch, 3)
	if got := <-ch; got != 3 {
		t.Fatalf("want 3, got %d", got)
	}
	select {
	case v := <-ch:
		t.Fatalf("unexpected %d", v)
	default:
	}
}

func TestUpdateWithoutChangeSkipsSave(t *testing.T) {
	fs := &flakyStorage{Storage: repo.NewStorage(repo.NewMemory())}
	st := NewStore(fs, func() time.Time { return t0 }, nil)
	_ = st.Load(context.Background())
	before := fs.saves

	boom := errors.New("nope")
	_, err := st.Update(context.Background(), func(cur cattery.State, _ time.Time) (cattery.State, bool, error) {
		cur.PityCounter = 99
		return cur, false, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err: %v", err)
	}
	if fs.saves != before {
		t.Fatalf("unchanged update must not save")
	}
	if got := st.Load(context.Background()); got.State.PityCounter != 0 {
		t.Fatalf("unsaved change leaked: %d", got.State.PityCounter)
	}
}

func TestUpdateHandsOutAClone(t *testing.T) {
	st := NewStore(repo.NewStorage(repo.NewMemory()), func() time.Time { return t0 }, nil)
	var seen cattery.State
	_, _ = st.Update(context.Background(), func(cur cattery.State, now time.Time) (cattery.State, bool, error) {
		cur.Cats = append(cur.Cats, cattery.Cat{ID: 1, Name: "A", LastFedTime: now})
		seen = cur
		return cur, true, nil
	})
	seen.Cats[0].Name = "mutated"
	if got := st.Load(context.Background()); got.State.Cats[0].Name != "A" {
		t.Fatalf("store shares memory with callers")
	}
}

func TestClockIsTruncatedToMillis(t *testing.T) {
	st := NewStore(repo.NewStorage(repo.NewMemory()), func() time.Time {
		return t0.Add(1234567 * time.Nanosecond).In(time.FixedZone("X", 3600))
	}, nil)
	at := st.Load(context.Background()).At
	if at.Location() != time.UTC || at.Nanosecond()%int(time.Millisecond) != 0 {
		t.Fatalf("clock not normalized: %v", at)
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	st := NewStore(repo.NewStorage(repo.NewMemory()), nil, nil)
	ch, cancel := st.Subscribe()
	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("channel should be closed")
	}
}

func TestNewStorePanicsOnNilStorage(t *testing.T) {
	testkit.MustPanic(t, func() { NewStore(nil, nil, nil) })
}
