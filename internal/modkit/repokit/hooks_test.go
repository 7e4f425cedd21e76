package repokit

import (
	"context"
	"errors"
	"testing"

	kit "cattery/internal/platform/testkit"
)

func TestWithBeginHooks_RunInOrderBeforeFn(t *testing.T) {
	tx := newRecTx()
	var order []string
	hook := func(name string) BeginHook {
		return func(_ context.Context, q Queryer) error {
			if q.(*recQ).name != "tx" {
				t.Fatalf("hook %s ran outside the tx", name)
			}
			order = append(order, name)
			return nil
		}
	}

	wrapped := WithBeginHooks(tx, hook("a"), hook("b"))
	err := wrapped.Tx(context.Background(), func(Queryer) error {
		order = append(order, "fn")
		return nil
	})
	if err != nil {
		t.Fatalf("Tx: %v", err)
	}
	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "fn" {
		t.Fatalf("order = %v", order)
	}
}

func TestWithBeginHooks_HookErrorSkipsFn(t *testing.T) {
	tx := newRecTx()
	boom := errors.New("lock timeout")
	wrapped := WithBeginHooks(tx, func(context.Context, Queryer) error { return boom })

	ran := false
	err := wrapped.Tx(context.Background(), func(Queryer) error { ran = true; return nil })
	if !errors.Is(err, boom) || ran {
		t.Fatalf("err=%v ran=%v", err, ran)
	}
}

func TestWithBeginHooks_DelegatesPlainCalls(t *testing.T) {
	tx := newRecTx()
	wrapped := WithBeginHooks(tx)
	if _, err := wrapped.Exec(context.Background(), "SELECT 1"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if len(tx.calls) != 1 || tx.txCalls != 0 {
		t.Fatalf("Exec should go straight to the pool, calls=%d tx=%d", len(tx.calls), tx.txCalls)
	}
}

func TestAdvisoryXactLock_LocksOnKey(t *testing.T) {
	q := &recQ{}
	if err := AdvisoryXactLock("cattery:abc")(context.Background(), q); err != nil {
		t.Fatalf("hook: %v", err)
	}
	if len(q.calls) != 1 {
		t.Fatalf("calls = %d", len(q.calls))
	}
	kit.MustContain(t, q.calls[0].sql, "pg_advisory_xact_lock")
	if q.calls[0].args[0] != "cattery:abc" {
		t.Fatalf("args = %v", q.calls[0].args)
	}
}
