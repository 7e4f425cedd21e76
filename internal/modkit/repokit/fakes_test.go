package repokit

import (
	"context"

	"cattery/internal/platform/store"
)

type call struct {
	sql  string
	args []any
}

// recQ records every Exec it sees
type recQ struct {
	name  string
	calls []call
}

func (q *recQ) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	q.calls = append(q.calls, call{sql: sql, args: args})
	return nil, nil
}

func (q *recQ) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }

func (q *recQ) QueryRow(context.Context, string, ...any) store.Row { return nil }

// recTx hands fn a separate tx scoped Queryer
type recTx struct {
	recQ
	txQ     *recQ
	txCalls int
	err     error
}

func (t *recTx) Tx(_ context.Context, fn func(q Queryer) error) error {
	t.txCalls++
	if t.err != nil {
		return t.err
	}
	return fn(t.txQ)
}

func newRecTx() *recTx {
	return &recTx{recQ: recQ{name: "pool"}, txQ: &recQ{name: "tx"}}
}
