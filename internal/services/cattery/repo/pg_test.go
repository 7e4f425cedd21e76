package repo

import (
	"context"
	"strings"
	"testing"

	perr "cattery/internal/platform/errors"
	"cattery/internal/platform/store"

	"github.com/jackc/pgx/v5/pgconn"
)

type oneRow struct{}

func (oneRow) String() string      { return "INSERT 0 1" }
func (oneRow) RowsAffected() int64 { return 1 }

// flakyTx fails the upsert with a SQLSTATE until fails runs out
type flakyTx struct {
	state string
	fails int
	txs   int
	sqls  []string
}

func (f *flakyTx) Exec(_ context.Context, sql string, _ ...any) (store.CommandTag, error) {
	f.sqls = append(f.sqls, sql)
	if strings.Contains(sql, "INSERT INTO cattery_snapshots") && f.fails > 0 {
		f.fails--
		return nil, &pgconn.PgError{Code: f.state}
	}
	return oneRow{}, nil
}

func (f *flakyTx) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (f *flakyTx) QueryRow(context.Context, string, ...any) store.Row        { return nil }

func (f *flakyTx) Tx(ctx context.Context, fn func(q store.RowQuerier) error) error {
	f.txs++
	return fn(f)
}

func TestPGWrite_RetriesSerializationFailures(t *testing.T) {
	q := &flakyTx{state: "40001", fails: 2}
	if err := NewPG("inst").Bind(q).Write(context.Background(), []byte(`{}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if q.txs != 3 {
		t.Fatalf("txs = %d, want 3", q.txs)
	}
	if !strings.Contains(q.sqls[0], "pg_advisory_xact_lock") {
		t.Fatalf("first statement should take the lock: %q", q.sqls[0])
	}
}

func TestPGWrite_GivesUpAfterAttempts(t *testing.T) {
	q := &flakyTx{state: "40P01", fails: 10}
	err := NewPG("inst").Bind(q).Write(context.Background(), []byte(`{}`))
	if !perr.IsCode(err, perr.ErrorCodeDB) || q.txs != pgWriteAttempts {
		t.Fatalf("err=%v txs=%d", err, q.txs)
	}
}

func TestPGWrite_DoesNotRetryConstraintErrors(t *testing.T) {
	q := &flakyTx{state: "23502", fails: 1}
	err := NewPG("inst").Bind(q).Write(context.Background(), []byte(`{}`))
	if !perr.IsCode(err, perr.ErrorCodeValidation) || q.txs != 1 {
		t.Fatalf("err=%v txs=%d", err, q.txs)
	}
}
