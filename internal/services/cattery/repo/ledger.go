package repo

import (
	"context"
	"sort"
	"sync"

	"cattery/internal/core/gacha"
	perr "cattery/internal/platform/errors"
	"cattery/internal/platform/store"
	"cattery/internal/services/cattery/domain"
)

// LedgerTable holds one row per adoption
const LedgerTable = "cattery_adoptions"

const ledgerSchema = `CREATE TABLE IF NOT EXISTS cattery_adoptions (
	installation_id  String,
	cat_id           Int64,
	breed            LowCardinality(String),
	outcome          LowCardinality(String),
	rare_eyes        Bool,
	guaranteed       Bool,
	chance           Float64,
	pity_before      UInt8,
	guarantee_before UInt8,
	adopted_at       DateTime64(3, 'UTC')
) ENGINE = MergeTree
ORDER BY (installation_id, adopted_at)`

// CHLedger appends adoptions to ClickHouse
type CHLedger struct {
	ch store.Clickhouse
}

// NewCHLedger returns a ledger over the clickhouse seam
func NewCHLedger(ch store.Clickhouse) *CHLedger { return &CHLedger{ch: ch} }

// Migrate implements Migrator
func (l *CHLedger) Migrate(ctx context.Context) error {
	if err := l.ch.Exec(ctx, ledgerSchema); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "create cattery_adoptions")
	}
	return nil
}

// Record implements domain.LedgerPort
func (l *CHLedger) Record(ctx context.Context, ev domain.AdoptionEvent) error {
	row := []any{
		ev.InstallationID,
		ev.CatID,
		string(ev.Breed),
		ev.Outcome.String(),
		ev.RareEyes,
		ev.Guaranteed,
		ev.Chance,
		uint8(ev.PityBefore),
		uint8(ev.GuaranteeBefore),
		ev.AdoptedAt,
	}
	if err := l.ch.Insert(ctx, LedgerTable, [][]any{row}); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "record adoption")
	}
	return nil
}

// Summary implements domain.LedgerPort
func (l *CHLedger) Summary(ctx context.Context, installationID string) ([]domain.OutcomeCount, error) {
	rs, err := l.ch.Query(ctx, `
		SELECT
			if(outcome = 'breed', breed, outcome) AS k,
			count()                               AS n,
			countIf(rare_eyes)                    AS rare
		FROM cattery_adoptions
		WHERE installation_id = ?
		GROUP BY k
		ORDER BY k ASC
	`, installationID)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "summarize adoptions")
	}
	return store.Many(rs, func(r store.Row) (domain.OutcomeCount, error) {
		var oc domain.OutcomeCount
		err := r.Scan(&oc.Outcome, &oc.Count, &oc.RareEyes)
		return oc, err
	})
}

// MemoryLedger keeps adoptions in process, used when ClickHouse is not configured
type MemoryLedger struct {
	mu     sync.Mutex
	events []domain.AdoptionEvent
}

// NewMemoryLedger returns an empty MemoryLedger
func NewMemoryLedger() *MemoryLedger { return &MemoryLedger{} }

// Record implements domain.LedgerPort
func (l *MemoryLedger) Record(_ context.Context, ev domain.AdoptionEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
	return nil
}

// Summary implements domain.LedgerPort
func (l *MemoryLedger) Summary(_ context.Context, installationID string) ([]domain.OutcomeCount, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	byKey := map[string]*domain.OutcomeCount{}
	for _, ev := range l.events {
		if ev.InstallationID != installationID {
			continue
		}
		k := ev.Outcome.String()
		if ev.Outcome == gacha.OutcomeBreed {
			k = string(ev.Breed)
		}
		oc, ok := byKey[k]
		if !ok {
			oc = &domain.OutcomeCount{Outcome: k}
			byKey[k] = oc
		}
		oc.Count++
		if ev.RareEyes {
			oc.RareEyes++
		}
	}
	out := make([]domain.OutcomeCount, 0, len(byKey))
	for _, oc := range byKey {
		out = append(out, *oc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Outcome < out[j].Outcome })
	return out, nil
}
