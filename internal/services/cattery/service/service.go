// Package service runs cattery transitions against the persisted aggregate
package service

import (
	"context"
	"time"

	"cattery/internal/core/cattery"
	"cattery/internal/core/gacha"
	"cattery/internal/platform/logger"
	dom "cattery/internal/services/cattery/domain"
	"cattery/internal/services/cattery/repo"
)

// Config for the cattery service
type Config struct {
	InstallationID string
	Rules          cattery.Rules
}

// Deps are the collaborators the service is built from
type Deps struct {
	Storage repo.Storage // required
	Source  gacha.Source // nil means entropy seeded
	Ledger  dom.LedgerPort
	Metrics *Metrics
	Clock   func() time.Time
	Log     *logger.Logger
}

// Svc implements domain.ServicePort
type Svc struct {
	store   *Store
	engine  cattery.Engine
	src     gacha.Source // only touched inside store updates
	ledger  dom.LedgerPort
	metrics *Metrics
	log     *logger.Logger
	cfg     Config
}

var _ dom.ServicePort = (*Svc)(nil)

// New constructs the service
func New(d Deps, cfg Config) *Svc {
	if d.Log == nil {
		d.Log = logger.Named("cattery")
	}
	if d.Source == nil {
		d.Source = gacha.NewSource(0)
	}
	if d.Ledger == nil {
		d.Ledger = repo.NewMemoryLedger()
	}
	if d.Metrics == nil {
		d.Metrics = NewMetrics(nil)
	}
	if cfg.Rules.WeeklyLimit <= 0 {
		cfg.Rules = cattery.DefaultRules()
	}
	return &Svc{
		store:   NewStore(d.Storage, d.Clock, d.Log),
		engine:  cattery.NewEngine(cfg.Rules),
		src:     d.Source,
		ledger:  d.Ledger,
		metrics: d.Metrics,
		log:     d.Log,
		cfg:     cfg,
	}
}

func (s *Svc) view(snap Snapshot) dom.View {
	food, water := s.engine.BowlsFilled(snap.State, snap.At)
	return dom.View{
		State:         snap.State,
		AdoptionsLeft: s.engine.AdoptionsLeft(snap.State, snap.At),
		FoodFilled:    food,
		WaterFilled:   water,
		WeeklyLimit:   s.engine.Rules().WeeklyLimit,
		At:            snap.At,
	}
}

// apply runs one transition through the store and accounts for it
func (s *Svc) apply(ctx context.Context, op string, fn Mutation) (Snapshot, bool, error) {
	var changed bool
	snap, err := s.store.Update(ctx, func(cur cattery.State, now time.Time) (cattery.State, bool, error) {
		next, ch, err := fn(cur, now)
		changed = ch
		return next, ch, err
	})
	s.metrics.transition(op, changed, err)
	logger.C(ctx).Debug().
		Str("op", op).
		Bool("changed", changed).
		Err(err).
		Msg("cattery transition")
	return snap, changed, err
}

// Rules returns the transition rules in effect
func (s *Svc) Rules() cattery.Rules { return s.engine.Rules() }

// State implements domain.ServicePort
func (s *Svc) State(ctx context.Context) (dom.View, error) {
	return s.view(s.store.Load(ctx)), nil
}

// Refresh implements domain.ServicePort
func (s *Svc) Refresh(ctx context.Context) (dom.View, bool, error) {
	snap, changed, err := s.apply(ctx, "refresh", func(cur cattery.State, now time.Time) (cattery.State, bool, error) {
		next, ch := s.engine.Refresh(cur, now)
		return next, ch, nil
	})
	return s.view(snap), changed, err
}

// Adopt implements domain.ServicePort
func (s *Svc) Adopt(ctx context.Context) (dom.Adopted, error) {
	var ad cattery.Adoption
	snap, _, err := s.apply(ctx, "adopt", func(cur cattery.State, now time.Time) (cattery.State, bool, error) {
		next, a, err := s.engine.Adopt(cur, now, s.src)
		if err != nil {
			// the weekly rollover still sticks
			rolled := !next.WeekStartTime.Equal(cur.WeekStartTime) || next.AdoptionsThisWeek != cur.AdoptionsThisWeek
			return next, rolled, err
		}
		ad = a
		return next, true, nil
	})
	if err != nil {
		return dom.Adopted{}, err
	}

	s.metrics.adopted(ad.Draw)
	s.record(ctx, ad, snap.At)
	return dom.Adopted{Cat: ad.Cat, Draw: ad.Draw, View: s.view(snap)}, nil
}

// record appends to the ledger; failures never undo an adoption
func (s *Svc) record(ctx context.Context, ad cattery.Adoption, at time.Time) {
	ev := dom.AdoptionEvent{
		InstallationID:  s.cfg.InstallationID,
		CatID:           ad.Cat.ID,
		Breed:           ad.Cat.Breed,
		Outcome:         ad.Draw.Outcome,
		RareEyes:        ad.Draw.RareEyes,
		Guaranteed:      ad.Draw.Guaranteed,
		Chance:          ad.Draw.Chance,
		PityBefore:      ad.Before.Pity,
		GuaranteeBefore: ad.Before.Guarantee,
		AdoptedAt:       at,
	}
	if err := s.ledger.Record(ctx, ev); err != nil {
		s.log.Warn().Err(err).Int64("cat_id", ad.Cat.ID).Msg("adoption ledger write failed")
	}
}

// Interact implements domain.ServicePort
func (s *Svc) Interact(ctx context.Context, catID int64) (dom.View, error) {
	snap, _, err := s.apply(ctx, "interact", func(cur cattery.State, now time.Time) (cattery.State, bool, error) {
		next, ch := s.engine.Interact(cur, catID, now, s.src)
		return next, ch, nil
	})
	return s.view(snap), err
}

// Rename implements domain.ServicePort
func (s *Svc) Rename(ctx context.Context, catID int64, name string) (dom.View, error) {
	snap, _, err := s.apply(ctx, "rename", func(cur cattery.State, _ time.Time) (cattery.State, bool, error) {
		next, err := s.engine.Rename(cur, catID, name)
		if err != nil {
			return cur, false, err
		}
		_, known := cur.Cat(catID)
		return next, known, nil
	})
	return s.view(snap), err
}

// Gift implements domain.ServicePort
func (s *Svc) Gift(ctx context.Context, catIDs []int64) (dom.View, error) {
	snap, _, err := s.apply(ctx, "gift", func(cur cattery.State, _ time.Time) (cattery.State, bool, error) {
		next, ch := s.engine.Gift(cur, catIDs)
		return next, ch, nil
	})
	return s.view(snap), err
}

// Transfer implements domain.ServicePort
func (s *Svc) Transfer(ctx context.Context) (dom.View, error) {
	snap, _, err := s.apply(ctx, "transfer", func(cur cattery.State, now time.Time) (cattery.State, bool, error) {
		return s.engine.Transfer(cur, now), true, nil
	})
	return s.view(snap), err
}

// FillFood implements domain.ServicePort
func (s *Svc) FillFood(ctx context.Context) (dom.View, error) {
	snap, _, err := s.apply(ctx, "fill_food", func(cur cattery.State, now time.Time) (cattery.State, bool, error) {
		return s.engine.FillFood(cur, now), true, nil
	})
	return s.view(snap), err
}

// FillWater implements domain.ServicePort
func (s *Svc) FillWater(ctx context.Context) (dom.View, error) {
	snap, _, err := s.apply(ctx, "fill_water", func(cur cattery.State, now time.Time) (cattery.State, bool, error) {
		return s.engine.FillWater(cur, now), true, nil
	})
	return s.view(snap), err
}

// ToggleAutoFeeder implements domain.ServicePort
func (s *Svc) ToggleAutoFeeder(ctx context.Context, enabled bool) (dom.View, error) {
	snap, _, err := s.apply(ctx, "auto_feeder", func(cur cattery.State, now time.Time) (cattery.State, bool, error) {
		return s.engine.ToggleAutoFeeder(cur, enabled, now), true, nil
	})
	return s.view(snap), err
}

// SetLanguage implements domain.ServicePort
func (s *Svc) SetLanguage(ctx context.Context, code string) (dom.View, error) {
	snap, _, err := s.apply(ctx, "language", func(cur cattery.State, _ time.Time) (cattery.State, bool, error) {
		return s.engine.SetLanguage(cur, code), cur.Language != code, nil
	})
	return s.view(snap), err
}

// Odds implements domain.ServicePort
func (s *Svc) Odds() []gacha.OddsRow { return gacha.OddsTable() }

// ObservedOdds implements domain.ServicePort
func (s *Svc) ObservedOdds(ctx context.Context) (dom.ObservedOdds, error) {
	rows, err := s.ledger.Summary(ctx, s.cfg.InstallationID)
	if err != nil {
		return dom.ObservedOdds{}, err
	}
	out := dom.ObservedOdds{Outcomes: rows, BaseRate: gacha.BaseBreedChance}
	if out.Outcomes == nil {
		out.Outcomes = []dom.OutcomeCount{}
	}
	var breeds uint64
	for _, r := range rows {
		out.Total += r.Count
		if r.Outcome != string(gacha.Ordinary) {
			breeds += r.Count
		}
	}
	if out.Total > 0 {
		out.BreedRate = float64(breeds) / float64(out.Total)
	}
	return out, nil
}

// Subscribe implements domain.ServicePort
func (s *Svc) Subscribe() (<-chan dom.View, func()) {
	in, cancel := s.store.Subscribe()
	out := make(chan dom.View, 1)
	go func() {
		defer close(out)
		for snap := range in {
			offer(out, s.view(snap))
		}
	}()
	return out, cancel
}
