package domain

import (
	"context"

	"cattery/internal/core/cattery"
	"cattery/internal/core/gacha"
)

// ServicePort is everything a client can do to a cattery
type ServicePort interface {
	State(ctx context.Context) (View, error)
	Refresh(ctx context.Context) (View, bool, error)

	Adopt(ctx context.Context) (Adopted, error)
	Interact(ctx context.Context, catID int64) (View, error)
	Rename(ctx context.Context, catID int64, name string) (View, error)
	Gift(ctx context.Context, catIDs []int64) (View, error)
	Transfer(ctx context.Context) (View, error)

	FillFood(ctx context.Context) (View, error)
	FillWater(ctx context.Context) (View, error)
	ToggleAutoFeeder(ctx context.Context, enabled bool) (View, error)
	SetLanguage(ctx context.Context, code string) (View, error)

	Rules() cattery.Rules
	Odds() []gacha.OddsRow
	ObservedOdds(ctx context.Context) (ObservedOdds, error)

	Subscribe() (<-chan View, func())
}

// LedgerPort records adoptions for analytics
type LedgerPort interface {
	Record(ctx context.Context, ev AdoptionEvent) error
	Summary(ctx context.Context, installationID string) ([]OutcomeCount, error)
}
