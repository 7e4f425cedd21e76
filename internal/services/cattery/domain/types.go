// Package domain holds the cattery service's ports and transport types
package domain

import (
	"time"

	"cattery/internal/core/cattery"
	"cattery/internal/core/gacha"
)

// View is a state plus the values derived from it at a given instant
type View struct {
	State         cattery.State
	AdoptionsLeft int
	FoodFilled    bool
	WaterFilled   bool
	WeeklyLimit   int
	At            time.Time
}

// Adopted is the result of a successful adoption
type Adopted struct {
	Cat  cattery.Cat
	Draw gacha.Result
	View View
}

// AdoptionEvent is one row of the adoption ledger
type AdoptionEvent struct {
	InstallationID  string
	CatID           int64
	Breed           gacha.Breed
	Outcome         gacha.Outcome
	RareEyes        bool
	Guaranteed      bool
	Chance          float64
	PityBefore      int
	GuaranteeBefore int
	AdoptedAt       time.Time
}

// OutcomeCount is how often an outcome has been drawn
type OutcomeCount struct {
	Outcome  string `json:"outcome"`
	Count    uint64 `json:"count"`
	RareEyes uint64 `json:"rare_eyes"`
}

// ObservedOdds summarizes the ledger against base odds
type ObservedOdds struct {
	Total     uint64         `json:"total"`
	Outcomes  []OutcomeCount `json:"outcomes"`
	BreedRate float64        `json:"breed_rate"`
	BaseRate  float64        `json:"base_rate"`
}
