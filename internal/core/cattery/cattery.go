// Package cattery is the adoption and lifecycle engine. Every transition is a pure
// function of the current State, the instant it runs at, and (where it rolls dice)
// a gacha.Source. Transitions never mutate their input; they return a new State
package cattery

import (
	"slices"
	"time"

	"cattery/internal/core/gacha"
)

// Windows and decay levels
const (
	Day  = 24 * time.Hour
	Week = 7 * Day

	FadeSaturationAfter = Week     // elapsed since feeding before saturation fades
	FadeBrightnessAfter = 2 * Week // elapsed since feeding before brightness fades
	FadedSaturation     = 0.5
	FadedBrightness     = 0.7
	Vivid               = 1.0

	InteractionCooldown = Day
	NameLength          = 6

	DefaultLanguage    = "zh"
	DefaultWeeklyLimit = 3
)

// Cat is one adopted cat. Appearance fields never change after adoption
type Cat struct {
	ID        int64
	Name      string
	Breed     gacha.Breed
	SkinColor string
	EyeColor  string

	Interacted           bool
	Emoji                string     // empty when not interacted
	InteractionResetTime *time.Time // nil when not interacted

	LastFedTime time.Time
	Brightness  float64
	Saturation  float64
}

// RareEyes reports whether the cat's eye color is a rare one for its breed
func (c Cat) RareEyes() bool { return gacha.IsRareEye(c.Breed, c.EyeColor) }

// Probability is the base chance of drawing a cat like this one
func (c Cat) Probability() float64 { return gacha.CatProbability(c.Breed, c.EyeColor) }

// State is the whole persisted cattery aggregate
type State struct {
	Cats []Cat

	AdoptionsThisWeek int
	WeekStartTime     time.Time
	DayStartTime      time.Time

	FoodClickedToday  bool
	WaterClickedToday bool
	AutoFeederEnabled bool
	Language          string

	PityCounter      int
	GuaranteeCounter int
}

// New returns the state of a cattery that has never been touched
func New(now time.Time) State {
	return State{
		Cats:          []Cat{},
		WeekStartTime: now,
		DayStartTime:  now,
		Language:      DefaultLanguage,
	}
}

// Clone deep-copies s so callers can hand it out without sharing cats
func (s State) Clone() State {
	out := s
	out.Cats = make([]Cat, len(s.Cats))
	for i, c := range s.Cats {
		if c.InteractionResetTime != nil {
			t := *c.InteractionResetTime
			c.InteractionResetTime = &t
		}
		out.Cats[i] = c
	}
	return out
}

// Counters is the pity state as the draw sees it
func (s State) Counters() gacha.Counters {
	return gacha.Counters{Pity: s.PityCounter, Guarantee: s.GuaranteeCounter}
}

// Cat finds a cat by id
func (s State) Cat(id int64) (Cat, bool) {
	i := s.index(id)
	if i < 0 {
		return Cat{}, false
	}
	return s.Cats[i], true
}

func (s State) index(id int64) int {
	return slices.IndexFunc(s.Cats, func(c Cat) bool { return c.ID == id })
}

func (s State) nameTaken(name string, except int64) bool {
	return slices.ContainsFunc(s.Cats, func(c Cat) bool { return c.ID != except && c.Name == name })
}
