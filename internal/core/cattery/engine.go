package cattery

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"cattery/internal/core/gacha"
)

// Rules are the tunables of an Engine
type Rules struct {
	WeeklyLimit int
}

// DefaultRules returns the stock rules
func DefaultRules() Rules { return Rules{WeeklyLimit: DefaultWeeklyLimit} }

// Engine applies transitions under a fixed set of Rules
type Engine struct {
	rules Rules
}

// NewEngine returns an Engine; a non-positive weekly limit falls back to the default
func NewEngine(r Rules) Engine {
	if r.WeeklyLimit <= 0 {
		r.WeeklyLimit = DefaultWeeklyLimit
	}
	return Engine{rules: r}
}

// Rules returns the engine's rules
func (e Engine) Rules() Rules { return e.rules }

// Adoption is what a successful Adopt produced
type Adoption struct {
	Cat    Cat
	Draw   gacha.Result
	Before gacha.Counters
}

// Adopt runs the weekly rollover, checks the cap and draws one cat.
// On ErrAdoptionLimitReached the returned State still carries the rollover
func (e Engine) Adopt(s State, now time.Time, src gacha.Source) (State, Adoption, error) {
	next := s.Clone()
	rolloverWeek(&next, now)
	if next.AdoptionsThisWeek >= e.rules.WeeklyLimit {
		return next, Adoption{}, ErrAdoptionLimitReached
	}

	before := next.Counters()
	r := gacha.Draw(src, before)
	cat := Cat{
		ID:          nextID(next.Cats, now),
		Name:        uniqueName(next, src),
		Breed:       r.Breed,
		SkinColor:   r.SkinColor,
		EyeColor:    r.EyeColor,
		LastFedTime: now,
		Brightness:  Vivid,
		Saturation:  Vivid,
	}

	after := before.Next(r.Outcome)
	next.PityCounter, next.GuaranteeCounter = after.Pity, after.Guarantee
	next.Cats = append(next.Cats, cat)
	next.AdoptionsThisWeek++
	return next, Adoption{Cat: cat, Draw: r, Before: before}, nil
}

// AdoptionsLeft is how many adoptions the week allows at now, counting a pending rollover
func (e Engine) AdoptionsLeft(s State, now time.Time) int {
	used := s.AdoptionsThisWeek
	if now.Sub(s.WeekStartTime) > Week {
		used = 0
	}
	return max(e.rules.WeeklyLimit-used, 0)
}

// BowlsFilled reports which bowls count as filled at now, counting a pending day rollover
func (e Engine) BowlsFilled(s State, now time.Time) (food, water bool) {
	if now.Sub(s.DayStartTime) > Day {
		return false, false
	}
	return s.FoodClickedToday, s.WaterClickedToday
}

// Refresh applies feeding decay and expires interactions. The bool reports whether
// anything changed. Nothing happens while the auto-feeder is on
func (e Engine) Refresh(s State, now time.Time) (State, bool) {
	if s.AutoFeederEnabled {
		return s, false
	}
	next := s.Clone()
	changed := false
	for i := range next.Cats {
		if refreshCat(&next.Cats[i], now) {
			changed = true
		}
	}
	if !changed {
		return s, false
	}
	return next, true
}

func refreshCat(c *Cat, now time.Time) bool {
	elapsed := now.Sub(c.LastFedTime)
	if elapsed < 0 {
		// clock moved backwards; heal the timestamp and leave the rest alone
		c.LastFedTime = now
		return true
	}

	changed := false
	if elapsed > FadeSaturationAfter && c.Saturation != FadedSaturation {
		c.Saturation = FadedSaturation
		changed = true
	}
	if elapsed > FadeBrightnessAfter && c.Brightness != FadedBrightness {
		c.Brightness = FadedBrightness
		changed = true
	}
	if c.InteractionResetTime != nil && !now.Before(*c.InteractionResetTime) {
		c.Interacted = false
		c.Emoji = ""
		c.InteractionResetTime = nil
		changed = true
	}
	return changed
}

// FillFood marks the food bowl and feeds everyone if water is already down
func (e Engine) FillFood(s State, now time.Time) State {
	next := s.Clone()
	rolloverDay(&next, now)
	next.FoodClickedToday = true
	if next.WaterClickedToday {
		feedAll(&next, now)
	}
	return next
}

// FillWater marks the water bowl and feeds everyone if food is already down
func (e Engine) FillWater(s State, now time.Time) State {
	next := s.Clone()
	rolloverDay(&next, now)
	next.WaterClickedToday = true
	if next.FoodClickedToday {
		feedAll(&next, now)
	}
	return next
}

// Interact pets a cat that has not been petted since its last reset.
// Unknown ids and already-interacted cats leave the state as is
func (e Engine) Interact(s State, id int64, now time.Time, src gacha.Source) (State, bool) {
	i := s.index(id)
	if i < 0 || s.Cats[i].Interacted {
		return s, false
	}
	next := s.Clone()
	c := &next.Cats[i]
	reset := now.Add(InteractionCooldown)
	c.Interacted = true
	c.Emoji = gacha.Emoji(src)
	c.InteractionResetTime = &reset
	return next, true
}

const forbiddenNameChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"

// Rename validates and applies a new name. Checks run in order: blank, forbidden
// characters, taken by another cat. An unknown id with a valid name is a no-op
func (e Engine) Rename(s State, id int64, name string) (State, error) {
	if strings.TrimFunc(name, unicode.IsSpace) == "" {
		return s, ErrNameEmpty
	}
	if strings.ContainsAny(name, forbiddenNameChars) {
		return s, ErrNameInvalid
	}
	if s.nameTaken(name, id) {
		return s, ErrNameExists
	}
	i := s.index(id)
	if i < 0 {
		return s, nil
	}
	next := s.Clone()
	next.Cats[i].Name = name
	return next, nil
}

// Gift removes the given cats. Unknown ids are ignored
func (e Engine) Gift(s State, ids []int64) (State, bool) {
	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	next := s.Clone()
	kept := next.Cats[:0]
	for _, c := range next.Cats {
		if _, ok := drop[c.ID]; !ok {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(s.Cats) {
		return s, false
	}
	next.Cats = kept
	return next, true
}

// Transfer hands the cattery over: everything resets except the language
func (e Engine) Transfer(s State, now time.Time) State {
	next := New(now)
	next.Language = s.Language
	return next
}

// ToggleAutoFeeder switches the feeder; switching it on feeds everyone at once
func (e Engine) ToggleAutoFeeder(s State, enabled bool, now time.Time) State {
	next := s.Clone()
	next.AutoFeederEnabled = enabled
	if enabled {
		feedAll(&next, now)
	}
	return next
}

// SetLanguage stores the display language code as given
func (e Engine) SetLanguage(s State, code string) State {
	next := s.Clone()
	next.Language = code
	return next
}

func rolloverWeek(s *State, now time.Time) {
	if now.Sub(s.WeekStartTime) > Week {
		s.AdoptionsThisWeek = 0
		s.WeekStartTime = now
	}
}

func rolloverDay(s *State, now time.Time) {
	if now.Sub(s.DayStartTime) > Day {
		s.DayStartTime = now
		s.FoodClickedToday = false
		s.WaterClickedToday = false
	}
}

func feedAll(s *State, now time.Time) {
	for i := range s.Cats {
		s.Cats[i].LastFedTime = now
		s.Cats[i].Brightness = Vivid
		s.Cats[i].Saturation = Vivid
	}
}

// nextID is the creation millisecond, bumped past any id already in use
func nextID(cats []Cat, now time.Time) int64 {
	id := now.UnixMilli()
	for _, c := range cats {
		if c.ID >= id {
			id = c.ID + 1
		}
	}
	return id
}

const nameAttempts = 16

func uniqueName(s State, src gacha.Source) string {
	name := gacha.Letters(src, NameLength)
	for i := 1; i < nameAttempts && s.nameTaken(name, 0); i++ {
		name = gacha.Letters(src, NameLength)
	}
	base := name
	for n := 2; s.nameTaken(name, 0); n++ {
		name = base + strconv.Itoa(n)
	}
	return name
}
