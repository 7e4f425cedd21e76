package gacha

// Draw odds and pity thresholds
const (
	BaseBreedChance = 0.15 // breed hit without pity
	SoftPityChance  = 0.30 // breed hit once soft pity is reached
	SoftPityAt      = 5    // misses before the soft-pity chance applies
	GuaranteeAt     = 9    // misses before a hit is forced
	RareEyeBreed    = 0.20 // rare-eye chance on a breed hit
	RareEyeOrdinary = 0.10 // rare-eye chance on a miss
)

// Outcome tags what a draw produced
type Outcome uint8

const (
	OutcomeOrdinary Outcome = iota
	OutcomeBreed
)

func (o Outcome) String() string {
	if o == OutcomeBreed {
		return "breed"
	}
	return "ordinary"
}

// Counters is the pity state carried between draws
type Counters struct {
	Pity      int // consecutive misses, read for soft pity
	Guarantee int // consecutive misses, read for the forced hit
}

// Next returns the counters after a draw with outcome o
func (c Counters) Next(o Outcome) Counters {
	if o == OutcomeBreed {
		return Counters{}
	}
	return Counters{Pity: c.Pity + 1, Guarantee: c.Guarantee + 1}
}

// Chance is the breed-hit probability for the given counters, ignoring the guarantee
func (c Counters) Chance() float64 {
	if c.Pity >= SoftPityAt {
		return SoftPityChance
	}
	return BaseBreedChance
}

// Guaranteed reports whether the next draw is a forced hit
func (c Counters) Guaranteed() bool { return c.Guarantee >= GuaranteeAt }

// Result is one draw's appearance and tags
type Result struct {
	Outcome    Outcome
	Breed      Breed
	SkinColor  string
	EyeColor   string
	RareEyes   bool
	Guaranteed bool
	Chance     float64 // breed-hit probability used; 1 when guaranteed
}

// Draw rolls one cat. Source consumption order is fixed:
// hit roll (skipped when guaranteed), rare-eye roll, breed index on a hit,
// skin index, then the eye index when the eye is not fixed by the breed
func Draw(src Source, c Counters) Result {
	r := Result{Chance: c.Chance()}
	hit := c.Guaranteed()
	if hit {
		r.Guaranteed = true
		r.Chance = 1
	} else {
		hit = src.Float64() < r.Chance
	}

	rareChance := RareEyeOrdinary
	if hit {
		rareChance = RareEyeBreed
	}
	r.RareEyes = src.Float64() < rareChance

	if hit {
		spec := Pick(src, catalog)
		r.Outcome = OutcomeBreed
		r.Breed = spec.ID
		r.SkinColor = Pick(src, spec.Palette)
		if r.RareEyes {
			r.EyeColor = spec.RareEye
		} else {
			r.EyeColor = spec.CommonEye()
		}
		return r
	}

	r.Outcome = OutcomeOrdinary
	r.Breed = Ordinary
	r.SkinColor = Pick(src, defaultPalette)
	if r.RareEyes {
		r.EyeColor = Pick(src, rarePalette)
	} else {
		r.EyeColor = Pick(src, defaultPalette)
	}
	return r
}
