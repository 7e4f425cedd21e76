package gacha

// Base probabilities, no pity applied

// BreedProbability is the chance a single unpitied draw yields b.
// Unknown breeds have zero probability
func BreedProbability(b Breed) float64 {
	if b.IsOrdinary() {
		return 1 - BaseBreedChance
	}
	if _, ok := Lookup(b); !ok {
		return 0
	}
	return BaseBreedChance / float64(len(catalog))
}

// RareEyeChance is the conditional rare-eye chance given the breed
func RareEyeChance(b Breed) float64 {
	if b.IsOrdinary() {
		return RareEyeOrdinary
	}
	return RareEyeBreed
}

// RareEyeProbability is the chance a single unpitied draw yields b with rare eyes
func RareEyeProbability(b Breed) float64 {
	return BreedProbability(b) * RareEyeChance(b)
}

// IsRareEye reports whether eye is a rare eye color for b
func IsRareEye(b Breed, eye string) bool {
	if b.IsOrdinary() {
		return inPalette(rarePalette, eye)
	}
	spec, ok := Lookup(b)
	return ok && spec.RareEye == eye
}

// CatProbability is the base probability of drawing a cat of breed b with this eye kind
func CatProbability(b Breed, eye string) float64 {
	p := RareEyeChance(b)
	if !IsRareEye(b, eye) {
		p = 1 - p
	}
	return BreedProbability(b) * p
}

// OddsRow is one line of the odds table
type OddsRow struct {
	Breed    Breed   `json:"breed"`
	Any      float64 `json:"any"`
	RareEyes float64 `json:"rare_eyes"`
}

// OddsTable lists base odds for the sentinel followed by every catalog breed
func OddsTable() []OddsRow {
	rows := make([]OddsRow, 0, len(catalog)+1)
	rows = append(rows, OddsRow{Breed: Ordinary, Any: BreedProbability(Ordinary), RareEyes: RareEyeProbability(Ordinary)})
	for _, s := range catalog {
		rows = append(rows, OddsRow{Breed: s.ID, Any: BreedProbability(s.ID), RareEyes: RareEyeProbability(s.ID)})
	}
	return rows
}
