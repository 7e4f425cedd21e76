package gacha

import (
	"math/rand/v2"
)

// Source is the randomness a draw consumes.
// Float64 is uniform in [0,1); IntN is uniform in [0,n) and panics when n <= 0
type Source interface {
	Float64() float64
	IntN(n int) int
}

// NewSource returns a PCG-backed Source. A zero seed draws one from the runtime.
// The returned source is not safe for concurrent use
func NewSource(seed uint64) Source {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Pick returns a uniformly chosen element of xs
func Pick[T any](src Source, xs []T) T {
	return xs[src.IntN(len(xs))]
}

// Letters returns n letters drawn uniformly from A-Z and a-z
func Letters(src Source, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[src.IntN(len(letters))]
	}
	return string(b)
}

// Emoji picks an interaction emoji
func Emoji(src Source) string { return Pick(src, emojis) }
