package gacha

// Scripted replays fixed values for deterministic draws.
// Ints are reduced modulo n; an exhausted queue yields 0
type Scripted struct {
	Floats []float64
	Ints   []int

	fi, ii int
}

func (s *Scripted) Float64() float64 {
	if s.fi >= len(s.Floats) {
		return 0
	}
	f := s.Floats[s.fi]
	s.fi++
	return f
}

func (s *Scripted) IntN(n int) int {
	if n <= 0 {
		panic("gacha: IntN with n <= 0")
	}
	if s.ii >= len(s.Ints) {
		return 0
	}
	v := s.Ints[s.ii] % n
	s.ii++
	if v < 0 {
		v += n
	}
	return v
}

// Consumed reports how many floats and ints have been read
func (s *Scripted) Consumed() (floats, ints int) { return s.fi, s.ii }
