package gacha

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-12 }

func TestBreedProbability(t *testing.T) {
	if got := BreedProbability(Ordinary); !near(got, 0.85) {
		t.Fatalf("ordinary = %v", got)
	}
	if got := BreedProbability(Tuxedo); !near(got, 0.15/9) {
		t.Fatalf("tuxedo = %v", got)
	}
	if got := BreedProbability("lion"); got != 0 {
		t.Fatalf("unknown breed = %v, want 0", got)
	}
}

func TestRareEyeProbability(t *testing.T) {
	if got := RareEyeProbability(Ordinary); !near(got, 0.085) {
		t.Fatalf("ordinary rare = %v", got)
	}
	if got := RareEyeProbability(Calico); !near(got, 0.15/9*0.2) {
		t.Fatalf("calico rare = %v", got)
	}
}

func TestCatProbability(t *testing.T) {
	cases := []struct {
		breed Breed
		eye   string
		want  float64
	}{
		{Ordinary, "#4977FF", 0.85 * 0.10},
		{Ordinary, "#808080", 0.85 * 0.90},
		{DragonLi, "#DAA520", 0.15 / 9 * 0.20},
		{DragonLi, "#4F9D53", 0.15 / 9 * 0.80},
	}
	for _, tc := range cases {
		if got := CatProbability(tc.breed, tc.eye); !near(got, tc.want) {
			t.Fatalf("CatProbability(%s,%s) = %v, want %v", tc.breed, tc.eye, got, tc.want)
		}
	}
}

func TestOddsTableSumsToOne(t *testing.T) {
	rows := OddsTable()
	if len(rows) != len(catalog)+1 || rows[0].Breed != Ordinary {
		t.Fatalf("unexpected table shape: %+v", rows)
	}
	sum := 0.0
	for _, r := range rows {
		sum += r.Any
	}
	if !near(sum, 1) {
		t.Fatalf("odds sum = %v", sum)
	}
}

func TestBreedsReturnsCopy(t *testing.T) {
	b := Breeds()
	b[0].Palette[0] = "#000000"
	if spec, _ := Lookup(Orange); spec.CommonEye() != "#FFA500" {
		t.Fatalf("catalog mutated through Breeds()")
	}
}
