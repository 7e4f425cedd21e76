// Package gacha holds the adoption draw: the breed catalog, the palettes cats are
// colored from, and the weighted draw with soft and hard pity.
// Everything here is pure; randomness comes in through a Source
package gacha

// Breed identifies a catalog breed or the Ordinary sentinel
type Breed string

// Ordinary is the sentinel breed for cats drawn outside the catalog
const Ordinary Breed = "ordinary"

// Catalog breed ids
const (
	Orange    Breed = "orange"
	Ragdoll   Breed = "ragdoll"
	Siamese   Breed = "siamese"
	Blue      Breed = "blue"
	Calico    Breed = "calico"
	Sphynx    Breed = "sphynx"
	Tuxedo    Breed = "tuxedo"
	DragonLi  Breed = "dragon_li"
	MaineCoon Breed = "maine_coon"
)

// IsOrdinary reports whether b is the sentinel breed
func (b Breed) IsOrdinary() bool { return b == Ordinary }

// BreedSpec describes one catalog breed.
// Palette[0] doubles as the breed's common eye color
type BreedSpec struct {
	ID      Breed    `json:"id"`
	Palette []string `json:"palette"`
	RareEye string   `json:"rare_eye"`
}

// CommonEye is the eye color a breed cat gets without the rare-eye roll
func (s BreedSpec) CommonEye() string { return s.Palette[0] }

var catalog = []BreedSpec{
	{ID: Orange, Palette: []string{"#FFA500", "#FF8C00", "#CD5700"}, RareEye: "#8B4513"},
	{ID: Ragdoll, Palette: []string{"#87CEEB", "#59B093"}, RareEye: "#B0C4DE"},
	{ID: Siamese, Palette: []string{"#4169E1", "#2C2CDB"}, RareEye: "#9370DB"},
	{ID: Blue, Palette: []string{"#CD7F32", "#01B55B"}, RareEye: "#FFA500"},
	{ID: Calico, Palette: []string{"#B6B675", "#32CD32"}, RareEye: "#00CED1"},
	{ID: Sphynx, Palette: []string{"#2E8B57", "#6495ED"}, RareEye: "#FFC107"},
	{ID: Tuxedo, Palette: []string{"#FFFACD", "#E6C200"}, RareEye: "#87CEEB"},
	{ID: DragonLi, Palette: []string{"#4F9D53"}, RareEye: "#DAA520"},
	{ID: MaineCoon, Palette: []string{"#F2FF00", "#00FA9A"}, RareEye: "#20C0FF"},
}

var defaultPalette = []string{
	"#F8F8FF", "#FFFFF0", "#F5F5F5", // whites
	"#0A0A0A", "#1A1A1A", "#2D2D2D", // blacks
	"#808080", "#A9A9A9", "#4A4A4A", "#C0C0C0", "#E0E0E0", // greys
	"#FFA500", "#FF8C00", "#FFB347", "#E67E22", // oranges
	"#8B4513", "#A0522D", "#CD853F", // browns
}

var rarePalette = []string{"#4977FF", "#FF65FF", "#FF3A57"}

var emojis = []string{"😊", "😺", "😸", "😻", "🥰", "😽", "🤗", "💖", "✨", "🌟"}

// Breeds returns a copy of the catalog in display order
func Breeds() []BreedSpec {
	out := make([]BreedSpec, len(catalog))
	for i, s := range catalog {
		s.Palette = append([]string(nil), s.Palette...)
		out[i] = s
	}
	return out
}

// Lookup finds a catalog breed; the sentinel is not in the catalog
func Lookup(b Breed) (BreedSpec, bool) {
	for _, s := range catalog {
		if s.ID == b {
			return s, true
		}
	}
	return BreedSpec{}, false
}

// DefaultPalette is the skin and common eye palette for ordinary cats
func DefaultPalette() []string { return append([]string(nil), defaultPalette...) }

// RarePalette is the eye palette for ordinary cats that win the rare-eye roll
func RarePalette() []string { return append([]string(nil), rarePalette...) }

// Emojis is the set a cat shows after an interaction
func Emojis() []string { return append([]string(nil), emojis...) }

func inPalette(p []string, c string) bool {
	for _, x := range p {
		if x == c {
			return true
		}
	}
	return false
}
