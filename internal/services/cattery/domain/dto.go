package domain

import (
	"time"

	"cattery/internal/core/cattery"
	"cattery/internal/core/gacha"
	pstrings "cattery/internal/platform/strings"
)

// Bowl states shown next to each bowl
const (
	BowlAuto    = "auto"    // auto-feeder is on
	BowlAlready = "already" // filled today
	BowlTap     = "tap"     // waiting to be filled
)

// CatDTO is a cat on the wire
type CatDTO struct {
	ID                   int64      `json:"id"`
	Name                 string     `json:"name"`
	Breed                string     `json:"breed"`
	SkinColor            string     `json:"skin_color"`
	EyeColor             string     `json:"eye_color"`
	RareEyes             bool       `json:"rare_eyes"`
	Probability          float64    `json:"probability"`
	Interacted           bool       `json:"interacted"`
	Emoji                *string    `json:"emoji"`
	InteractionResetTime *time.Time `json:"interaction_reset_time"`
	LastFedTime          time.Time  `json:"last_fed_time"`
	Brightness           float64    `json:"brightness"`
	Saturation           float64    `json:"saturation"`
}

// StateDTO is the cattery on the wire
type StateDTO struct {
	Cats              []CatDTO  `json:"cats"`
	AdoptionsThisWeek int       `json:"adoptions_this_week"`
	AdoptionsLeft     int       `json:"adoptions_left"`
	WeeklyLimit       int       `json:"weekly_limit"`
	WeekStartTime     time.Time `json:"week_start_time"`
	DayStartTime      time.Time `json:"day_start_time"`
	FoodClickedToday  bool      `json:"food_clicked_today"`
	WaterClickedToday bool      `json:"water_clicked_today"`
	FoodBowl          string    `json:"food_bowl"`
	WaterBowl         string    `json:"water_bowl"`
	AutoFeederEnabled bool      `json:"auto_feeder_enabled"`
	Language          string    `json:"language"`
	PityCounter       int       `json:"pity_counter"`
	GuaranteeCounter  int       `json:"guarantee_counter"`
}

// AdoptedDTO answers POST /adoptions
type AdoptedDTO struct {
	Cat        CatDTO   `json:"cat"`
	Outcome    string   `json:"outcome"`
	Guaranteed bool     `json:"guaranteed"`
	State      StateDTO `json:"state"`
}

// OddsDTO is one row of the base odds table
type OddsDTO = gacha.OddsRow

// RenameInput is the body of PUT /cats/{id}/name
type RenameInput struct {
	Name string `json:"name"`
}

// GiftInput is the body of POST /gifts
type GiftInput struct {
	IDs []int64 `json:"ids" validate:"required,min=1,dive,gt=0"`
}

// AutoFeederInput is the body of PUT /auto-feeder
type AutoFeederInput struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// LanguageInput is the body of PUT /language
type LanguageInput struct {
	Language string `json:"language" validate:"required,lang_code"`
}

// NewCatDTO maps a cat for the wire
func NewCatDTO(c cattery.Cat) CatDTO {
	out := CatDTO{
		ID:                   c.ID,
		Name:                 c.Name,
		Breed:                string(c.Breed),
		SkinColor:            c.SkinColor,
		EyeColor:             c.EyeColor,
		RareEyes:             c.RareEyes(),
		Probability:          c.Probability(),
		Interacted:           c.Interacted,
		Emoji:                pstrings.Ptr(c.Emoji),
		InteractionResetTime: c.InteractionResetTime,
		LastFedTime:          c.LastFedTime,
		Brightness:           c.Brightness,
		Saturation:           c.Saturation,
	}
	return out
}

// NewStateDTO maps a view for the wire
func NewStateDTO(v View) StateDTO {
	s := v.State
	cats := make([]CatDTO, len(s.Cats))
	for i, c := range s.Cats {
		cats[i] = NewCatDTO(c)
	}
	return StateDTO{
		Cats:              cats,
		AdoptionsThisWeek: s.AdoptionsThisWeek,
		AdoptionsLeft:     v.AdoptionsLeft,
		WeeklyLimit:       v.WeeklyLimit,
		WeekStartTime:     s.WeekStartTime,
		DayStartTime:      s.DayStartTime,
		FoodClickedToday:  v.FoodFilled,
		WaterClickedToday: v.WaterFilled,
		FoodBowl:          bowl(s.AutoFeederEnabled, v.FoodFilled),
		WaterBowl:         bowl(s.AutoFeederEnabled, v.WaterFilled),
		AutoFeederEnabled: s.AutoFeederEnabled,
		Language:          s.Language,
		PityCounter:       s.PityCounter,
		GuaranteeCounter:  s.GuaranteeCounter,
	}
}

// NewAdoptedDTO maps an adoption for the wire
func NewAdoptedDTO(a Adopted) AdoptedDTO {
	return AdoptedDTO{
		Cat:        NewCatDTO(a.Cat),
		Outcome:    a.Draw.Outcome.String(),
		Guaranteed: a.Draw.Guaranteed,
		State:      NewStateDTO(a.View),
	}
}

func bowl(auto, clicked bool) string {
	switch {
	case auto:
		return BowlAuto
	case clicked:
		return BowlAlready
	default:
		return BowlTap
	}
}

// RefreshDTO answers POST /refresh
type RefreshDTO struct {
	Changed bool     `json:"changed"`
	State   StateDTO `json:"state"`
}
