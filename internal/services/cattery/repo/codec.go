package repo

import (
	"encoding/json"

	"cattery/internal/core/cattery"
	"cattery/internal/core/gacha"
	perr "cattery/internal/platform/errors"
	pstrings "cattery/internal/platform/strings"
	ptime "cattery/internal/platform/time"
)

// RecordVersion is the version written into every snapshot
const RecordVersion = 1

type record struct {
	Version int       `json:"version"`
	State   stateWire `json:"state"`
}

// times are unix milliseconds on the wire
type stateWire struct {
	Cats              []catWire `json:"cats"`
	AdoptionsThisWeek int       `json:"adoptionsThisWeek"`
	WeekStartTime     int64     `json:"weekStartTime"`
	DayStartTime      int64     `json:"dayStartTime"`
	FoodClickedToday  bool      `json:"foodClickedToday"`
	WaterClickedToday bool      `json:"waterClickedToday"`
	AutoFeederEnabled bool      `json:"autoFeederEnabled"`
	Language          string    `json:"language"`
	PityCounter       int       `json:"pityCounter"`
	GuaranteeCounter  int       `json:"guaranteeCounter"`
}

type catWire struct {
	ID                   int64   `json:"id"`
	Name                 string  `json:"name"`
	Breed                string  `json:"breed"`
	SkinColor            string  `json:"skinColor"`
	EyeColor             string  `json:"eyeColor"`
	Interacted           bool    `json:"interacted"`
	Emoji                *string `json:"emoji"`
	InteractionResetTime *int64  `json:"interactionResetTime"`
	LastFedTime          int64   `json:"lastFedTime"`
	Brightness           float64 `json:"brightness"`
	Saturation           float64 `json:"saturation"`
}

// Encode serializes a state into a versioned record
func Encode(s cattery.State) ([]byte, error) {
	w := stateWire{
		Cats:              make([]catWire, 0, len(s.Cats)),
		AdoptionsThisWeek: s.AdoptionsThisWeek,
		WeekStartTime:     s.WeekStartTime.UnixMilli(),
		DayStartTime:      s.DayStartTime.UnixMilli(),
		FoodClickedToday:  s.FoodClickedToday,
		WaterClickedToday: s.WaterClickedToday,
		AutoFeederEnabled: s.AutoFeederEnabled,
		Language:          s.Language,
		PityCounter:       s.PityCounter,
		GuaranteeCounter:  s.GuaranteeCounter,
	}
	for _, c := range s.Cats {
		cw := catWire{
			ID:          c.ID,
			Name:        c.Name,
			Breed:       string(c.Breed),
			SkinColor:   c.SkinColor,
			EyeColor:    c.EyeColor,
			Interacted:  c.Interacted,
			Emoji:       pstrings.Ptr(c.Emoji),
			LastFedTime: c.LastFedTime.UnixMilli(),
			Brightness:  c.Brightness,
			Saturation:  c.Saturation,
		}
		cw.InteractionResetTime = ptime.Millis(c.InteractionResetTime)
		w.Cats = append(w.Cats, cw)
	}
	b, err := json.Marshal(record{Version: RecordVersion, State: w})
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "encode cattery state")
	}
	return b, nil
}

// Decode parses a record written by Encode
func Decode(b []byte) (cattery.State, error) {
	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		return cattery.State{}, perr.Wrap(err, perr.ErrorCodeJSON, "decode cattery state")
	}
	if rec.Version != RecordVersion {
		return cattery.State{}, perr.JSONErrf("unsupported cattery record version %d", rec.Version)
	}

	w := rec.State
	s := cattery.State{
		Cats:              make([]cattery.Cat, 0, len(w.Cats)),
		AdoptionsThisWeek: w.AdoptionsThisWeek,
		WeekStartTime:     ptime.FromMillis(w.WeekStartTime),
		DayStartTime:      ptime.FromMillis(w.DayStartTime),
		FoodClickedToday:  w.FoodClickedToday,
		WaterClickedToday: w.WaterClickedToday,
		AutoFeederEnabled: w.AutoFeederEnabled,
		Language:          w.Language,
		PityCounter:       w.PityCounter,
		GuaranteeCounter:  w.GuaranteeCounter,
	}
	if s.Language == "" {
		s.Language = cattery.DefaultLanguage
	}
	for _, cw := range w.Cats {
		c := cattery.Cat{
			ID:          cw.ID,
			Name:        cw.Name,
			Breed:       gacha.Breed(cw.Breed),
			SkinColor:   cw.SkinColor,
			EyeColor:    cw.EyeColor,
			Interacted:  cw.Interacted,
			Emoji:       pstrings.Deref(cw.Emoji),
			LastFedTime: ptime.FromMillis(cw.LastFedTime),
			Brightness:  cw.Brightness,
			Saturation:  cw.Saturation,
		}
		c.InteractionResetTime = ptime.FromMillisPtr(cw.InteractionResetTime)
		s.Cats = append(s.Cats, c)
	}
	return s, nil
}
