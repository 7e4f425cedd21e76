// Package http provides HTTP transport for the cattery
package http

import (
	"encoding/json"
	"fmt"
	stdhttp "net/http"
	"time"

	"cattery/internal/modkit/httpkit"
	"cattery/internal/platform/logger"
	"cattery/internal/services/cattery/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// RetryAfter is the reconnect hint sent to event stream clients
const RetryAfter = 3 * time.Second

// streamMargin is how long before the request deadline an event stream closes itself.
// Closing first keeps the timeout middleware from answering 504 on a started stream
var streamMargin = time.Second

// Register mounts cattery endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/state", h.state)
	httpkit.Post(r, "/refresh", h.refresh)
	httpkit.Post(r, "/adoptions", h.adopt)

	httpkit.Post(r, "/cats/{id}/interact", h.interact)
	httpkit.PutJSON[domain.RenameInput](r, "/cats/{id}/name", h.rename)
	httpkit.PostJSON[domain.GiftInput](r, "/gifts", h.gift)
	httpkit.Post(r, "/transfer", h.transfer)

	httpkit.Post(r, "/bowls/food", h.fillFood)
	httpkit.Post(r, "/bowls/water", h.fillWater)
	httpkit.PutJSON[domain.AutoFeederInput](r, "/auto-feeder", h.autoFeeder)
	httpkit.PutJSON[domain.LanguageInput](r, "/language", h.language)

	httpkit.Get(r, "/odds", h.odds)
	httpkit.Get(r, "/odds/observed", h.observed)
	r.Get("/events", h.events)
}

type handlers struct{ svc domain.ServicePort }

func stateOf(v domain.View, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return domain.NewStateDTO(v), nil
}

// swagger:route GET /cattery/state Cattery catteryState
// @Summary Current cattery state
// @Tags Cattery
// @Produce json
// @Success 200 {object} domain.StateDTO "ok"
// @Router /cattery/state [get]
func (h *handlers) state(r *stdhttp.Request) (any, error) {
	return stateOf(h.svc.State(r.Context()))
}

// swagger:route POST /cattery/refresh Cattery catteryRefresh
// @Summary Apply feeding decay and expire interactions
// @Tags Cattery
// @Produce json
// @Success 200 {object} domain.RefreshDTO "ok"
// @Router /cattery/refresh [post]
func (h *handlers) refresh(r *stdhttp.Request) (any, error) {
	v, changed, err := h.svc.Refresh(r.Context())
	if err != nil {
		return nil, err
	}
	return domain.RefreshDTO{Changed: changed, State: domain.NewStateDTO(v)}, nil
}

// swagger:route POST /cattery/adoptions Cattery catteryAdopt
// @Summary Adopt one cat
// @Tags Cattery
// @Produce json
// @Success 201 {object} domain.AdoptedDTO "adopted"
// @Failure 429 {object} httpkit.Envelope "weekly limit reached"
// @Router /cattery/adoptions [post]
func (h *handlers) adopt(r *stdhttp.Request) (any, error) {
	a, err := h.svc.Adopt(r.Context())
	if err != nil {
		return nil, err
	}
	return httpkit.Created(domain.NewAdoptedDTO(a)), nil
}

// swagger:route POST /cattery/cats/{id}/interact Cattery catteryInteract
// @Summary Pet a cat
// @Tags Cattery
// @Produce json
// @Param id path int true "Cat id"
// @Success 200 {object} domain.StateDTO "ok"
// @Router /cattery/cats/{id}/interact [post]
func (h *handlers) interact(r *stdhttp.Request) (any, error) {
	id, err := httpkit.ParamInt64(r, "id")
	if err != nil {
		return nil, err
	}
	return stateOf(h.svc.Interact(r.Context(), id))
}

// swagger:route PUT /cattery/cats/{id}/name Cattery catteryRename
// @Summary Rename a cat
// @Tags Cattery
// @Accept json
// @Produce json
// @Param id path int true "Cat id"
// @Param payload body domain.RenameInput true "New name"
// @Success 200 {object} domain.StateDTO "ok"
// @Failure 400 {object} httpkit.Envelope "empty name"
// @Failure 409 {object} httpkit.Envelope "name taken"
// @Failure 422 {object} httpkit.Envelope "forbidden characters"
// @Router /cattery/cats/{id}/name [put]
func (h *handlers) rename(r *stdhttp.Request, in domain.RenameInput) (any, error) {
	id, err := httpkit.ParamInt64(r, "id")
	if err != nil {
		return nil, err
	}
	return stateOf(h.svc.Rename(r.Context(), id, norm.NFC.String(in.Name)))
}

// swagger:route POST /cattery/gifts Cattery catteryGift
// @Summary Gift cats away
// @Tags Cattery
// @Accept json
// @Produce json
// @Param payload body domain.GiftInput true "Cat ids"
// @Success 200 {object} domain.StateDTO "ok"
// @Router /cattery/gifts [post]
func (h *handlers) gift(r *stdhttp.Request, in domain.GiftInput) (any, error) {
	return stateOf(h.svc.Gift(r.Context(), in.IDs))
}

// swagger:route POST /cattery/transfer Cattery catteryTransfer
// @Summary Hand the cattery over and start fresh
// @Tags Cattery
// @Produce json
// @Success 200 {object} domain.StateDTO "ok"
// @Router /cattery/transfer [post]
func (h *handlers) transfer(r *stdhttp.Request) (any, error) {
	return stateOf(h.svc.Transfer(r.Context()))
}

// swagger:route POST /cattery/bowls/food Cattery catteryFood
// @Summary Fill the food bowl
// @Tags Cattery
// @Produce json
// @Success 200 {object} domain.StateDTO "ok"
// @Router /cattery/bowls/food [post]
func (h *handlers) fillFood(r *stdhttp.Request) (any, error) {
	return stateOf(h.svc.FillFood(r.Context()))
}

// swagger:route POST /cattery/bowls/water Cattery catteryWater
// @Summary Fill the water bowl
// @Tags Cattery
// @Produce json
// @Success 200 {object} domain.StateDTO "ok"
// @Router /cattery/bowls/water [post]
func (h *handlers) fillWater(r *stdhttp.Request) (any, error) {
	return stateOf(h.svc.FillWater(r.Context()))
}

// swagger:route PUT /cattery/auto-feeder Cattery catteryAutoFeeder
// @Summary Switch the auto-feeder
// @Tags Cattery
// @Accept json
// @Produce json
// @Param payload body domain.AutoFeederInput true "Enabled"
// @Success 200 {object} domain.StateDTO "ok"
// @Router /cattery/auto-feeder [put]
func (h *handlers) autoFeeder(r *stdhttp.Request, in domain.AutoFeederInput) (any, error) {
	return stateOf(h.svc.ToggleAutoFeeder(r.Context(), *in.Enabled))
}

// swagger:route PUT /cattery/language Cattery catteryLanguage
// @Summary Set the display language
// @Tags Cattery
// @Accept json
// @Produce json
// @Param payload body domain.LanguageInput true "BCP 47 code"
// @Success 200 {object} domain.StateDTO "ok"
// @Router /cattery/language [put]
func (h *handlers) language(r *stdhttp.Request, in domain.LanguageInput) (any, error) {
	return stateOf(h.svc.SetLanguage(r.Context(), baseLanguage(in.Language)))
}

// baseLanguage reduces a validated tag to its canonical base ("zh-Hant-TW" -> "zh")
func baseLanguage(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	base, _ := tag.Base()
	return base.String()
}

// swagger:route GET /cattery/odds Cattery catteryOdds
// @Summary Base probability per breed
// @Tags Cattery
// @Produce json
// @Success 200 {array} domain.OddsDTO "ok"
// @Router /cattery/odds [get]
func (h *handlers) odds(_ *stdhttp.Request) (any, error) {
	return h.svc.Odds(), nil
}

// swagger:route GET /cattery/odds/observed Cattery catteryObservedOdds
// @Summary Adoption outcomes seen so far against base odds
// @Tags Cattery
// @Produce json
// @Success 200 {object} domain.ObservedOdds "ok"
// @Router /cattery/odds/observed [get]
func (h *handlers) observed(r *stdhttp.Request) (any, error) {
	return h.svc.ObservedOdds(r.Context())
}

// swagger:route GET /cattery/events Cattery catteryEvents
// @Summary Server-sent state after every write
// @Tags Cattery
// @Produce text/event-stream
// @Success 200 {object} domain.StateDTO "event: state"
// @Router /cattery/events [get]
func (h *handlers) events(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()
	rc := stdhttp.NewResponseController(w)

	updates, cancel := h.svc.Subscribe()
	defer cancel()

	v, err := h.svc.State(ctx)
	if err != nil {
		httpkit.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(stdhttp.StatusOK)
	fmt.Fprintf(w, "retry: %d\n\n", RetryAfter.Milliseconds())

	log := logger.C(ctx)
	send := func(v domain.View) bool {
		if err := writeEvent(w, domain.NewStateDTO(v)); err != nil {
			log.Debug().Err(err).Msg("event stream write failed")
			return false
		}
		if err := rc.Flush(); err != nil {
			log.Debug().Err(err).Msg("event stream flush failed")
			return false
		}
		return true
	}

	if !send(v) {
		return
	}
	var closing <-chan time.Time
	if dl, ok := ctx.Deadline(); ok {
		t := time.NewTimer(max(time.Until(dl)-streamMargin, 0))
		defer t.Stop()
		closing = t.C
	}
	for {
		select {
		case <-closing:
			return
		case <-ctx.Done():
			return
		case v, ok := <-updates:
			if !ok || !send(v) {
				return
			}
		}
	}
}

func writeEvent(w stdhttp.ResponseWriter, dto domain.StateDTO) error {
	b, err := json.Marshal(dto)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: state\ndata: %s\n\n", b)
	return err
}
