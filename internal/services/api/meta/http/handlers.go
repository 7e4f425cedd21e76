// Package http serves the /meta endpoints: liveness, readiness, build and adoption rules
package http

import (
	"context"
	"net/http"
	"time"

	"cattery/internal/core/cattery"
	"cattery/internal/core/gacha"
	"cattery/internal/core/version"
	"cattery/internal/modkit/httpkit"
)

// readyTimeout bounds one readiness probe across all backends
const readyTimeout = 2 * time.Second

// Deps feed the meta handlers
type Deps struct {
	ServiceName string
	StartedAt   time.Time

	// Backends lists every backend name to report, open or not
	Backends []string
	// Probe pings the open backends; names it omits report skipped
	Probe func(context.Context) map[string]error
	// Rules resolves the live adoption rules; nil or !ok means defaults
	Rules func() (cattery.Rules, bool)
}

type handlers struct{ Deps }

// Register mounts the meta routes on r
func Register(r httpkit.Router, d Deps) {
	h := handlers{d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/rules", h.rules)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool      `json:"ok"      example:"true"`
	Service string    `json:"service" example:"cattery-api"`
	Now     time.Time `json:"now"`
}

// ReadyCheck is one backend's probe result
type ReadyCheck struct {
	Name   string `json:"name"            example:"sqlite"`
	Status string `json:"status"          example:"ok" enums:"ok,fail,skipped"`
	Error  string `json:"error,omitempty" example:"database is locked"`
}

// ReadyResponse is ok when no open backend failed its probe
type ReadyResponse struct {
	Status string       `json:"status" example:"ok" enums:"ok,fail"`
	Checks []ReadyCheck `json:"checks"`
}

// ServiceResponse reports process identity and uptime
type ServiceResponse struct {
	Name          string    `json:"name"           example:"cattery-api"`
	Started       time.Time `json:"started"`
	UptimeSeconds int64     `json:"uptime_seconds" example:"300"`
}

// RulesResponse is the adoption rules this process is enforcing
type RulesResponse struct {
	WeeklyLimit     int               `json:"weekly_limit"      example:"3"`
	BaseBreedChance float64           `json:"base_breed_chance" example:"0.15"`
	SoftPityChance  float64           `json:"soft_pity_chance"  example:"0.3"`
	SoftPityAt      int               `json:"soft_pity_at"      example:"5"`
	GuaranteeAt     int               `json:"guarantee_at"      example:"9"`
	Breeds          int               `json:"breeds"            example:"9"`
	Build           version.BuildInfo `json:"build"`
}

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h handlers) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.ServiceName, Now: time.Now().UTC()}, nil
}

// @Summary Readiness per backend
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /meta/ready [get]
func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	var res map[string]error
	if h.Probe != nil {
		res = h.Probe(ctx)
	}
	out := ReadyResponse{Status: "ok", Checks: make([]ReadyCheck, 0, len(h.Backends))}
	for _, name := range h.Backends {
		c := ReadyCheck{Name: name, Status: "skipped"}
		if err, open := res[name]; open {
			c.Status = "ok"
			if err != nil {
				c.Status, c.Error = "fail", err.Error()
				out.Status = "fail"
			}
		}
		out.Checks = append(out.Checks, c)
	}
	if out.Status == "fail" {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
	}
	return out, nil
}

// @Summary Build info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h handlers) version(*http.Request) (any, error) {
	return version.Info(), nil
}

// @Summary Service name and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:          h.ServiceName,
		Started:       h.StartedAt.UTC(),
		UptimeSeconds: int64(time.Since(h.StartedAt) / time.Second),
	}, nil
}

// @Summary Adoption rules in effect
// @Tags Meta
// @Produce json
// @Success 200 {object} RulesResponse
// @Router /meta/rules [get]
func (h handlers) rules(*http.Request) (any, error) {
	rules := cattery.DefaultRules()
	if h.Rules != nil {
		if live, ok := h.Rules(); ok {
			rules = live
		}
	}
	return RulesResponse{
		WeeklyLimit:     rules.WeeklyLimit,
		BaseBreedChance: gacha.BaseBreedChance,
		SoftPityChance:  gacha.SoftPityChance,
		SoftPityAt:      gacha.SoftPityAt,
		GuaranteeAt:     gacha.GuaranteeAt,
		Breeds:          len(gacha.Breeds()),
		Build:           version.Info(),
	}, nil
}
