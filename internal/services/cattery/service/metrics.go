package service

import (
	"cattery/internal/core/gacha"
	perr "cattery/internal/platform/errors"
	"cattery/internal/platform/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts transitions and adoption outcomes
type Metrics struct {
	transitions *prometheus.CounterVec
	adoptions   *prometheus.CounterVec
}

// NewMetrics registers the cattery counters on r; nil r uses a private registry
func NewMetrics(r *metrics.Registry) *Metrics {
	if r == nil {
		r = metrics.New(false)
	}
	return &Metrics{
		transitions: r.CounterVec("transitions_total", "Cattery transitions by operation and result", "op", "result"),
		adoptions:   r.CounterVec("adoptions_total", "Adoptions by outcome and eye rarity", "outcome", "eyes"),
	}
}

func (m *Metrics) transition(op string, changed bool, err error) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(op, result(changed, err)).Inc()
}

func (m *Metrics) adopted(r gacha.Result) {
	if m == nil {
		return
	}
	eyes := "common"
	if r.RareEyes {
		eyes = "rare"
	}
	m.adoptions.WithLabelValues(r.Outcome.String(), eyes).Inc()
}

func result(changed bool, err error) string {
	switch {
	case err == nil && changed:
		return "ok"
	case err == nil:
		return "noop"
	}
	switch perr.CodeOf(err) {
	case perr.ErrorCodeTooManyRequests, perr.ErrorCodeValidation,
		perr.ErrorCodeInvalidArgument, perr.ErrorCodeDuplicateKey:
		return "rejected"
	default:
		return "error"
	}
}
