// Package metrics owns the process prometheus registry and its /metrics handler
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric registered here
const Namespace = "cattery"

// Registry wraps a prometheus registry
// zero value is not usable; use New or Default
type Registry struct {
	reg *prometheus.Registry

	mu       sync.Mutex
	counters map[string]*prometheus.CounterVec
}

// New returns an empty registry. withRuntime adds go and process collectors
func New(withRuntime bool) *Registry {
	r := &Registry{
		reg:      prometheus.NewRegistry(),
		counters: map[string]*prometheus.CounterVec{},
	}
	if withRuntime {
		r.reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return r
}

var (
	defOnce sync.Once
	def     *Registry
)

// Default is the process registry with runtime collectors
func Default() *Registry {
	defOnce.Do(func() { def = New(true) })
	return def
}

// CounterVec registers (or returns the already registered) counter family
func (r *Registry) CounterVec(name, help string, labels ...string) *prometheus.CounterVec {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.counters[name]; ok {
		return c
	}
	c := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      name,
		Help:      help,
	}, labels)
	r.reg.MustRegister(c)
	r.counters[name] = c
	return c
}

// Gatherer exposes the underlying registry for tests and custom exporters
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// Handler serves the registry in the prometheus text format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}
