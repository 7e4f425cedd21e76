// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"cattery/internal/core/cattery"
	modkit "cattery/internal/modkit"
	"cattery/internal/modkit/httpkit"
	"cattery/internal/modkit/module"
	"cattery/internal/platform/store"
	str "cattery/internal/platform/strings"

	metahttp "cattery/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	return &Module{
		b: b,
		deps: metahttp.Deps{
			ServiceName: "cattery-api",
			StartedAt:   time.Now(),
			Backends:    store.Backends,
			Probe:       deps.Backends().Probe,
			Rules:       catteryRules,
		},
	}
}

// catteryRules reads the live rules from the cattery module's registered ports
func catteryRules() (cattery.Rules, bool) {
	p, ok := module.Lookup[interface{ Rules() cattery.Rules }]("cattery")
	if !ok {
		return cattery.Rules{}, false
	}
	return p.Rules(), true
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, nil, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
