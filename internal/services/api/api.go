// Package api provides the HTTP API for the application
package api

import (
	"context"

	"cattery/internal/platform/config"
	"cattery/internal/platform/logger"
	"cattery/internal/platform/metrics"
	phttp "cattery/internal/platform/net/http"
	"cattery/internal/platform/store"

	"cattery/internal/modkit"
	"cattery/internal/modkit/httpkit"
	"cattery/internal/modkit/module"
	"cattery/internal/modkit/swaggerkit"

	metamod "cattery/internal/services/api/meta/module"
	catterymod "cattery/internal/services/cattery/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf // root conf, modules take their own prefixes
	Store          *store.Store
	Logger         *logger.Logger
	Metrics        *metrics.Registry
	Cattery        catterymod.Options
	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
}

// Mount mounts the API service onto the given router and returns the cattery ports
// so the caller can run the caretaker next to the server
func Mount(ctx context.Context, r phttp.Router, opt Options) (catterymod.Ports, error) {
	reg := opt.Metrics
	if reg == nil {
		reg = metrics.Default()
	}

	// shared deps for modules
	deps := modkit.Deps{
		Cfg:     opt.Config,
		Store:   opt.Store,
		Metrics: reg,
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
	}

	cattery, err := catterymod.New(ctx, deps, opt.Cattery)
	if err != nil {
		return catterymod.Ports{}, err
	}

	mods := []module.Module{
		metamod.New(deps),
		cattery,
	}

	// Swagger + profiler + scrape endpoint live outside the versioned stack
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	if opt.EnableMetrics {
		r.Handle("/metrics", reg.Handler())
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})

	return module.MustPortsOf[catterymod.Ports](cattery), nil
}
