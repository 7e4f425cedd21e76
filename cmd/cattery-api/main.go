// @title         Cattery API
// @version       0.1.0
// @description   Adopt, feed, and look after a small cattery
// @BasePath      /api/v1

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"cattery/internal/modkit/repokit"
	"cattery/internal/platform/config"
	"cattery/internal/platform/logger"
	"cattery/internal/platform/metrics"
	phttp "cattery/internal/platform/net/http"
	"cattery/internal/platform/store"

	"cattery/internal/services/api"
	catterymod "cattery/internal/services/cattery/module"
)

func main() {
	// bring up logging early (LOG_*)
	logger.Init(logger.FromEnv())
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// cattery options decide which store backend must be opened
	catOpts := catterymod.FromConfig(root)
	stCfg := store.ConfigFromEnv(root, "cattery")
	catterymod.Enable(&stCfg, catOpts)

	st, err := store.Open(ctx, stCfg, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	repokit.MustGuard(ctx, st)
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_API_ADDR / CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	ports, err := api.Mount(ctx, srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		Logger:         l,
		Metrics:        metrics.Default(),
		Cattery:        catOpts,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		EnableMetrics:  apiCfg.MayBool("METRICS", true),
	})
	if err != nil {
		l.Panic().Err(err).Msg("api.Mount failed")
	}

	// caretaker keeps decay moving without a client
	go func() {
		if err := ports.Caretaker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			l.Error().Err(err).Msg("caretaker stopped")
		}
	}()

	// run until SIGINT/SIGTERM, then drain
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("bye")
}
