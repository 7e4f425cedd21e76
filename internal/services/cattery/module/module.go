// Package module wires the cattery service, its storage, and HTTP routes
package module

import (
	"context"
	"net/http"

	"cattery/internal/core/cattery"
	"cattery/internal/core/gacha"
	"cattery/internal/modkit"
	"cattery/internal/modkit/httpkit"
	"cattery/internal/platform/logger"
	"cattery/internal/platform/metrics"
	"cattery/internal/platform/net/middleware"
	str "cattery/internal/platform/strings"
	"cattery/internal/services/cattery/domain"

	catteryhttp "cattery/internal/services/cattery/http"
	"cattery/internal/services/cattery/repo"
	"cattery/internal/services/cattery/service"
)

// Module implements the modkit.Module interface
type Module struct {
	b   modkit.Built
	mws []func(http.Handler) http.Handler
	svc domain.ServicePort

	ports Ports
}

// New opens the configured snapshot backend and builds the service
func New(ctx context.Context, deps modkit.Deps, opts Options, mopts ...modkit.Option) (*Module, error) {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("cattery"),
		modkit.WithPrefix("/cattery"),
	}, mopts...)...)

	log := logger.Named("cattery")

	snaps, err := repo.Open(ctx, deps.Backends(), repo.Config{
		Backend:        opts.Backend,
		InstallationID: opts.InstallationID,
		FilePath:       opts.FilePath,
		S3Prefix:       opts.S3Prefix,
	})
	if err != nil {
		return nil, err
	}

	reg := deps.Metrics
	if reg == nil {
		reg = metrics.Default()
	}

	svc := service.New(service.Deps{
		Storage: repo.NewStorage(snaps),
		Source:  gacha.NewSource(opts.Seed),
		Ledger:  ledger(ctx, deps, log),
		Metrics: service.NewMetrics(reg),
		Log:     log,
	}, service.Config{
		InstallationID: opts.InstallationID,
		Rules:          cattery.Rules{WeeklyLimit: opts.WeeklyLimit},
	})

	log.Info().
		Str("backend", opts.Backend).
		Str("installation_id", opts.InstallationID).
		Int("weekly_limit", opts.WeeklyLimit).
		Dur("refresh_every", opts.RefreshEvery).
		Msg("cattery ready")

	return &Module{
		b:   b,
		mws: []func(http.Handler) http.Handler{middleware.Correlate(opts.InstallationID)},
		svc: svc,
		ports: Ports{
			Service:   svc,
			Caretaker: service.NewCaretaker(svc, opts.RefreshEvery),
		},
	}, nil
}

// ledger prefers clickhouse when it is configured and its table can be created
func ledger(ctx context.Context, deps modkit.Deps, log *logger.Logger) domain.LedgerPort {
	if deps.CH == nil {
		return repo.NewMemoryLedger()
	}
	l := repo.NewCHLedger(deps.CH)
	if err := l.Migrate(ctx); err != nil {
		log.Warn().Err(err).Msg("adoption ledger unavailable; keeping counts in memory")
		return repo.NewMemoryLedger()
	}
	return l
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, m.mws, func(rr httpkit.Router) { catteryhttp.Register(rr, m.svc) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "cattery") }

// Prefix returns the mount prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.ports }
