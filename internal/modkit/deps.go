// Package modkit provides module wiring and core deps
package modkit

import (
	"cattery/internal/modkit/repokit"
	"cattery/internal/platform/config"
	"cattery/internal/platform/logger"
	"cattery/internal/platform/metrics"
	"cattery/internal/platform/store"
)

// Deps holds core dependencies passed to modules
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse

	// Store carries every opened backend (sqlite, blob) for modules that pick one by config
	Store *store.Store

	// Metrics is the shared prometheus registry, nil means metrics.Default()
	Metrics *metrics.Registry
}

// Backends returns Store or an empty one so modules can probe seams without nil checks
func (d Deps) Backends() *store.Store {
	if d.Store != nil {
		return d.Store
	}
	return &store.Store{PG: d.PG, CH: d.CH, Log: d.Log}
}
