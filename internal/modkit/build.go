package modkit

import (
	"net/http"
	"slices"

	"cattery/internal/modkit/httpkit"
	str "cattery/internal/platform/strings"
)

// Built is the resolved module configuration
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Register []func(httpkit.Router)
}

// Build applies opts over the given defaults; later options win
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	return Built{
		Name:     c.name,
		Prefix:   c.prefix,
		Mw:       slices.Clone(c.mw),
		Register: slices.Clone(c.register),
	}
}

// Mount routes the module under its prefix
// own middleware runs before Mw and own routes register before Register
func (b Built) Mount(r httpkit.Router, own []func(http.Handler) http.Handler, routes func(httpkit.Router)) {
	r.Route(str.MustPrefix(b.Prefix), func(rr httpkit.Router) {
		for _, mw := range own {
			rr.Use(mw)
		}
		for _, mw := range b.Mw {
			rr.Use(mw)
		}
		if routes != nil {
			routes(rr)
		}
		for _, fn := range b.Register {
			fn(rr)
		}
	})
}
