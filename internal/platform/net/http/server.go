package http

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"strings"
	"time"

	"cattery/internal/platform/config"
	"cattery/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// ShutdownTimeout bounds the graceful drain once Run's context is done
const ShutdownTimeout = 10 * time.Second

// Server is a thin wrapper over chi + stdlib http.Server
// no WriteTimeout: event streams stay open until the request timeout middleware ends them
type Server struct {
	addr string
	mux  *chi.Mux
	srv  *stdhttp.Server
}

// NewServer reads ADDR or PORT from cfg; opts receive the *chi.Mux before any routes
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := listenAddr(cfg)
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		addr: addr,
		mux:  m,
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       2 * time.Minute,
		},
	}
}

// listenAddr reads ADDR (host:port), falling back to a bare PORT
func listenAddr(cfg config.Conf) string {
	if addr := cfg.MayString("ADDR", ""); addr != "" {
		return addr
	}
	port := cfg.MayString("PORT", "")
	switch {
	case port == "":
		return ":4000"
	case strings.Contains(port, ":"):
		return port
	default:
		return ":" + port
	}
}

// Router returns a Router facade over the internal chi mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr returns the configured address, or the bound one once Run is listening
func (s *Server) Addr() string { return s.addr }

// Run listens and serves until ctx is done, then drains within ShutdownTimeout
// a clean shutdown returns nil
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	s.addr = ln.Addr().String()

	log := logger.Named("http")
	log.Info().Str("addr", s.addr).Msg("http listening")

	errc := make(chan error, 1)
	go func() { errc <- s.srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
	defer cancel()
	log.Info().Msg("http draining")
	if err := s.srv.Shutdown(shCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
