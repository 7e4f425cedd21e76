// Package logger owns the process zerolog root and request scoped children
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"cattery/internal/platform/config/raw"

	"github.com/rs/zerolog"
)

// Logger is zerolog's logger; callers never import zerolog for the type
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level   string // zerolog level name; unknown names mean debug
	Format  string // "console" or "json"
	Service string
	Caller  bool
	Writer  io.Writer // stdout when nil
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE and LOG_CALLER
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	return Options{
		Level:   env.Get("LEVEL", "debug"),
		Format:  strings.ToLower(env.Get("FORMAT", "console")),
		Service: env.Get("SERVICE", "cattery"),
		Caller:  env.GetBool("CALLER", false),
	}
}

var (
	once sync.Once
	root *Logger
)

// Init builds the root logger; only the first call has any effect
func Init(opt Options) {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		w := opt.Writer
		if w == nil {
			w = os.Stdout
		}
		if opt.Format != "json" {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
		}

		fields := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp()
		if opt.Service != "" {
			fields = fields.Str("service", opt.Service)
		}
		if bi, ok := debug.ReadBuildInfo(); ok {
			fields = fields.Str("go_version", bi.GoVersion)
		}
		if opt.Caller {
			fields = fields.Caller()
		}
		l := fields.Logger()
		root = &l
		zerolog.DefaultContextLogger = root
	})
}

func parseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		if strings.EqualFold(strings.TrimSpace(s), "warning") {
			return zerolog.WarnLevel
		}
		return zerolog.DebugLevel
	}
	return lvl
}

// Get returns the root logger, initializing from the environment on first use
func Get() *Logger {
	Init(FromEnv())
	return root
}

// Named returns a root child tagged with component
func Named(component string) *Logger {
	l := Get().With().Str("component", component).Logger()
	return &l
}

// WithRequest stores a child logger carrying the request and installation ids in ctx
func WithRequest(ctx context.Context, reqID, installationID string) context.Context {
	fields := C(ctx).With()
	if reqID != "" {
		fields = fields.Str("request_id", reqID)
	}
	if installationID != "" {
		fields = fields.Str("installation_id", installationID)
	}
	return fields.Logger().WithContext(ctx)
}

// C returns the logger stored in ctx, or the root
func C(ctx context.Context) *Logger {
	Get()
	return zerolog.Ctx(ctx)
}
