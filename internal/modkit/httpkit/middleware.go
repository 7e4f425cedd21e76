package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"cattery/internal/platform/net/middleware"
)

// RequestTimeout bounds every request, event streams included (clients reconnect)
const RequestTimeout = 30 * time.Second

// CommonStack is the middleware every versioned api router starts with, outermost first
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.AccessLog,
		middleware.CORS(),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
		middleware.Timeout(RequestTimeout),
	}
}
