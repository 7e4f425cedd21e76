package middleware

import (
	"net/http"

	"cattery/internal/platform/logger"
	pnet "cattery/internal/platform/net"
)

// Correlate copies the chi request id and the served installation onto the
// request context so logger.C and pnet getters agree. Mount after RequestID
func Correlate(installationID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			rid := pnet.RequestID(ctx)
			ctx = pnet.WithRequest(ctx, rid, installationID)
			ctx = logger.WithRequest(ctx, rid, installationID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
