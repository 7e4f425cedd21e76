package middleware

import (
	"net/http"
	"runtime/debug"

	perr "cattery/internal/platform/errors"
	"cattery/internal/platform/logger"
	phttp "cattery/internal/platform/net/http"
)

// RecoverJSON turns a handler panic into the standard 500 envelope and logs the stack
// http.ErrAbortHandler is re-panicked so net/http can drop the connection quietly
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Str("path", r.URL.Path).
				Msg("panic recovered")
			phttp.RespondError(w, r, perr.PanicErrf("panic recovered"))
		}()
		next.ServeHTTP(w, r)
	})
}
