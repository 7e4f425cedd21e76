package middleware

import (
	"net/http"
	"time"

	"cattery/internal/platform/logger"
)

// SlowRequest is where AccessLog moves from info to warn
const SlowRequest = 500 * time.Millisecond

// captureWriter records the status and body size a handler produced
type captureWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (cw *captureWriter) WriteHeader(code int) {
	if !cw.wroteHeader {
		cw.status = code
		cw.wroteHeader = true
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.wroteHeader = true
	n, err := cw.ResponseWriter.Write(b)
	cw.bytes += n
	return n, err
}

// Flush keeps event streams flowing through the wrapper
func (cw *captureWriter) Flush() {
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer
func (cw *captureWriter) Unwrap() http.ResponseWriter { return cw.ResponseWriter }

// AccessLog writes one line per finished request on the request logger
// 5xx log at error, slow requests at warn; event streams are skipped since they end on timeout
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") == "text/event-stream" {
			next.ServeHTTP(w, r)
			return
		}
		cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(cw, r)
		elapsed := time.Since(start)

		log := logger.C(r.Context())
		evt := log.Info()
		switch {
		case cw.status >= http.StatusInternalServerError:
			evt = log.Error()
		case elapsed >= SlowRequest:
			evt = log.Warn()
		}
		evt.Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", cw.status).
			Int("bytes", cw.bytes).
			Dur("elapsed", elapsed).
			Msg("request")
	})
}
