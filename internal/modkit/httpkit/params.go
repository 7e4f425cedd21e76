package httpkit

import (
	"net/http"
	"strconv"

	perr "cattery/internal/platform/errors"
	phttp "cattery/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

// ParamInt64 reads a positive integer path parameter
func ParamInt64(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, perr.WithField(perr.InvalidArgf("%s must be a positive integer", name), name)
	}
	return v, nil
}

// WriteError writes err in the standard envelope, for handlers that own the writer
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	phttp.RespondError(w, r, err)
}
