package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "cattery/internal/platform/errors"
	pnet "cattery/internal/platform/net"
	phttp "cattery/internal/platform/net/http"
)

type renameIn struct {
	Name string `json:"name" validate:"required,max=8"`
}

func request(method, body string) *http.Request {
	req := httptest.NewRequest(method, "/cattery", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(pnet.WithRequest(req.Context(), "rid-7", "inst-1"))
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return env
}

func TestHandle_SuccessCarriesRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Created(map[string]int64{"id": 1717000000123})
	})(rec, request(http.MethodPost, ""))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d", rec.Code)
	}
	env := envelope(t, rec)
	if env.StatusCode != 201 || env.Status != "Created" || env.RequestID != "rid-7" || env.Data == nil {
		t.Fatalf("envelope %+v", env)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("content type %q", ct)
	}
}

func TestHandle_NoContentHasNoBody(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Response{Status: http.StatusNoContent, Header: http.Header{"X-Cattery": {"empty"}}}
	})(rec, request(http.MethodDelete, ""))
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 || rec.Header().Get("X-Cattery") != "empty" {
		t.Fatalf("got %d %q %v", rec.Code, rec.Body.String(), rec.Header())
	}
}

func TestHandle_ErrorsMapToStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		retry  bool
	}{
		{perr.New(perr.ErrorCodeTooManyRequests, "adoption_limit_reached"), http.StatusTooManyRequests, false},
		{perr.New(perr.ErrorCodeDuplicateKey, "name_exists"), http.StatusConflict, false},
		{perr.New(perr.ErrorCodeInvalidArgument, "name_invalid"), http.StatusUnprocessableEntity, false},
		{perr.Unavailablef("save cattery"), http.StatusServiceUnavailable, true},
		{errors.New("plain"), http.StatusInternalServerError, false},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		phttp.Handle(func(*http.Request) phttp.Response { return phttp.Error(tc.err) })(rec, request(http.MethodPost, ""))
		if rec.Code != tc.status {
			t.Fatalf("%v: status %d want %d", tc.err, rec.Code, tc.status)
		}
		if got := rec.Header().Get("Retry-After") != ""; got != tc.retry {
			t.Fatalf("%v: retry-after set=%v", tc.err, got)
		}
		env := envelope(t, rec)
		if env.StatusCode != tc.status || env.Error == "" || env.RequestID != "rid-7" {
			t.Fatalf("%v: envelope %+v", tc.err, env)
		}
	}
}

func TestRespondError_IncludesField(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.RespondError(rec, request(http.MethodGet, ""), perr.WithField(perr.InvalidArgf("id must be a positive integer"), "id"))
	env := envelope(t, rec)
	if rec.Code != http.StatusUnprocessableEntity || env.Field != "id" {
		t.Fatalf("got %d %+v", rec.Code, env)
	}
}

func TestJSONHandler(t *testing.T) {
	h := phttp.JSONHandler(func(_ *http.Request, in renameIn) (any, error) {
		if in.Name == "Taken" {
			return nil, perr.New(perr.ErrorCodeDuplicateKey, "name_exists")
		}
		return map[string]string{"name": in.Name}, nil
	})

	cases := []struct {
		body   string
		status int
		field  string
	}{
		{`{"name":"Mochi"}`, http.StatusOK, ""},
		{`{"name":"Taken"}`, http.StatusConflict, ""},
		{`{"name":"Mochi the Great"}`, http.StatusBadRequest, "name"},
		{`{"nickname":"x"}`, http.StatusBadRequest, ""},
		{`{`, http.StatusBadRequest, ""},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h(rec, request(http.MethodPut, tc.body))
		if rec.Code != tc.status {
			t.Fatalf("%s: status %d want %d body=%s", tc.body, rec.Code, tc.status, rec.Body.String())
		}
		if env := envelope(t, rec); env.Field != tc.field {
			t.Fatalf("%s: field %q want %q", tc.body, env.Field, tc.field)
		}
	}
}

func TestJSONHandler_ResponsePassesThrough(t *testing.T) {
	h := phttp.JSONHandler(func(_ *http.Request, in renameIn) (any, error) {
		return phttp.Created(in.Name), nil
	})
	rec := httptest.NewRecorder()
	h(rec, request(http.MethodPost, `{"name":"Miso"}`))
	if rec.Code != http.StatusCreated || envelope(t, rec).Data != "Miso" {
		t.Fatalf("got %d %s", rec.Code, rec.Body.String())
	}
}
