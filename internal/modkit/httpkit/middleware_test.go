package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func wrap(h http.Handler) http.Handler {
	stack := CommonStack()
	for i := len(stack) - 1; i >= 0; i-- {
		h = stack[i](h)
	}
	return h
}

func TestCommonStack(t *testing.T) {
	hits := 0
	h := wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if _, ok := r.Context().Deadline(); !ok {
			t.Errorf("request has no deadline")
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		path     string
		want     int
		wantHits int
	}{
		{"/health", http.StatusOK, 0},
		{"/cattery/state/", http.StatusNoContent, 1},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rr.Code != tc.want || hits != tc.wantHits {
			t.Fatalf("%s: code=%d hits=%d", tc.path, rr.Code, hits)
		}
		if rr.Header().Get("Cache-Control") == "" {
			t.Fatalf("%s: NoCache headers missing", tc.path)
		}
	}
}

func TestCommonStack_PanicBecomesEnvelope(t *testing.T) {
	h := wrap(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/cattery/state", nil))

	if rr.Code != http.StatusInternalServerError || rr.Header().Get("Content-Type") != "application/json; charset=utf-8" {
		t.Fatalf("code=%d ct=%q", rr.Code, rr.Header().Get("Content-Type"))
	}
}
