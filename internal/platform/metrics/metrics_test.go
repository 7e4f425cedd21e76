package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"cattery/internal/platform/testkit"
)

func TestCounterVecIsIdempotent(t *testing.T) {
	r := New(false)
	a := r.CounterVec("things_total", "things", "kind")
	b := r.CounterVec("things_total", "things", "kind")
	if a != b {
		t.Fatalf("second registration should return the first vec")
	}
	a.WithLabelValues("x").Inc()

	mfs, err := r.Gatherer().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) != 1 || mfs[0].GetName() != "cattery_things_total" {
		t.Fatalf("families: %v", mfs)
	}
}

func TestHandlerServesText(t *testing.T) {
	r := New(false)
	r.CounterVec("hits_total", "hits", "op").WithLabelValues("adopt").Add(2)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	testkit.MustContain(t, string(body), `cattery_hits_total{op="adopt"} 2`)
}

func TestDefaultIsShared(t *testing.T) {
	if Default() != Default() {
		t.Fatalf("Default should be a singleton")
	}
}
