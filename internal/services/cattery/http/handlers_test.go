package http

import (
	"bufio"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cattery/internal/core/cattery"
	"cattery/internal/core/gacha"
	phttp "cattery/internal/platform/net/http"
	kit "cattery/internal/platform/testkit"
	"cattery/internal/services/cattery/domain"
	"cattery/internal/services/cattery/repo"
	"cattery/internal/services/cattery/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

var t0 = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Error      string          `json:"error"`
	Field      string          `json:"field"`
	Data       json.RawMessage `json:"data"`
}

func newRouter(t *testing.T, limit int) *chi.Mux {
	t.Helper()
	svc := service.New(service.Deps{
		Storage: repo.NewStorage(repo.NewMemory()),
		Source:  &gacha.Scripted{},
		Clock:   func() time.Time { return t0 },
	}, service.Config{
		InstallationID: "test",
		Rules:          cattery.Rules{WeeklyLimit: limit},
	})
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), svc)
	return mux
}

func call(t *testing.T, h stdhttp.Handler, method, path, body string) envelope {
	t.Helper()
	var req *stdhttp.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var env envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode %q: %v", method, path, rr.Body.String(), err)
	}
	if env.StatusCode != rr.Code {
		t.Fatalf("%s %s: envelope status %d != %d", method, path, env.StatusCode, rr.Code)
	}
	return env
}

func state(t *testing.T, env envelope) domain.StateDTO {
	t.Helper()
	var s domain.StateDTO
	if err := json.Unmarshal(env.Data, &s); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return s
}

func adopt(t *testing.T, h stdhttp.Handler) domain.AdoptedDTO {
	t.Helper()
	env := call(t, h, stdhttp.MethodPost, "/adoptions", "")
	if env.StatusCode != stdhttp.StatusCreated {
		t.Fatalf("adopt: %d %s", env.StatusCode, env.Error)
	}
	var a domain.AdoptedDTO
	if err := json.Unmarshal(env.Data, &a); err != nil {
		t.Fatalf("decode adopted: %v", err)
	}
	return a
}

func TestState_Default(t *testing.T) {
	h := newRouter(t, 3)
	env := call(t, h, stdhttp.MethodGet, "/state", "")
	if env.StatusCode != stdhttp.StatusOK {
		t.Fatalf("state: %d", env.StatusCode)
	}
	s := state(t, env)
	if len(s.Cats) != 0 || s.AdoptionsLeft != 3 || s.WeeklyLimit != 3 || s.Language != "zh" {
		t.Fatalf("unexpected default state %+v", s)
	}
	if s.FoodBowl != domain.BowlTap || s.WaterBowl != domain.BowlTap {
		t.Fatalf("bowls should wait for a tap: %q %q", s.FoodBowl, s.WaterBowl)
	}
}

func TestAdopt_CreatedThenLimited(t *testing.T) {
	h := newRouter(t, 1)

	a := adopt(t, h)
	if a.Outcome != "breed" || a.Cat.Name != "AAAAAA" || !a.Cat.RareEyes {
		t.Fatalf("unexpected adoption %+v", a)
	}
	if a.State.AdoptionsLeft != 0 || len(a.State.Cats) != 1 {
		t.Fatalf("state not advanced: %+v", a.State)
	}

	env := call(t, h, stdhttp.MethodPost, "/adoptions", "")
	if env.StatusCode != stdhttp.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", env.StatusCode)
	}
}

func TestRename_Errors(t *testing.T) {
	h := newRouter(t, 3)
	id := adopt(t, h).Cat.ID
	path := "/cats/" + itoa(id) + "/name"

	cases := []struct {
		body string
		want int
	}{
		{`{"name":"Mochi"}`, stdhttp.StatusOK},
		{`{"name":"   "}`, stdhttp.StatusBadRequest},
		{`{"name":"bad!"}`, stdhttp.StatusUnprocessableEntity},
		{`{"nom":"x"}`, stdhttp.StatusBadRequest},
	}
	for _, c := range cases {
		env := call(t, h, stdhttp.MethodPut, path, c.body)
		if env.StatusCode != c.want {
			t.Fatalf("%s: expected %d got %d (%s)", c.body, c.want, env.StatusCode, env.Error)
		}
	}

	s := state(t, call(t, h, stdhttp.MethodGet, "/state", ""))
	if s.Cats[0].Name != "Mochi" {
		t.Fatalf("rename not applied: %q", s.Cats[0].Name)
	}

	if env := call(t, h, stdhttp.MethodPut, "/cats/abc/name", `{"name":"Mochi"}`); env.StatusCode != stdhttp.StatusUnprocessableEntity || env.Field != "id" {
		t.Fatalf("bad id: %d field=%q", env.StatusCode, env.Field)
	}
}

func TestRename_NormalizesToNFC(t *testing.T) {
	h := newRouter(t, 3)
	id := adopt(t, h).Cat.ID

	// decomposed e + combining acute
	env := call(t, h, stdhttp.MethodPut, "/cats/"+itoa(id)+"/name", `{"name":"Ame\u0301lie"}`)
	if env.StatusCode != stdhttp.StatusOK {
		t.Fatalf("rename: %d %s", env.StatusCode, env.Error)
	}
	if got := state(t, env).Cats[0].Name; got != "Am\u00e9lie" {
		t.Fatalf("expected composed name, got %q", got)
	}
}

func TestInteractAndGift(t *testing.T) {
	h := newRouter(t, 3)
	id := adopt(t, h).Cat.ID

	s := state(t, call(t, h, stdhttp.MethodPost, "/cats/"+itoa(id)+"/interact", ""))
	if !s.Cats[0].Interacted || s.Cats[0].Emoji == nil {
		t.Fatalf("interaction not applied: %+v", s.Cats[0])
	}

	if env := call(t, h, stdhttp.MethodPost, "/gifts", `{"ids":[]}`); env.StatusCode != stdhttp.StatusBadRequest {
		t.Fatalf("empty gift should be rejected, got %d", env.StatusCode)
	}
	s = state(t, call(t, h, stdhttp.MethodPost, "/gifts", `{"ids":[`+itoa(id)+`]}`))
	if len(s.Cats) != 0 {
		t.Fatalf("gift should remove the cat: %+v", s.Cats)
	}
}

func TestBowlsAndFeeder(t *testing.T) {
	h := newRouter(t, 3)

	s := state(t, call(t, h, stdhttp.MethodPost, "/bowls/food", ""))
	if !s.FoodClickedToday || s.FoodBowl != domain.BowlAlready {
		t.Fatalf("food not filled: %+v", s)
	}
	s = state(t, call(t, h, stdhttp.MethodPost, "/bowls/water", ""))
	if !s.WaterClickedToday {
		t.Fatalf("water not filled: %+v", s)
	}

	if env := call(t, h, stdhttp.MethodPut, "/auto-feeder", `{}`); env.StatusCode != stdhttp.StatusBadRequest || env.Field != "enabled" {
		t.Fatalf("missing enabled: %d field=%q", env.StatusCode, env.Field)
	}
	s = state(t, call(t, h, stdhttp.MethodPut, "/auto-feeder", `{"enabled":true}`))
	if !s.AutoFeederEnabled || s.FoodBowl != domain.BowlAuto {
		t.Fatalf("auto-feeder not on: %+v", s)
	}
}

func TestLanguage(t *testing.T) {
	h := newRouter(t, 3)

	s := state(t, call(t, h, stdhttp.MethodPut, "/language", `{"language":"en-GB"}`))
	if s.Language != "en" {
		t.Fatalf("expected base language en, got %q", s.Language)
	}

	env := call(t, h, stdhttp.MethodPut, "/language", `{"language":"not a tag"}`)
	if env.StatusCode != stdhttp.StatusBadRequest || env.Field != "language" {
		t.Fatalf("bad tag: %d field=%q", env.StatusCode, env.Field)
	}
}

func TestTransferRefreshOdds(t *testing.T) {
	h := newRouter(t, 3)
	adopt(t, h)

	s := state(t, call(t, h, stdhttp.MethodPost, "/transfer", ""))
	if len(s.Cats) != 0 || s.AdoptionsThisWeek != 0 {
		t.Fatalf("transfer should reset: %+v", s)
	}

	env := call(t, h, stdhttp.MethodPost, "/refresh", "")
	var r domain.RefreshDTO
	if err := json.Unmarshal(env.Data, &r); err != nil {
		t.Fatalf("decode refresh: %v", err)
	}
	if r.Changed {
		t.Fatal("nothing to refresh on an empty cattery")
	}

	env = call(t, h, stdhttp.MethodGet, "/odds", "")
	var rows []domain.OddsDTO
	if err := json.Unmarshal(env.Data, &rows); err != nil || len(rows) == 0 {
		t.Fatalf("odds: %v rows=%d", err, len(rows))
	}

	if env := call(t, h, stdhttp.MethodGet, "/odds/observed", ""); env.StatusCode != stdhttp.StatusOK {
		t.Fatalf("observed: %d", env.StatusCode)
	}
}

func TestEvents_StreamsInitialAndUpdates(t *testing.T) {
	h := newRouter(t, 3)
	srv := httptest.NewServer(h)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, _ := stdhttp.NewRequestWithContext(ctx, stdhttp.MethodGet, srv.URL+"/events", nil)
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type %q", ct)
	}

	sc := bufio.NewScanner(resp.Body)
	next := func() string {
		for sc.Scan() {
			if line := sc.Text(); line != "" {
				return line
			}
		}
		t.Fatalf("stream ended: %v", sc.Err())
		return ""
	}

	if line := next(); line != "retry: 3000" {
		t.Fatalf("expected retry hint, got %q", line)
	}
	if line := next(); line != "event: state" {
		t.Fatalf("expected state event, got %q", line)
	}
	if line := next(); !strings.HasPrefix(line, "data: ") {
		t.Fatalf("expected data line, got %q", line)
	}

	adopt(t, h)

	if line := next(); line != "event: state" {
		t.Fatalf("expected update event, got %q", line)
	}
	var s domain.StateDTO
	if err := json.Unmarshal([]byte(strings.TrimPrefix(next(), "data: ")), &s); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if len(s.Cats) != 1 {
		t.Fatalf("expected the adopted cat in the update, got %d", len(s.Cats))
	}
}

func itoa(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}

// headerCounter records every WriteHeader, including ones the recorder would drop
type headerCounter struct {
	*httptest.ResponseRecorder
	codes []int
}

func (h *headerCounter) WriteHeader(code int) {
	h.codes = append(h.codes, code)
	h.ResponseRecorder.WriteHeader(code)
}

func TestEvents_ClosesBeforeRequestTimeout(t *testing.T) {
	kit.Swap(t, &streamMargin, 100*time.Millisecond)
	h := chimw.Timeout(400 * time.Millisecond)(newRouter(t, 3))

	w := &headerCounter{ResponseRecorder: httptest.NewRecorder()}
	start := time.Now()
	h.ServeHTTP(w, httptest.NewRequest(stdhttp.MethodGet, "/events", nil))

	if took := time.Since(start); took >= 400*time.Millisecond {
		t.Fatalf("stream outlived the deadline: %v", took)
	}
	if len(w.codes) != 1 || w.codes[0] != stdhttp.StatusOK {
		t.Fatalf("status writes = %v, want only 200", w.codes)
	}
	kit.MustContain(t, w.Body.String(), "event: state")
}
