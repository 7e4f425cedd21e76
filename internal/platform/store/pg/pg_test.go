package pg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"cattery/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

func TestOpen_ParseError(t *testing.T) {
	if _, err := Open(context.Background(), Config{URL: "://bad"}, nil, nil); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestOpen_NewPoolError(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return nil, errors.New("boom")
	})
	if _, err := Open(context.Background(), Config{URL: "postgres://u:p@h:5432/db"}, nil, nil); err == nil {
		t.Fatalf("expected newPool error")
	}
}

func TestOpen_AppliesConfig(t *testing.T) {
	testkit.Serial(t)
	var seen *pgxpool.Config
	testkit.Swap(t, &newPool, func(_ context.Context, pc *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = pc
		return &pgxpool.Pool{}, nil
	})

	p, err := Open(context.Background(), Config{URL: "postgres://u:p@h:5432/db", MaxConns: 3, SlowMs: 50, AppName: "cattery-test"}, nil, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if seen.MaxConns != 3 || seen.ConnConfig.RuntimeParams["application_name"] != "cattery-test" {
		t.Fatalf("config not applied: max=%d params=%v", seen.MaxConns, seen.ConnConfig.RuntimeParams)
	}
	if p.SlowMs != 50 {
		t.Fatalf("SlowMs = %d", p.SlowMs)
	}
}

func TestClose_NilSafe(t *testing.T) {
	var p *PG
	p.Close()
	(&PG{}).Close()
}

func TestCompact(t *testing.T) {
	cases := map[string]string{
		"select 1":                          "select 1",
		"SELECT\t*\nFROM\r\ttable  WHERE a": "SELECT * FROM table WHERE a",
		"":                                  "",
	}
	for in, want := range cases {
		if got := compact(in); got != want {
			t.Fatalf("compact(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTracer_LevelsBySlow(t *testing.T) {
	var buf bytes.Buffer
	tr := Tracer(zerolog.New(&buf))

	var line struct {
		Level string `json:"level"`
		SQL   string `json:"sql"`
		Slow  bool   `json:"slow"`
	}

	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT\n 1", ElapsedUS: 1500})
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if line.Level != "info" || line.SQL != "SELECT 1" || line.Slow {
		t.Fatalf("unexpected line: %+v", line)
	}

	buf.Reset()
	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT 2", Slow: true})
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if line.Level != "warn" || !line.Slow {
		t.Fatalf("unexpected slow line: %+v", line)
	}
}
