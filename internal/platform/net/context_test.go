package net_test

import (
	"context"
	"testing"

	pnet "cattery/internal/platform/net"
)

func TestWithRequest_And_Getters(t *testing.T) {
	base := context.Background()

	t.Run("sets both ids", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "req-123", "inst-abc")

		if got := pnet.RequestID(ctx); got != "req-123" {
			t.Fatalf("RequestID got %q want %q", got, "req-123")
		}
		if got := pnet.InstallationID(ctx); got != "inst-abc" {
			t.Fatalf("InstallationID got %q want %q", got, "inst-abc")
		}
	})

	t.Run("sets only request id", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "r-only", "")

		if got := pnet.RequestID(ctx); got != "r-only" {
			t.Fatalf("RequestID got %q want %q", got, "r-only")
		}
		if got := pnet.InstallationID(ctx); got != "" {
			t.Fatalf("InstallationID got %q want empty", got)
		}
	})

	t.Run("sets only installation id", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "", "i-only")

		if got := pnet.RequestID(ctx); got != "" {
			t.Fatalf("RequestID got %q want empty", got)
		}
		if got := pnet.InstallationID(ctx); got != "i-only" {
			t.Fatalf("InstallationID got %q want %q", got, "i-only")
		}
	})

	t.Run("no ids returns same ctx and empty getters", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "", "")

		// should be the same reference since nothing was set
		if ctx != base {
			t.Fatalf("expected ctx to be unchanged when both ids empty")
		}
		if got := pnet.RequestID(ctx); got != "" {
			t.Fatalf("RequestID got %q want empty", got)
		}
		if got := pnet.InstallationID(ctx); got != "" {
			t.Fatalf("InstallationID got %q want empty", got)
		}
	})
}
