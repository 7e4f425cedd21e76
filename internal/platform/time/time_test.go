package time

import (
	"testing"
	"time"
)

func TestMillisRoundTrip(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 30, 0, 0, time.FixedZone("x", 3600))
	ms := Millis(&at)
	if ms == nil || *ms != at.UnixMilli() {
		t.Fatalf("Millis = %v", ms)
	}
	back := FromMillisPtr(ms)
	if back == nil || !back.Equal(at) || back.Location() != time.UTC {
		t.Fatalf("FromMillisPtr = %v", back)
	}
}

func TestNilPassesThrough(t *testing.T) {
	if Millis(nil) != nil || FromMillisPtr(nil) != nil {
		t.Fatal("nil should stay nil")
	}
}

func TestFromMillisTruncatesToMillis(t *testing.T) {
	if got := FromMillis(1500); got.Nanosecond() != 500*int(time.Millisecond) || got.Unix() != 1 {
		t.Fatalf("FromMillis(1500) = %v", got)
	}
}
