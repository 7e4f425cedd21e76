// Package time converts between time.Time and the unix millisecond values we persist
package time

import "time"

// FromMillis returns the UTC instant ms milliseconds after the epoch
func FromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

// Millis returns t as unix milliseconds, or nil when t is nil
func Millis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

// FromMillisPtr is the inverse of Millis
func FromMillisPtr(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := FromMillis(*ms)
	return &t
}
