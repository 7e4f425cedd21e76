// Package strings holds the few string helpers shared across packages
package strings

import std "strings"

// MustString returns s, panicking with "<name> is required" when s is blank
func MustString(s, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes a mount prefix to "/x/y" form
// a prefix that reduces to "/" panics
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), "/ ")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// Ptr maps "" to nil for optional string fields
func Ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref maps nil to ""
func Deref(ps *string) string {
	if ps == nil {
		return ""
	}
	return *ps
}
