// Package version reports what build of the cattery is running
package version

import (
	"runtime"
	"runtime/debug"
)

// Stamped with -ldflags "-X cattery/internal/core/version.version=v0.3.0 -X ...commit=abcd -X ...date=2026-01-02"
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// BuildInfo describes the running binary
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
	Dirty   bool   `json:"dirty,omitempty"`
}

var readBuildInfo = debug.ReadBuildInfo

// Info returns the stamped values, falling back to the vcs settings go build embeds
func Info() BuildInfo {
	out := BuildInfo{Service: "cattery-api", Version: version, Commit: commit, Date: date, Go: runtime.Version()}
	if bi, ok := readBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if out.Commit == "" {
					out.Commit = s.Value
				}
			case "vcs.time":
				if out.Date == "" {
					out.Date = s.Value
				}
			case "vcs.modified":
				out.Dirty = s.Value == "true"
			}
		}
	}
	if out.Commit == "" {
		out.Commit = "none"
	}
	if out.Date == "" {
		out.Date = "unknown"
	}
	return out
}
