// Package version reports the build of vassctl.
//
// Version and Commit can be stamped with ldflags:
//
//	go build -ldflags="-X github.com/muurk/vassapi/internal/version.Version=v1.2.3 \
//	                   -X github.com/muurk/vassapi/internal/version.Commit=abc123"
//
// Unstamped builds take the commit from the VCS build settings and get a
// dev-YYYYMMDD version.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

var (
	// Version is the release of the binary
	Version = ""
	// Commit is the short git revision
	Commit = ""
)

// shortRevision is the length of a displayed git hash
const shortRevision = 7

func init() {
	info, _ := debug.ReadBuildInfo()
	Version, Commit = resolve(Version, Commit, info, time.Now())
}

// resolve fills whatever ldflags left empty from the build settings
func resolve(version, commit string, info *debug.BuildInfo, now time.Time) (string, string) {
	settings := map[string]string{}
	if info != nil {
		for _, s := range info.Settings {
			settings[s.Key] = s.Value
		}
	}

	if commit == "" {
		if rev := settings["vcs.revision"]; rev != "" {
			if len(rev) > shortRevision {
				rev = rev[:shortRevision]
			}
			if settings["vcs.modified"] == "true" {
				rev += "-dirty"
			}
			commit = rev
		} else {
			commit = "unknown"
		}
	}

	if version == "" {
		built := now
		if t, err := time.Parse(time.RFC3339, settings["vcs.time"]); err == nil {
			built = t
		}
		version = "dev-" + built.Format("20060102")
	}

	return version, commit
}

// Full returns the version with commit and Go runtime
func Full() string {
	return fmt.Sprintf("%s (commit: %s, %s)", Version, Commit, runtime.Version())
}

// UserAgent is sent by vassctl on every request to the assistant
func UserAgent() string {
	return "vassctl/" + Version
}
