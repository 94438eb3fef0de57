package version

import (
	"runtime/debug"
	"strings"
	"testing"
	"time"
)

func TestVersionPopulated(t *testing.T) {
	if Version == "" {
		t.Error("Version should never be empty after init")
	}
	if Commit == "" {
		t.Error("Commit should never be empty after init")
	}
}

func TestResolve(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	vcs := &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.time", Value: "2026-02-01T10:00:00Z"},
		{Key: "vcs.modified", Value: "true"},
	}}

	tests := []struct {
		name        string
		version     string
		commit      string
		info        *debug.BuildInfo
		wantVersion string
		wantCommit  string
	}{
		{"ldflags win", "v1.2.3", "abc123", vcs, "v1.2.3", "abc123"},
		{"from vcs", "", "", vcs, "dev-20260201", "0123456-dirty"},
		{"no build info", "", "", nil, "dev-20260314", "unknown"},
		{"short revision", "", "", &debug.BuildInfo{Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc"}}}, "dev-20260314", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, c := resolve(tt.version, tt.commit, tt.info, now)
			if v != tt.wantVersion || c != tt.wantCommit {
				t.Errorf("resolve() = %q, %q, want %q, %q", v, c, tt.wantVersion, tt.wantCommit)
			}
		})
	}
}

func TestFullAndUserAgent(t *testing.T) {
	if !strings.Contains(Full(), Version) || !strings.Contains(Full(), Commit) {
		t.Errorf("Full() = %q, want version and commit", Full())
	}
	if ua := UserAgent(); ua != "vassctl/"+Version {
		t.Errorf("UserAgent() = %q", ua)
	}
}
