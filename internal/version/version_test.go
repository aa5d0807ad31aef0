package version

import (
	"runtime/debug"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyBuildInfo(t *testing.T) {
	info := &BuildInfo{Version: "dev", GitCommit: "unknown", Libraries: map[string]string{}}
	applyBuildInfo(info, &debug.BuildInfo{
		Main: debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.modified", Value: "true"},
		},
		Deps: []*debug.Module{
			{Path: "github.com/a-h/templ", Version: "v0.3.906"},
			{Path: "github.com/unrelated/mod", Version: "v1.0.0"},
		},
	})

	assert.Equal(t, "dev-0123456", info.Version)
	assert.Equal(t, "0123456789abcdef", info.GitCommit)
	assert.True(t, info.Dirty)
	assert.Equal(t, map[string]string{"templ": "v0.3.906"}, info.Libraries)
}

func TestApplyBuildInfoKeepsLdflags(t *testing.T) {
	info := &BuildInfo{Version: "v1.2.0", GitCommit: "fedcba9876543210", Libraries: map[string]string{}}
	applyBuildInfo(info, &debug.BuildInfo{
		Main:     debug.Module{Version: "v0.0.0-ignored"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0000000"}},
	})
	assert.Equal(t, "v1.2.0", info.Version)
	assert.Equal(t, "fedcba9876543210", info.GitCommit)
}

func TestShortAndDetailed(t *testing.T) {
	b := &BuildInfo{
		Version:   "v1.2.0",
		GitCommit: "fedcba9876543210",
		BuildTime: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		GoVersion: "go1.24.4",
		Platform:  "linux/amd64",
		Libraries: map[string]string{"templ": "v0.3.906", "bleve": "v2.5.6"},
		Release:   true,
	}
	assert.Equal(t, "v1.2.0 (fedcba9)", b.Short())
	assert.Equal(t, "Version: v1.2.0\nCommit: fedcba9876543210\nBuilt: 2026-03-01T12:00:00Z\n"+
		"Go: go1.24.4\nPlatform: linux/amd64\nbleve: v2.5.6\ntempl: v0.3.906", b.Detailed())

	dev := &BuildInfo{Version: "dev", GitCommit: "unknown"}
	assert.Equal(t, "dev", dev.Short())
}

func TestParseTime(t *testing.T) {
	assert.Equal(t, 2026, parseTime("2026-01-02T03:04:05Z").Year())
	assert.Equal(t, 2026, parseTime("2026-01-02 03:04:05").Year())
	assert.True(t, parseTime("unknown").IsZero())
	assert.True(t, parseTime("").IsZero())
}
