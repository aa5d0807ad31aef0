// Package version reports the manualkit build: version, commit, build time
// and the versions of the rendering libraries linked into the binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
	"time"
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit"`
	BuildTime time.Time `json:"build_time"`
	GoVersion string    `json:"go_version"`
	Platform  string    `json:"platform"`
	// Libraries maps the modules that shape rendered output to their versions.
	Libraries map[string]string `json:"libraries,omitempty"`
	Release   bool              `json:"is_release"`
	Dirty     bool              `json:"is_dirty"`
}

// These variables are set at build time using -ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	// BuildTime is RFC3339.
	BuildTime = "unknown"
)

// libraries are reported because a change in any of them can change the
// generated pages.
var libraries = map[string]string{
	"github.com/a-h/templ":                "templ",
	"github.com/yuin/goldmark":            "goldmark",
	"github.com/charmbracelet/glamour":    "glamour",
	"github.com/alecthomas/participle/v2": "participle",
	"github.com/blevesearch/bleve/v2":     "bleve",
}

// GetBuildInfo returns comprehensive build information
func GetBuildInfo() *BuildInfo {
	info := &BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: parseTime(BuildTime),
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Libraries: map[string]string{},
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		applyBuildInfo(info, bi)
	}
	info.Release = info.Version != "dev" && !strings.HasPrefix(info.Version, "dev-")
	return info
}

func applyBuildInfo(info *BuildInfo, bi *debug.BuildInfo) {
	if info.Version == "" || info.Version == "dev" {
		if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" || info.GitCommit == "unknown" {
				info.GitCommit = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	if info.Version == "dev" && len(info.GitCommit) >= 7 && info.GitCommit != "unknown" {
		info.Version = "dev-" + info.GitCommit[:7]
	}
	for _, dep := range bi.Deps {
		if name, ok := libraries[dep.Path]; ok {
			info.Libraries[name] = dep.Version
		}
	}
}

// Short returns a short version string suitable for display
func (b *BuildInfo) Short() string {
	if b.GitCommit != "unknown" && len(b.GitCommit) >= 7 && b.Release {
		return fmt.Sprintf("%s (%s)", b.Version, b.GitCommit[:7])
	}
	return b.Version
}

// Detailed returns a multi-line description of the build.
func (b *BuildInfo) Detailed() string {
	parts := []string{"Version: " + b.Version}
	if b.GitCommit != "unknown" {
		commit := b.GitCommit
		if b.Dirty {
			commit += " (dirty)"
		}
		parts = append(parts, "Commit: "+commit)
	}
	if !b.BuildTime.IsZero() {
		parts = append(parts, "Built: "+b.BuildTime.Format(time.RFC3339))
	}
	parts = append(parts, "Go: "+b.GoVersion, "Platform: "+b.Platform)

	names := make([]string, 0, len(b.Libraries))
	for name := range b.Libraries {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, b.Libraries[name]))
	}
	return strings.Join(parts, "\n")
}

// parseTime returns the zero time for anything that is not RFC3339 or one of
// the common ISO 8601 variants.
func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
