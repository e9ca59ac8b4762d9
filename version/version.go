// Package version provides build version information embedding.
package version

import (
	"runtime/debug"
	"strings"
)

// These variables are set at build time using -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info represents version information.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	IsRelease bool   `json:"is_release"`
}

// Get returns the build's version information, falling back to
// debug.ReadBuildInfo for values not set via ldflags.
func Get() *Info {
	info := &Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		IsRelease: Version != "dev" && !strings.Contains(Version, "dirty"),
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = buildInfo.GoVersion
		if info.GitCommit == "" {
			for _, setting := range buildInfo.Settings {
				if setting.Key == "vcs.revision" {
					info.GitCommit = setting.Value
					if len(info.GitCommit) > 7 {
						info.GitCommit = info.GitCommit[:7]
					}
					break
				}
			}
		}
	}
	return info
}
