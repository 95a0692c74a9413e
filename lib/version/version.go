// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

// These variables are set via -ldflags at build time.
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// Build is the resolved build information.
type Build struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Dirty     bool   `json:"dirty"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

var (
	resolveOnce sync.Once
	resolved    Build
)

// Current returns the build information. Values not injected with
// -ldflags fall back to the VCS stamps the go command embeds in
// binaries built from a checkout.
func Current() Build {
	resolveOnce.Do(func() {
		resolved = Build{
			Version:   Version,
			Commit:    GitCommit,
			Dirty:     GitDirty == "true",
			BuildTime: BuildTime,
			GoVersion: runtime.Version(),
			Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		}
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if resolved.Commit == "unknown" && len(setting.Value) >= 7 {
					resolved.Commit = setting.Value[:7]
				}
			case "vcs.modified":
				if GitDirty == "false" && setting.Value == "true" {
					resolved.Dirty = true
				}
			case "vcs.time":
				if resolved.BuildTime == "unknown" {
					resolved.BuildTime = setting.Value
				}
			}
		}
	})
	return resolved
}

// Info returns a formatted version string suitable for --version output.
func Info() string {
	build := Current()
	dirty := ""
	if build.Dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", build.Version, build.Commit, dirty, build.BuildTime)
}

// Full returns detailed version information including Go version.
func Full() string {
	build := Current()
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s", Info(), build.GoVersion, build.Platform)
}

// Short returns just the version number.
func Short() string {
	return Version
}
