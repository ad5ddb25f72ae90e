// Package version provides version information for the bgraph CLI.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// CUESDKVersion is the CUE SDK version graph documents are evaluated with
// when the binary carries no module build info.
const CUESDKVersion = "v0.15.4"

const cueModulePath = "cuelang.org/go"

// Info contains version information.
type Info struct {
	// Version is the CLI version (set via ldflags).
	Version string `json:"version"`

	// GitCommit is the git commit hash.
	GitCommit string `json:"gitCommit"`

	// BuildDate is the build timestamp.
	BuildDate string `json:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion"`

	// CUESDKVersion is the CUE SDK linked into the binary.
	CUESDKVersion string `json:"cueSDKVersion"`
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:       Version,
		GitCommit:     GitCommit,
		BuildDate:     BuildDate,
		GoVersion:     runtime.Version(),
		CUESDKVersion: cueSDKVersion(),
	}
}

func cueSDKVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return CUESDKVersion
	}
	for _, dep := range info.Deps {
		if dep.Path == cueModulePath && dep.Version != "" {
			return dep.Version
		}
	}
	return CUESDKVersion
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("bgraph version %s\n  Commit:    %s\n  Built:     %s\n  Go:        %s\n  CUE SDK:   %s",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.CUESDKVersion)
}
