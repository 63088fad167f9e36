package imagemeta

import (
	"fmt"
	"runtime"
)

// Version is the semantic version of the imagemeta library.
const Version = "0.1.0"

// VersionInfo describes the build of the library or a binary linking it.
type VersionInfo struct {
	Version   string
	GitCommit string // set via -ldflags
	BuildTime string // set via -ldflags
	GoVersion string
}

// String formats the info on one line, as printed by imagemeta-dump -version.
func (v VersionInfo) String() string {
	return fmt.Sprintf("imagemeta %s (commit %s, built %s, %s)",
		v.Version, v.GitCommit, v.BuildTime, v.GoVersion)
}

// GetVersionInfo returns detailed version information.
//
// GitCommit and BuildTime are "unknown" unless set at build time:
//
//	go build -ldflags="-X github.com/simonhull/imagemeta.gitCommit=$(git rev-parse HEAD) \
//	  -X github.com/simonhull/imagemeta.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/imagemeta-dump
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

// Variables populated at build time via -ldflags.
var (
	gitCommit = "unknown"
	buildTime = "unknown"
)
