// Package version holds build information set by linker flags.
package version

import "runtime"

var (
	// Version is the release version (set by build flags)
	Version = "dev"
	// Commit is the git commit hash (set by build flags)
	Commit = "unknown"
	// BuildTime is the build timestamp (set by build flags)
	BuildTime = "unknown"
)

// String returns the version line printed by --version
func String() string {
	return Version + " (" + Commit + ") " + BuildTime + " " + runtime.GOOS + "/" + runtime.GOARCH
}
