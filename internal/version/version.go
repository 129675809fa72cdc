// Package version holds the build metadata reported by the startup log,
// injected via ldflags at release build.
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
