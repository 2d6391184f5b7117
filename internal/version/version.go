// Package version carries build-time identification for the About dialog
// and CLI output.
package version

// Set via -ldflags at release build time; the defaults cover dev builds.
var (
	// Version is the semantic version.
	Version = "0.1.0"

	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"

	// GitCommit is the short commit hash.
	GitCommit = "unknown"
)
