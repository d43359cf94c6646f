// Package version holds build metadata injected at link time via -ldflags.
package version

var (
	// Version is the semantic version, e.g. "1.2.0".
	Version = "dev"
	// Commit is the short git commit hash the binary was built from.
	Commit = "none"
	// BuildDate is the UTC build timestamp.
	BuildDate = "unknown"
)
