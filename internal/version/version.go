// Package version holds build-time version information.
package version

// Build information. Populated at build-time via -ldflags.
//
//nolint:gochecknoglobals // These are set by the linker and read-only afterwards.
var (
	// Version is the semantic version of the build.
	Version = "0.1.0"
	// Commit is the git commit the binary was built from.
	Commit = "none"
	// BuildTime is the time the binary was built.
	BuildTime = "unknown"
)

// Short returns just the version string.
func Short() string {
	return Version
}

// Full returns the complete build information.
func Full() string {
	return "version: " + Version + ", commit: " + Commit + ", built at: " + BuildTime
}

// UserAgent returns the User-Agent string identifying this tool.
func UserAgent() string {
	return "reqpeek/" + Version
}
