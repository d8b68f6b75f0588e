// Package version carries the build version string, overridden at build
// time via -ldflags "-X .../internal/version.Version=...".
package version

// Version is the application version reported by /api/system/version.
var Version = "dev"
