// Package version holds build metadata stamped in by `mage build`.
package version

import "fmt"

// Populated by the linker; see magetasks.ldflags.
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// String formats the build metadata for --version.
func String(program string) string {
	return fmt.Sprintf("%s %s (%s, %s)", program, Version, CommitHash, BuildDate)
}
