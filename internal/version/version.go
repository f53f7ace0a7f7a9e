// Package version provides build-time version information.
package version

import "fmt"

// These variables are set at build time via ldflags:
//
//	-X github.com/randalmurphal/detokenize/internal/version.Version=v1.2.0
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Template returns the cobra version template for the detok command.
func Template() string {
	return fmt.Sprintf("detok version {{.Version}} (commit: %s, built: %s)\n", Commit, Date)
}
