// Package version exposes the build identity of the unitai binary.
package version

import "fmt"

// Version is overridden at build time with -ldflags "-X ...version.Version=v1.2.3".
var Version = "dev"

// BuildTime is overridden at build time alongside Version.
var BuildTime = "unknown"

// String returns the human-readable version line printed by `unitai version`.
func String() string {
	return fmt.Sprintf("unitai version %s (built %s)", Version, BuildTime)
}
