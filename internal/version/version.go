// Package version exposes build-time version information.
package version

import (
	"fmt"
	"runtime"
)

// These variables are set at build time using -ldflags.
var (
	// Version is the semantic version of the application.
	Version = "dev"

	// GitCommit is the git commit hash when the binary was built.
	GitCommit = "unknown"
)

// String returns the human-readable version line.
func String() string {
	return fmt.Sprintf("stencil %s (%s) %s %s/%s",
		Version, GitCommit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
