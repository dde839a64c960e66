// Package version carries build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
	"time"
)

var (
	Version   = "dev"                           // -X .../version.Version=v0.1.0
	Commit    = "none"                          // -X .../version.Commit=abcd123
	BuildDate = time.Now().Format(time.RFC3339) // overridden in release builds
	GoVersion = runtime.Version()
)

// String is the one-line form shown by `clippings --version` and the daemon banner.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s)", Version, Commit, BuildDate, GoVersion)
}
