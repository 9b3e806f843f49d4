package misc

import (
	"fmt"
	"runtime"
)

// These variables are changed in compile time.
var (
	// Build is an application build time.
	Build = "now"

	// Version is an application version.
	Version = "dev"

	// Debug is an application debug mode flag.
	Debug = "false"
)

// BuildInfo returns human-readable information about this build.
func BuildInfo(component string) string {
	return fmt.Sprintf("%s\nVersion: %s\nBuild: %s\nGoVersion: %s\nDebug: %s\n",
		component,
		Version,
		Build,
		runtime.Version(),
		Debug,
	)
}
