package version

import "fmt"

// These variables are overridden at build time using -ldflags.
// Keep sensible defaults for local development.
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)

// String renders the build identity for logs and the version endpoint.
func String() string {
	s := fmt.Sprintf("%s (%s", Version, Commit)
	if Dirty == "true" {
		s += "-dirty"
	}
	if Date != "" {
		s += ", " + Date
	}
	return s + ")"
}
