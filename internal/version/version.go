package version

import "fmt"

// Set at build time with -ldflags "-X ...version.Version=..."
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Template is the --version output for the named binary
func Template(name string) string {
	return fmt.Sprintf("%s %s\n", name, String())
}
