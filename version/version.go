// Package version holds build metadata injected with -ldflags
package version

import "runtime/debug"

// Set with -ldflags "-X github.com/philipparndt/femscene/version.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// GetVersion returns the version string
func GetVersion() string {
	return Version
}

// GetFullVersion returns the version with the short commit hash. Development
// builds fall back to the module version recorded by the go tool.
func GetFullVersion() string {
	if Version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
		return "dev"
	}
	if len(GitCommit) >= 7 && GitCommit != "unknown" {
		return Version + " (" + GitCommit[:7] + ")"
	}
	return Version
}
