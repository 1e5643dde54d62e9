package version

import "runtime/debug"

// Version information, overridden at build time with -ldflags "-X ...".
var (
	// Version is the current version of originlog
	Version = "0.3.0-dev"
	// BuildDate is the date when the binary was built
	BuildDate = "undefined"
	// CommitHash is the git commit hash when the binary was built
	CommitHash = "undefined"
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// VersionInfo returns formatted version information. When the binary was
// built without -ldflags, build date and commit come from the VCS stamp
// embedded by the go tool, if any.
func VersionInfo() string {
	date, commit := BuildDate, CommitHash
	if info, ok := readBuildInfo(); ok {
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && commit == "undefined":
				commit = s.Value
			case s.Key == "vcs.time" && date == "undefined":
				date = s.Value
			}
		}
	}
	return "originlog version " + Version + " (build: " + date + ", commit: " + commit + ")"
}
