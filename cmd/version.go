// Package cmd holds the build metadata shared by dotbackup and dotsetup.
//
// Release builds set it with
//
//	-ldflags "-X github.com/thoreinstein/dotbackup/cmd.Version=v1.2.0 -X ..."
package cmd

var (
	// Version is printed by --version.
	Version = "dev"
	// Commit is the git commit of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)

// LogAttrs returns the build metadata as slog key/value pairs.
func LogAttrs() []any {
	return []any{"version", Version, "commit", Commit, "date", Date}
}
