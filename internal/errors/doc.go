// Package errors provides error handling conventions for dotbackup and dotsetup.
//
// Every failure that reaches the process boundary carries a [Kind] that
// classifies it the same way the user-facing message does:
//
//   - [KindConfig]: malformed document, missing required field, path outside root
//   - [KindArgument]: bad CLI input, unknown selected application
//   - [KindSystem]: I/O failure, hook spawn/wait failure, missing home directory
//   - [KindApp]: reserved for application-level semantic errors
//
// An [*Error] prints as "{kind}: {message}":
//
//	err := errors.Configf("backup_dir not set")
//	fmt.Println(err) // configuration error: backup_dir not set
//
// The package re-exports the wrapping helpers of github.com/cockroachdb/errors
// so callers only import one errors package:
//
//	if err := os.MkdirAll(dir, 0o755); err != nil {
//	    return errors.System(err, "create directory error")
//	}
//
// # Exit Codes
//
// [ExitError] maps an error to the process exit status. Configuration and
// argument errors exit with [ExitUser]; system and application errors exit
// with [ExitSystem]. Use [ExitCodeOf] at the process boundary.
package errors
