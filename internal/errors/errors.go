package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, hooks, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = crdb.New("resource not found")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = crdb.New("invalid configuration")
)

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeOf returns the process exit status for err.
// An explicit ExitError wins; otherwise the code follows the error's Kind.
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if crdb.As(err, &exitErr) {
		return exitErr.Code
	}

	switch KindOf(err) {
	case KindConfig, KindArgument:
		return ExitUser
	default:
		return ExitSystem
	}
}

// Thin wrappers so callers need a single errors import.

// New returns an error with the given message and a stack trace.
func New(msg string) error { return crdb.New(msg) }

// Newf returns a formatted error with a stack trace.
func Newf(format string, args ...any) error { return crdb.Newf(format, args...) }

// Errorf is an alias for Newf that supports %w.
func Errorf(format string, args ...any) error { return crdb.Errorf(format, args...) }

// Wrap annotates err with msg. It returns nil if err is nil.
func Wrap(err error, msg string) error { return crdb.Wrap(err, msg) }

// Wrapf annotates err with a formatted message. It returns nil if err is nil.
func Wrapf(err error, format string, args ...any) error { return crdb.Wrapf(err, format, args...) }

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return crdb.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return crdb.As(err, target) }

// Mark makes err match reference under Is without changing its message.
func Mark(err, reference error) error { return crdb.Mark(err, reference) }
