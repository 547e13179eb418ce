package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Kind classifies an error for the user-facing message and the exit code.
type Kind int

const (
	// KindUnknown is the zero Kind, used for errors that were never classified.
	KindUnknown Kind = iota
	// KindConfig covers malformed documents, missing fields and paths outside the root.
	KindConfig
	// KindArgument covers bad CLI input and unknown selected applications.
	KindArgument
	// KindSystem covers I/O, process and platform failures.
	KindSystem
	// KindApp is reserved for application-level semantic errors.
	KindApp
)

// String returns the display name used as the message prefix.
func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "configuration error"
	case KindArgument:
		return "CLI argument error"
	case KindSystem:
		return "system error"
	case KindApp:
		return "application error"
	default:
		return "unknown error"
	}
}

// Error is a classified error. It prints as "{kind}: {message}".
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first classified error in err's chain,
// or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if crdb.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err is classified as k.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

func newKind(k Kind, err error) error {
	return &Error{Kind: k, Err: err}
}

// WithKind classifies err as k without changing its message.
// It returns nil if err is nil.
func WithKind(k Kind, err error) error {
	if err == nil {
		return nil
	}
	return newKind(k, err)
}

// Configf returns a configuration error with a formatted message.
func Configf(format string, args ...any) error {
	return newKind(KindConfig, crdb.Newf(format, args...))
}

// Argumentf returns a CLI argument error with a formatted message.
func Argumentf(format string, args ...any) error {
	return newKind(KindArgument, crdb.Newf(format, args...))
}

// Systemf returns a system error with a formatted message.
func Systemf(format string, args ...any) error {
	return newKind(KindSystem, crdb.Newf(format, args...))
}

// Appf returns an application error with a formatted message.
func Appf(format string, args ...any) error {
	return newKind(KindApp, crdb.Newf(format, args...))
}

// Config classifies err as a configuration error, prefixed with msg.
// It returns nil if err is nil.
func Config(err error, msg string) error {
	if err == nil {
		return nil
	}
	return newKind(KindConfig, crdb.Wrap(err, msg))
}

// Argument classifies err as a CLI argument error, prefixed with msg.
// It returns nil if err is nil.
func Argument(err error, msg string) error {
	if err == nil {
		return nil
	}
	return newKind(KindArgument, crdb.Wrap(err, msg))
}

// System classifies err as a system error, prefixed with msg.
// It returns nil if err is nil.
func System(err error, msg string) error {
	if err == nil {
		return nil
	}
	return newKind(KindSystem, crdb.Wrap(err, msg))
}
