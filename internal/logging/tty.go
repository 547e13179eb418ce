package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// fder is implemented by *os.File and wrappers exposing a descriptor.
type fder interface {
	Fd() uintptr
}

func isTerminal(v any) bool {
	f, ok := v.(fder)
	return ok && term.IsTerminal(int(f.Fd()))
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	return isTerminal(w)
}

// IsInteractive reports whether r is a terminal. The app picker uses it to
// choose between the fuzzy finder and the numbered prompt.
func IsInteractive(r io.Reader) bool {
	return isTerminal(r)
}

// SupportsColor reports whether ANSI colors should be written to w: it must
// be a terminal, NO_COLOR must be unset and TERM must not be "dumb".
func SupportsColor(w io.Writer) bool {
	return supportsColor(IsTTY(w))
}

func supportsColor(isTTY bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}
