package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/thoreinstein/dotbackup/internal/errors"
)

// Format is the output format of the terminal log stream.
type Format string

const (
	// FormatText is the colored one-line-per-record format of [Handler].
	FormatText Format = "text"
	// FormatJSON is slog's JSON format, one object per line.
	FormatJSON Format = "json"
)

// ParseFormat returns the Format named by s, ignoring case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", errors.Argumentf("invalid log format %q (valid: text, json)", s)
	}
}

// Options configures New.
type Options struct {
	// Level is the minimum level written to every output.
	Level slog.Level
	// Format applies to Output. File is always JSON.
	Format Format
	// Output receives the terminal stream. Defaults to os.Stderr.
	Output io.Writer
	// File, when set, also receives every record as JSON.
	File io.Writer
}

// New builds a logger from opts, fanning out to File through a
// [MultiHandler] when one is given.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	handler := NewFormatHandler(out, opts.Format, opts.Level)
	if opts.File != nil {
		handler = NewMultiHandler(handler, NewFormatHandler(opts.File, FormatJSON, opts.Level))
	}
	return slog.New(handler)
}

// NewFormatHandler returns the handler for format. Unknown formats get text.
func NewFormatHandler(out io.Writer, format Format, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevel,
	}

	if format == FormatJSON {
		return slog.NewJSONHandler(out, opts)
	}
	return NewHandler(out, opts)
}

// replaceLevel renders LevelTrace as "TRACE" instead of "DEBUG-4".
func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if l, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(levelName(l))
		}
	}
	return a
}

type testWriter struct {
	t *testing.T
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// ForTest returns a Trace-level text logger writing through t.Log, so output
// shows up only for failing tests or with -v.
func ForTest(t *testing.T) *slog.Logger {
	t.Helper()
	return New(Options{
		Level:  LevelTrace,
		Format: FormatText,
		Output: &testWriter{t: t},
	})
}
