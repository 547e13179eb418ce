package logging

import "log/slog"

// LevelTrace is below Debug and reports every entry visited during a tree copy.
const LevelTrace = slog.Level(-8)

// LevelFromVerbosity maps the count of -v flags to a minimum log level.
//
//	0  -> Info
//	1  -> Debug
//	2+ -> Trace
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelInfo
	case v == 1:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// levelName returns the label printed for a level.
func levelName(l slog.Level) string {
	if l <= LevelTrace {
		return "TRACE"
	}
	return l.String()
}
