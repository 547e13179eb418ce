// Package logging provides structured logging for dotbackup and dotsetup using slog.
//
// Progress messages (hooks being run, files being copied, files skipped) are
// written at Info and Warn level; the detail -v exposes
// (directories created, destinations cleaned, entries ignored) is written at
// Debug level, and per-entry copy tracing at [LevelTrace].
//
// # Basic Usage
//
//	logger := logging.New(logging.Options{
//		Level:  logging.LevelFromVerbosity(1),
//		Format: logging.FormatText,
//		File:   logFile, // optional JSON copy of every record
//	})
//	ctx := logging.NewContext(context.Background(), logger)
//	logging.FromContext(ctx).Info("starting backup", "app", "nvim")
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
package logging
