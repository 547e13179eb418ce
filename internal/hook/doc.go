// Package hook runs the shell snippets attached to dotbackup lifecycle events.
//
// Every hook is fed to "sh -s" on standard input, prefixed with "set -ex" so
// each command is echoed and the first failing command stops the script. The
// absolute backup directory is exported as BACKUP_DIR:
//
//	runner := hook.NewRunner(hook.NewShellExecutor())
//	err := runner.RunAll(ctx, app.Hooks.PreBackup, backupDir, "pre_backup hook")
//
// Process execution sits behind the [Executor] interface so callers can be
// tested without spawning a shell (see the mocks subpackage).
package hook
