package hook

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/thoreinstein/dotbackup/internal/errors"
	"github.com/thoreinstein/dotbackup/internal/logging"
)

// ScriptPrefix is prepended to every hook.
const ScriptPrefix = "set -ex\n"

// EnvBackupDir names the variable holding the absolute backup directory.
const EnvBackupDir = "BACKUP_DIR"

// Runner runs hook scripts through an Executor.
type Runner struct {
	exec Executor
}

// NewRunner returns a Runner backed by exec.
func NewRunner(exec Executor) *Runner {
	return &Runner{exec: exec}
}

// Run executes a single hook with BACKUP_DIR set to the absolute backupDir.
func (r *Runner) Run(ctx context.Context, script, backupDir string) error {
	abs, err := filepath.Abs(backupDir)
	if err != nil {
		return errors.System(err, "failed to resolve backup directory")
	}

	env := []string{EnvBackupDir + "=" + abs}
	return r.exec.Execute(ctx, ScriptPrefix+script, env)
}

// RunAll executes hooks in order and stops at the first failure.
// label names the hook kind in progress messages, e.g. "pre_backup hook".
func (r *Runner) RunAll(ctx context.Context, hooks []string, backupDir, label string) error {
	logger := logging.FromContext(ctx)

	n := len(hooks)
	for i, script := range hooks {
		logger.Info(fmt.Sprintf("running %s (%d/%d)", label, i+1, n))
		logger.Log(ctx, logging.LevelTrace, "hook script", "script", script)

		if err := r.Run(ctx, script, backupDir); err != nil {
			return err
		}
	}

	return nil
}
