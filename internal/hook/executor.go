package hook

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/thoreinstein/dotbackup/internal/errors"
)

// DefaultShell is the interpreter hooks are piped to.
const DefaultShell = "sh"

// Executor runs a shell script with extra environment entries.
type Executor interface {
	// Execute runs script to completion. env holds KEY=VALUE pairs added to
	// the inherited environment.
	Execute(ctx context.Context, script string, env []string) error
}

// ExitError reports a hook script that exited with a non-zero status.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("sh returned non-zero: %d", e.Code)
}

// ShellExecutor pipes scripts to a POSIX shell.
type ShellExecutor struct {
	// Shell is the interpreter, DefaultShell when empty.
	Shell string
	// Stdout and Stderr receive the script output, os.Stdout and os.Stderr when nil.
	Stdout io.Writer
	Stderr io.Writer
}

// NewShellExecutor returns an executor writing to the process stdout and stderr.
func NewShellExecutor() *ShellExecutor {
	return &ShellExecutor{
		Shell:  DefaultShell,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Execute spawns "<shell> -s", writes script to its stdin and waits for it.
// Failures are system errors; a non-zero exit wraps *ExitError.
func (e *ShellExecutor) Execute(ctx context.Context, script string, env []string) error {
	shell := e.Shell
	if shell == "" {
		shell = DefaultShell
	}

	cmd := exec.CommandContext(ctx, shell, "-s")
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdout = e.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = e.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return errors.System(err, "failed to open stdin of "+shell)
	}

	if err := cmd.Start(); err != nil {
		return errors.System(err, "failed to spawn "+shell)
	}

	_, writeErr := io.WriteString(stdin, script)
	closeErr := stdin.Close()

	if err := cmd.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.System(ctxErr, "hook interrupted")
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return errors.WithKind(errors.KindSystem, &ExitError{Code: exitErr.ExitCode()})
		}
		return errors.System(err, "failed to wait for "+shell)
	}

	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		return errors.System(writeErr, "failed to write stdin of "+shell)
	}

	return nil
}
