package direct

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"go.trai.ch/zerr"
)

// Logger is the minimal sink the scheduler reports subprocess output and
// lifecycle events to. Grounded on internal/adapters/logger and
// internal/core/ports.Logger.
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(err error)
}

// ExecError wraps a nonzero subprocess exit with its captured combined
// stdout+stderr, per spec.md §7 ("builder reports the captured
// stdout+stderr and the numeric code").
type ExecError struct {
	Command  *PendingCommand
	ExitCode int
	Output   string
	Err      error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("command failed (exit %d): %s\n%s", e.ExitCode, e.Command.Description, e.Output)
}

func (e *ExecError) Unwrap() error { return e.Err }

// runCommand ensures every declared output's parent directory exists, then
// spawns pc's command string through a shell, cd-prefixed to its working
// directory, with stderr merged into stdout. Grounded on
// internal/adapters/shell.Executor's subprocess shape (merged output,
// working directory, exit code capture), adapted from argv-based
// execution to whole shell-syntax command-line strings, since
// CommandEntry.Command is a single pre-quoted shell command the way the
// original source's toolchain command materialization produces it.
func runCommand(ctx context.Context, pc *PendingCommand) error {
	for _, out := range pc.Outputs {
		if dir := filepath.Dir(out); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return zerr.With(zerr.Wrap(err, ErrOutputDirCreateFailed.Error()), "dir", dir)
			}
		}
	}

	line := pc.Command
	if pc.WorkingDir != "" {
		line = fmt.Sprintf("cd %q && %s", pc.WorkingDir, pc.Command)
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", line)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return &ExecError{Command: pc, ExitCode: exitCode, Output: out.String(), Err: err}
	}

	return nil
}
