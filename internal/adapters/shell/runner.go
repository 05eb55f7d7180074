// Package shell provides the process runner adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// Runner implements ports.ProcessRunner using os/exec.
type Runner struct {
	stdout io.Writer
	stderr io.Writer
}

// NewRunner creates a Runner that prints to the process's own stdout and stderr.
func NewRunner() *Runner {
	return NewRunnerWithOutput(os.Stdout, os.Stderr)
}

// NewRunnerWithOutput creates a Runner that prints to the given writers.
func NewRunnerWithOutput(stdout, stderr io.Writer) *Runner {
	return &Runner{stdout: stdout, stderr: stderr}
}

// Run launches cmd and waits for it to exit.
func (r *Runner) Run(
	ctx context.Context,
	cmd domain.Command,
	stdoutMode, stderrMode domain.OutputMode,
) (domain.Outcome, error) {
	c := exec.CommandContext(ctx, cmd.Program(), cmd.Args()...) //nolint:gosec // user provided command
	c.Dir = cmd.Dir()

	var stdoutBuf, stderrBuf bytes.Buffer
	c.Stdout = sink(stdoutMode, r.stdout, &stdoutBuf)
	c.Stderr = sink(stderrMode, r.stderr, &stderrBuf)

	err := c.Run()

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return domain.NotStartedOutcome(), zerr.With(err, "program", cmd.Program())
	}

	outcome := domain.Outcome{Started: true, Status: domain.StatusSuccess}
	if stdoutMode == domain.OutputCapture {
		outcome.Stdout = domain.CapturedStream(stdoutBuf.Bytes())
	}
	if stderrMode == domain.OutputCapture {
		outcome.Stderr = domain.CapturedStream(stderrBuf.Bytes())
	}

	if exitErr != nil {
		outcome.ExitCode = exitErr.ExitCode()
		outcome.Status = domain.StatusFailed
		// Killed by a signal.
		if outcome.ExitCode == -1 {
			outcome.Status = domain.StatusSignaled
		}
	}
	return outcome, nil
}

// sink returns the writer for one output stream. A nil writer makes os/exec
// connect the stream to the null device.
func sink(mode domain.OutputMode, print io.Writer, capture *bytes.Buffer) io.Writer {
	switch mode {
	case domain.OutputCapture:
		return capture
	case domain.OutputPrint:
		return print
	default:
		return nil
	}
}
