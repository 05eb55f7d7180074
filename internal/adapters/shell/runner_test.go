package shell_test

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/shell"
	"go.trai.ch/kiln/internal/core/domain"
)

func sh(script string) domain.Command {
	return domain.NewCommand("sh", "-c", script)
}

func TestRunner_CapturesOutput(t *testing.T) {
	runner := shell.NewRunner()

	outcome, err := runner.Run(context.Background(), sh("echo hello; echo oops >&2"), domain.OutputCapture, domain.OutputCapture)
	require.NoError(t, err)

	assert.True(t, outcome.Started)
	assert.True(t, outcome.IsSuccess())
	out, ok := outcome.StdoutText()
	require.True(t, ok)
	assert.Equal(t, "hello\n", out)
	errOut, ok := outcome.StderrIfPresent()
	require.True(t, ok)
	assert.Equal(t, "oops\n", errOut)
}

func TestRunner_PrintsAndDiscards(t *testing.T) {
	var stdout, stderr bytes.Buffer
	runner := shell.NewRunnerWithOutput(&stdout, &stderr)

	outcome, err := runner.Run(context.Background(), sh("echo visible; echo hidden >&2"), domain.OutputPrint, domain.OutputDiscard)
	require.NoError(t, err)

	assert.Equal(t, "visible\n", stdout.String())
	assert.Empty(t, stderr.String())
	assert.Equal(t, domain.StreamNotCaptured, outcome.Stdout.State)
	assert.Equal(t, domain.StreamNotCaptured, outcome.Stderr.State)
}

func TestRunner_BinaryOutput(t *testing.T) {
	runner := shell.NewRunner()

	outcome, err := runner.Run(context.Background(), sh(`printf '\377\376'`), domain.OutputCapture, domain.OutputDiscard)
	require.NoError(t, err)

	assert.Equal(t, domain.StreamNotText, outcome.Stdout.State)
	assert.Equal(t, []byte{0xff, 0xfe}, outcome.Stdout.Bytes())
}

func TestRunner_ExitCode(t *testing.T) {
	runner := shell.NewRunner()

	outcome, err := runner.Run(context.Background(), sh("exit 3"), domain.OutputDiscard, domain.OutputDiscard)
	require.NoError(t, err)

	assert.True(t, outcome.Started)
	assert.Equal(t, domain.StatusFailed, outcome.Status)
	assert.Equal(t, 3, outcome.ExitCode)
}

func TestRunner_Signaled(t *testing.T) {
	runner := shell.NewRunner()

	outcome, err := runner.Run(context.Background(), sh("kill -9 $$"), domain.OutputDiscard, domain.OutputDiscard)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSignaled, outcome.Status)
	assert.True(t, outcome.IsFailure())
}

func TestRunner_WorkingDirectory(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	runner := shell.NewRunner()

	outcome, err := runner.Run(context.Background(), domain.NewCommand("pwd").InDir(dir), domain.OutputCapture, domain.OutputCapture)
	require.NoError(t, err)

	out, _ := outcome.StdoutText()
	assert.Equal(t, dir+"\n", out)
}

func TestRunner_MissingProgram(t *testing.T) {
	runner := shell.NewRunner()

	outcome, err := runner.Run(context.Background(), domain.NewCommand("kiln-no-such-program"), domain.OutputCapture, domain.OutputCapture)
	require.ErrorIs(t, err, exec.ErrNotFound)

	assert.False(t, outcome.Started)
	assert.Equal(t, domain.StatusNotStarted, outcome.Status)
}
