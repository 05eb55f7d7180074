package execution

import (
	"context"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// GitProbe runs git with args in dir and returns its captured outcome.
// Non-zero exits are not failures and the probe runs even in dry-run mode.
func (c *Context) GitProbe(ctx context.Context, dir string, args ...string) (domain.Outcome, error) {
	cmd := domain.NewCommand("git", args...).InDir(dir).AllowFailure().AlwaysRun()
	return c.Run(ctx, cmd, domain.OutputCapture, domain.OutputCapture)
}

// GitDiffIndex reports whether paths in dir differ from base.
// It runs even in dry-run mode.
func (c *Context) GitDiffIndex(ctx context.Context, dir, base string, paths ...string) (bool, error) {
	cmd := domain.NewCommand("git", "diff-index", "--quiet", base, "--").
		WithArgs(paths...).
		InDir(dir).
		AllowFailure().
		AlwaysRun()

	outcome, err := c.Run(ctx, cmd, domain.OutputPrint, domain.OutputPrint)
	if err != nil {
		return false, err
	}
	return !outcome.IsSuccess(), nil
}

// GitOutput runs git with args in dir and returns its stdout as text.
// A failing git command is handled with the exit policy.
func (c *Context) GitOutput(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := domain.NewCommand("git", args...).InDir(dir).AlwaysRun()

	outcome, err := c.Run(ctx, cmd, domain.OutputCapture, domain.OutputCapture)
	if err != nil {
		return "", err
	}
	out, ok := outcome.StdoutText()
	if !ok {
		return "", zerr.With(zerr.Wrap(domain.ErrOutputNotText, "git output"), "command", cmd.String())
	}
	return out, nil
}
