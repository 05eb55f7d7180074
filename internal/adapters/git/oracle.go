// Package git provides the git-backed freshness oracle.
package git

import (
	"context"
	"path/filepath"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FreshnessOracle = (*Oracle)(nil)

// Oracle implements ports.FreshnessOracle with the git CLI.
type Oracle struct {
	runner ports.ProcessRunner
}

// NewOracle creates an Oracle that runs git through runner.
func NewOracle(runner ports.ProcessRunner) *Oracle {
	return &Oracle{runner: runner}
}

// CheckPathModifications compares patterns in the repository at srcRoot
// against the closest upstream commit.
//
// The upstream commit is the most recent first-parent ancestor authored by
// cfg.MergeCommitEmail. Local runs start the search from the fork point with the
// nightly branch when one is configured. GitHub Actions runs start from HEAD^1,
// since HEAD is the merge commit under test.
func (o *Oracle) CheckPathModifications(
	ctx context.Context,
	srcRoot string,
	cfg domain.GitConfig,
	patterns []string,
	ci domain.CIEnv,
) (domain.Freshness, error) {
	if err := validatePatterns(patterns); err != nil {
		return domain.Freshness{}, err
	}

	upstream, err := o.closestUpstream(ctx, srcRoot, cfg, ci)
	if err != nil {
		return domain.Freshness{}, err
	}
	if upstream == "" {
		return domain.Freshness{State: domain.MissingUpstream}, nil
	}

	modified, err := o.diffIndex(ctx, srcRoot, upstream, patterns)
	if err != nil {
		return domain.Freshness{}, err
	}
	if modified {
		return domain.Freshness{State: domain.HasLocalModifications, Upstream: upstream}, nil
	}

	args := append([]string{"rev-list", "--first-parent", "-n1", upstream, "--"}, patterns...)
	last, err := o.output(ctx, srcRoot, args...)
	if err != nil {
		return domain.Freshness{}, err
	}
	if last == "" {
		last = upstream
	}
	return domain.Freshness{State: domain.LastModifiedUpstream, Upstream: last}, nil
}

func validatePatterns(patterns []string) error {
	if len(patterns) == 0 {
		return domain.ErrNoPathPatterns
	}
	for _, p := range patterns {
		// Git pathspec magic prefixes.
		trimmed := strings.TrimLeft(p, ":!")
		if trimmed == "" || filepath.IsAbs(trimmed) {
			return zerr.With(zerr.Wrap(domain.ErrAbsolutePathPattern, "invalid pattern"), "pattern", p)
		}
	}
	return nil
}

func (o *Oracle) closestUpstream(
	ctx context.Context,
	srcRoot string,
	cfg domain.GitConfig,
	ci domain.CIEnv,
) (string, error) {
	base := "HEAD"
	switch {
	case ci == domain.CIGitHubActions:
		base = "HEAD^1"
	case cfg.NightlyBranch != "":
		if forkPoint := o.nightlyForkPoint(ctx, srcRoot, cfg); forkPoint != "" {
			base = forkPoint
		}
	}

	args := []string{"rev-list"}
	if cfg.MergeCommitEmail != "" {
		args = append(args, "--author="+cfg.MergeCommitEmail)
	}
	args = append(args, "-n1", "--first-parent", base)
	return o.output(ctx, srcRoot, args...)
}

// nightlyForkPoint returns the merge base of HEAD and the nightly branch, or
// an empty string when the branch cannot be resolved.
func (o *Oracle) nightlyForkPoint(ctx context.Context, srcRoot string, cfg domain.GitConfig) string {
	ref := cfg.NightlyBranch
	if cfg.Repository != "" {
		if remote := o.upstreamRemote(ctx, srcRoot, cfg.Repository); remote != "" {
			ref = remote + "/" + cfg.NightlyBranch
		}
	}

	forkPoint, err := o.output(ctx, srcRoot, "merge-base", "HEAD", ref)
	if err != nil {
		return ""
	}
	return forkPoint
}

// upstreamRemote returns the name of the first remote whose URL mentions repository.
func (o *Oracle) upstreamRemote(ctx context.Context, srcRoot, repository string) string {
	remotes, err := o.output(ctx, srcRoot, "remote", "-v")
	if err != nil {
		return ""
	}
	for line := range strings.Lines(remotes) {
		fields := strings.Fields(line)
		if len(fields) >= 2 && strings.Contains(fields[1], repository) {
			return fields[0]
		}
	}
	return ""
}

func (o *Oracle) diffIndex(ctx context.Context, srcRoot, upstream string, patterns []string) (bool, error) {
	args := append([]string{"diff-index", "--quiet", upstream, "--"}, patterns...)
	cmd := domain.NewCommand("git", args...).InDir(srcRoot)

	outcome, err := o.runner.Run(ctx, cmd, domain.OutputDiscard, domain.OutputCapture)
	if err != nil {
		return false, queryError(cmd, err.Error())
	}
	switch {
	case outcome.IsSuccess():
		return false, nil
	case outcome.Status == domain.StatusFailed && outcome.ExitCode == 1:
		return true, nil
	default:
		stderr, _ := outcome.StderrIfPresent()
		return false, queryError(cmd, strings.TrimSpace(stderr))
	}
}

// output runs git and returns its trimmed stdout.
func (o *Oracle) output(ctx context.Context, srcRoot string, args ...string) (string, error) {
	cmd := domain.NewCommand("git", args...).InDir(srcRoot)

	outcome, err := o.runner.Run(ctx, cmd, domain.OutputCapture, domain.OutputCapture)
	if err != nil {
		return "", queryError(cmd, err.Error())
	}
	if outcome.IsFailure() {
		stderr, _ := outcome.StderrIfPresent()
		return "", queryError(cmd, strings.TrimSpace(stderr))
	}
	stdout, ok := outcome.StdoutText()
	if !ok {
		return "", zerr.With(zerr.Wrap(domain.ErrOutputNotText, "git output"), "command", cmd.String())
	}
	return strings.TrimSpace(stdout), nil
}

func queryError(cmd domain.Command, detail string) error {
	err := zerr.With(zerr.Wrap(domain.ErrGitQueryFailed, cmd.String()), "command", cmd.String())
	if detail != "" {
		err = zerr.With(err, "detail", detail)
	}
	return err
}
