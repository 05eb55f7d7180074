package app

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// StepStatus summarizes how a plan step ended.
type StepStatus uint8

const (
	// StepPassed means the step completed successfully.
	StepPassed StepStatus = iota
	// StepFailed means the step failed or its check did not hold.
	StepFailed
	// StepIgnored means the command failed under the ignore policy.
	StepIgnored
	// StepDryRun means the command was simulated.
	StepDryRun
)

// StepResult is the reported result of one plan step.
type StepResult struct {
	Name   string
	Kind   domain.StepKind
	Status StepStatus
	Detail string
}

// RunPlan loads the plan at path, runs its steps concurrently over one
// execution context and prints a summary.
func (a *App) RunPlan(ctx context.Context, opts Options, path string) error {
	plan, err := a.configLoader.LoadPlan(path)
	if err != nil {
		return zerr.Wrap(err, "failed to load plan")
	}

	return a.withSession(ctx, opts, func(s *session) error {
		results := s.runPlan(ctx, plan)
		renderSummary(a.stdout, results)

		failed := 0
		for _, r := range results {
			if r.Status == StepFailed {
				failed++
			}
		}
		if failed > 0 && s.DelayedFailures() == 0 {
			return zerr.With(zerr.Wrap(domain.ErrStepsFailed, ""), "count", failed)
		}
		return nil
	})
}

func (s *session) runPlan(ctx context.Context, plan *domain.Plan) []StepResult {
	results := make([]StepResult, len(plan.Steps))

	var g errgroup.Group
	g.SetLimit(s.jobs())
	for i := range plan.Steps {
		g.Go(func() error {
			results[i] = s.runStep(ctx, &plan.Steps[i])
			return nil
		})
	}
	_ = g.Wait()

	return results
}

//nolint:cyclop // one branch per step kind
func (s *session) runStep(ctx context.Context, step *domain.Step) StepResult {
	result := StepResult{Name: step.Name, Kind: step.Kind, Status: StepPassed}

	switch step.Kind {
	case domain.StepRun:
		outcome, err := s.Run(ctx, step.Command, step.Stdout, step.Stderr)
		switch {
		case err != nil:
			result.Status = StepFailed
			result.Detail = describeOutcome(outcome)
		case s.IsDryRun() && !step.Command.RunsAlways():
			result.Status = StepDryRun
			result.Detail = "dry run"
		case outcome.IsFailure():
			result.Status = StepIgnored
			result.Detail = "ignored " + describeOutcome(outcome)
		default:
			result.Detail = outcome.Status.String()
		}
	case domain.StepRead:
		result.Detail = "xxh64 " + s.ContentHash(ctx, step.Path)
	case domain.StepExists:
		if s.PathExists(step.Path) {
			result.Detail = "exists"
		} else {
			result.Status = StepFailed
			result.Detail = "missing " + step.Path
		}
	case domain.StepFresh:
		result.Detail = formatFreshness(s.CheckPathModifications(ctx, step.Root, s.settings.Git, step.Patterns))
	case domain.StepDiffIndex:
		changed, err := s.GitDiffIndex(ctx, step.Root, step.Base, step.Patterns...)
		if err != nil {
			result.Status = StepFailed
			result.Detail = firstLine(err.Error())
		} else {
			result.Detail = formatChanged(changed)
		}
	default:
		result.Status = StepFailed
		result.Detail = "unknown step kind " + string(step.Kind)
	}

	return result
}

func describeOutcome(o domain.Outcome) string {
	switch o.Status {
	case domain.StatusFailed:
		return fmt.Sprintf("%s (exit %d)", o.Status, o.ExitCode)
	default:
		return o.Status.String()
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
