package execution

import (
	"context"
	"fmt"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// invocation is the single-use ticket for one cache-miss execution.
type invocation struct {
	cmd      domain.Command
	executed bool
}

func newInvocation(cmd domain.Command) *invocation {
	return &invocation{cmd: cmd}
}

// markExecuted panics when a ticket is used twice.
func (inv *invocation) markExecuted() {
	if inv.executed {
		panic("kiln: command executed twice: " + inv.cmd.String())
	}
	inv.executed = true
}

// Run executes cmd at most once per context and returns its outcome.
//
// Repeated calls with an equal command return the first result without
// running anything, regardless of the output modes requested later. In dry-run
// mode a command not marked run-always is reported as a successful dry-run
// outcome. Failures are handled according to the command's policy the first
// time only.
func (c *Context) Run(
	ctx context.Context,
	cmd domain.Command,
	stdout, stderr domain.OutputMode,
) (domain.Outcome, error) {
	if cmd.Program() == "" {
		return domain.NotStartedOutcome(), domain.ErrNoCommand
	}

	outcome, hit, err := c.commands.Do(cmd.Key(), func() (domain.Outcome, error) {
		return c.execute(ctx, newInvocation(cmd), stdout, stderr)
	})
	if hit {
		c.VerbosePrint("(cached) " + cmd.String())
	}
	return outcome, err
}

func (c *Context) execute(
	ctx context.Context,
	inv *invocation,
	stdoutMode, stderrMode domain.OutputMode,
) (domain.Outcome, error) {
	cmd := inv.cmd

	if c.flags.DryRun && !cmd.RunsAlways() {
		c.VerbosePrint("(dry run) " + cmd.String())
		inv.markExecuted()
		return domain.DryRunOutcome(), nil
	}

	ctx, span := c.startSpan(ctx, "run "+cmd.Program())
	defer span.End()
	span.SetAttribute("kiln.command", cmd.String())

	c.VerbosePrint("running: " + cmd.String())

	outcome, err := c.runner.Run(ctx, cmd, stdoutMode, stderrMode)
	inv.markExecuted()
	if err != nil {
		msg := fmt.Sprintf("failed to execute %s: %v", cmd, err)
		span.RecordError(err)
		outcome = domain.NotStartedOutcome()
		c.handleFailure(cmd, outcome, msg)
		return outcome, zerr.With(zerr.Wrap(domain.ErrCommandStart, msg), "command", cmd.String())
	}

	span.SetAttribute("kiln.exit_code", outcome.ExitCode)
	c.VerbosePrint(fmt.Sprintf("finished running: %s (%s)", cmd, outcome.Status))

	if !outcome.IsFailure() || cmd.Policy() == domain.FailureIgnore {
		return outcome, nil
	}

	msg := "command failed: " + cmd.String()
	failure := zerr.With(zerr.Wrap(domain.ErrCommandFailed, msg), "exit_code", outcome.ExitCode)
	if stderr, ok := outcome.StderrIfPresent(); ok {
		failure = zerr.With(failure, "stderr", stderr)
	}
	span.RecordError(failure)
	c.handleFailure(cmd, outcome, msg)
	return outcome, failure
}

// handleFailure reports a failed command and applies its policy.
func (c *Context) handleFailure(cmd domain.Command, outcome domain.Outcome, msg string) {
	if stderr, ok := outcome.StderrIfPresent(); ok {
		msg += "\nStderr:\n" + stderr
	}
	c.logger.Error(zerr.New(msg))

	switch cmd.Policy() {
	case domain.FailureExit:
		if c.flags.FailFast {
			c.Fatal("Exiting due to command failure: " + cmd.String())
			return
		}
		c.delayed.Add(1)
		c.logger.Info("(Failure Delayed)")
	case domain.FailureDelay:
		c.delayed.Add(1)
		c.logger.Info("(Failure delayed)")
	case domain.FailureIgnore:
	}
}
