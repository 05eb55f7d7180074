package domain

import (
	"slices"
	"strconv"
	"strings"
)

// FailurePolicy decides what happens when a command fails.
type FailurePolicy uint8

const (
	// FailureExit reports the failure and, in fail-fast mode, terminates the process.
	// Without fail-fast the failure is delayed and returned to the caller.
	FailureExit FailurePolicy = iota
	// FailureDelay reports the failure and returns it to the caller, never terminating.
	FailureDelay
	// FailureIgnore absorbs a non-successful exit. Launch failures are still errors.
	FailureIgnore
)

// String returns the policy name as used in configuration files.
func (p FailurePolicy) String() string {
	switch p {
	case FailureExit:
		return "exit"
	case FailureDelay:
		return "delay"
	case FailureIgnore:
		return "ignore"
	default:
		return "unknown"
	}
}

// ParseFailurePolicy parses a policy name. The empty string means FailureExit.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exit":
		return FailureExit, nil
	case "delay", "delay-fail", "delay_fail":
		return FailureDelay, nil
	case "ignore", "allow":
		return FailureIgnore, nil
	default:
		return FailureExit, ErrInvalidFailurePolicy
	}
}

// Command describes one external invocation. It is immutable: every builder
// method returns a modified copy and the receiver is left untouched.
type Command struct {
	program   InternedString
	args      []string
	dir       InternedString
	policy    FailurePolicy
	runAlways bool
}

// NewCommand creates a command for program with the given arguments.
func NewCommand(program string, args ...string) Command {
	return Command{
		program: NewInternedString(program),
		args:    slices.Clone(args),
	}
}

// WithArgs returns a copy with args appended.
func (c Command) WithArgs(args ...string) Command {
	next := c
	next.args = append(slices.Clone(c.args), args...)
	return next
}

// InDir returns a copy that runs in dir. An empty dir inherits the caller's directory.
func (c Command) InDir(dir string) Command {
	next := c
	next.dir = NewInternedString(dir)
	return next
}

// WithPolicy returns a copy with the given failure policy.
func (c Command) WithPolicy(p FailurePolicy) Command {
	next := c
	next.policy = p
	return next
}

// AllowFailure returns a copy whose non-successful exits are ignored.
func (c Command) AllowFailure() Command {
	return c.WithPolicy(FailureIgnore)
}

// DelayFailure returns a copy whose failures are reported but never fatal.
func (c Command) DelayFailure() Command {
	return c.WithPolicy(FailureDelay)
}

// AlwaysRun returns a copy that executes even in dry-run mode.
func (c Command) AlwaysRun() Command {
	next := c
	next.runAlways = true
	return next
}

// Program returns the executable name or path.
func (c Command) Program() string {
	return c.program.String()
}

// Args returns a copy of the argument list.
func (c Command) Args() []string {
	return slices.Clone(c.args)
}

// Dir returns the working directory, or "" to inherit.
func (c Command) Dir() string {
	return c.dir.String()
}

// Policy returns the failure policy.
func (c Command) Policy() FailurePolicy {
	return c.policy
}

// RunsAlways reports whether the command ignores dry-run mode.
func (c Command) RunsAlways() bool {
	return c.runAlways
}

// Key encodes every input that determines the command's outcome: program,
// arguments and working directory. Policy and run-always do not affect the result.
// Each part is length-prefixed so that no two distinct commands share a key.
func (c Command) Key() InternedString {
	var b strings.Builder
	writePart := func(s string) {
		b.WriteString(strconv.Itoa(len(s)))
		b.WriteByte(':')
		b.WriteString(s)
	}

	writePart(c.program.String())
	b.WriteString(strconv.Itoa(len(c.args)))
	b.WriteByte('|')
	for _, arg := range c.args {
		writePart(arg)
	}
	writePart(c.dir.String())

	return NewInternedString(b.String())
}

// String renders the command the way a user would type it.
func (c Command) String() string {
	parts := make([]string, 0, len(c.args)+1)
	parts = append(parts, quoteArg(c.program.String()))
	for _, arg := range c.args {
		parts = append(parts, quoteArg(arg))
	}

	s := strings.Join(parts, " ")
	if dir := c.dir.String(); dir != "" {
		s += " (in " + dir + ")"
	}
	return s
}

func quoteArg(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"'\\$`") {
		return strconv.Quote(s)
	}
	return s
}
