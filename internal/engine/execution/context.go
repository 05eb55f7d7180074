// Package execution implements the build execution context.
//
// A Context carries the global flags of one build invocation and memoizes
// every command run, file read, existence check and freshness query for its
// lifetime. Results are never invalidated.
package execution

import (
	"context"
	"os"
	"sync/atomic"

	"github.com/google/uuid"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

type freshnessKey struct {
	root     string
	patterns domain.InternedString
}

// Context is the execution context of one build invocation.
// It is safe for concurrent use.
type Context struct {
	flags domain.Flags
	id    string
	ci    domain.CIEnv

	runner ports.ProcessRunner
	files  ports.FileSystem
	oracle ports.FreshnessOracle
	logger ports.Logger
	tracer ports.Tracer
	exit   func(code int)

	commands  *table[domain.InternedString, domain.Outcome]
	contents  *table[string, string]
	exists    *table[string, bool]
	freshness *table[freshnessKey, domain.Freshness]

	delayed atomic.Int64
}

// Option configures a Context.
type Option func(*Context)

// WithExitFunc replaces the function used to terminate the process on fatal
// errors. The default is os.Exit.
func WithExitFunc(exit func(code int)) Option {
	return func(c *Context) {
		c.exit = exit
	}
}

// WithTracer sets the tracer used for spans around external work.
func WithTracer(tracer ports.Tracer) Option {
	return func(c *Context) {
		c.tracer = tracer
	}
}

// WithCIEnv sets the detected CI environment passed to the freshness oracle.
func WithCIEnv(ci domain.CIEnv) Option {
	return func(c *Context) {
		c.ci = ci
	}
}

// WithInvocationID overrides the generated invocation id.
func WithInvocationID(id string) Option {
	return func(c *Context) {
		c.id = id
	}
}

// New creates a Context with empty caches.
func New(
	flags domain.Flags,
	runner ports.ProcessRunner,
	files ports.FileSystem,
	oracle ports.FreshnessOracle,
	logger ports.Logger,
	opts ...Option,
) *Context {
	c := &Context{
		flags:     flags,
		runner:    runner,
		files:     files,
		oracle:    oracle,
		logger:    logger,
		tracer:    noopTracer{},
		exit:      os.Exit,
		commands:  newTable[domain.InternedString, domain.Outcome](),
		contents:  newTable[string, string](),
		exists:    newTable[string, bool](),
		freshness: newTable[freshnessKey, domain.Freshness](),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.id == "" {
		c.id = uuid.NewString()
	}
	return c
}

// Flags returns the flags the context was created with.
func (c *Context) Flags() domain.Flags { return c.flags }

// IsDryRun reports whether commands that are not marked run-always are skipped.
func (c *Context) IsDryRun() bool { return c.flags.DryRun }

// IsVerbose reports whether the verbosity level is above zero.
func (c *Context) IsVerbose() bool { return c.flags.Verbose > 0 }

// IsFailFast reports whether exit-policy failures terminate the process.
func (c *Context) IsFailFast() bool { return c.flags.FailFast }

// VerboseLevel returns the verbosity level.
func (c *Context) VerboseLevel() int { return c.flags.Verbose }

// InvocationID identifies this build invocation in logs and spans.
func (c *Context) InvocationID() string { return c.id }

// DelayedFailures returns the number of failures recorded instead of exiting.
func (c *Context) DelayedFailures() int { return int(c.delayed.Load()) }

// Verbose calls fn only when verbose output is enabled.
func (c *Context) Verbose(fn func()) {
	if c.IsVerbose() {
		fn()
	}
}

// VerbosePrint prints msg when verbose output is enabled.
func (c *Context) VerbosePrint(msg string) {
	if c.IsVerbose() {
		c.logger.Info(msg)
	}
}

// Warn prints a warning.
func (c *Context) Warn(msg string) {
	c.logger.Warn(msg)
}

// Fatal prints a fatal error and terminates the process with status 1.
func (c *Context) Fatal(msg string) {
	c.logger.Fatal(msg)
	c.exit(1)
}

// startSpan starts a span tagged with the invocation id.
func (c *Context) startSpan(ctx context.Context, name string) (context.Context, ports.Span) {
	ctx, span := c.tracer.Start(ctx, name)
	span.SetAttribute("kiln.invocation", c.id)
	return ctx, span
}

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End() {}
func (noopSpan) RecordError(error) {}
func (noopSpan) SetAttribute(string, any) {}
