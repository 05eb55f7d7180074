// Package app implements the application layer for kiln.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"go.trai.ch/kiln/internal/adapters/detector"
	"go.trai.ch/kiln/internal/adapters/telemetry"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/execution"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	runner       ports.ProcessRunner
	files        ports.FileSystem
	oracle       ports.FreshnessOracle
	logger       ports.Logger
	stdout       io.Writer
	getenv       func(string) string
	contextOpts  []execution.Option
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	runner ports.ProcessRunner,
	files ports.FileSystem,
	oracle ports.FreshnessOracle,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		runner:       runner,
		files:        files,
		oracle:       oracle,
		logger:       log,
		stdout:       os.Stdout,
		getenv:       os.Getenv,
	}
}

// WithStdout sets the writer results are printed to.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithGetenv replaces the environment lookup used for CI detection.
func (a *App) WithGetenv(getenv func(string) string) *App {
	a.getenv = getenv
	return a
}

// WithContextOptions adds options applied to every execution context.
// This is primarily used for testing to intercept process exits.
func (a *App) WithContextOptions(opts ...execution.Option) *App {
	a.contextOpts = append(a.contextOpts, opts...)
	return a
}

// Options are the global switches of one invocation. Nil fields keep the
// value from the configuration file.
type Options struct {
	Config   string
	DryRun   *bool
	Verbose  *int
	FailFast *bool
	Jobs     *int
	JSONLog  bool
}

// session is one execution context together with the settings it was built
// from.
type session struct {
	*execution.Context
	settings *domain.Settings
	shutdown func(context.Context) error
}

type jsonSwitch interface {
	SetJSON(enable bool)
}

func (a *App) open(opts Options) (*session, error) {
	start := opts.Config
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to get working directory")
		}
		start = cwd
	}

	settings, err := a.configLoader.Load(start)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	applyOverrides(settings, opts)

	if opts.JSONLog {
		if sw, ok := a.logger.(jsonSwitch); ok {
			sw.SetJSON(true)
		}
	}

	ci := detector.DetectCI(a.getenv)
	tracer, shutdown := telemetry.NewTracer(a.logger, settings.Flags.Verbose)
	ctxOpts := append([]execution.Option{
		execution.WithCIEnv(ci),
		execution.WithTracer(tracer),
	}, a.contextOpts...)

	ec := execution.New(settings.Flags, a.runner, a.files, a.oracle, a.logger, ctxOpts...)
	ec.VerbosePrint(fmt.Sprintf("invocation %s (root %s, ci %s)", ec.InvocationID(), settings.Root, ci))

	return &session{Context: ec, settings: settings, shutdown: shutdown}, nil
}

func applyOverrides(settings *domain.Settings, opts Options) {
	if opts.DryRun != nil {
		settings.Flags.DryRun = *opts.DryRun
	}
	if opts.Verbose != nil {
		settings.Flags.Verbose = *opts.Verbose
	}
	if opts.FailFast != nil {
		settings.Flags.FailFast = *opts.FailFast
	}
	if opts.Jobs != nil {
		settings.Jobs = *opts.Jobs
	}
}

// jobs returns the plan concurrency limit.
func (s *session) jobs() int {
	if s.settings.Jobs > 0 {
		return s.settings.Jobs
	}
	return runtime.NumCPU()
}

// close flushes telemetry and reports delayed failures.
func (s *session) close(ctx context.Context) error {
	if err := s.shutdown(ctx); err != nil {
		s.Warn("failed to flush traces: " + err.Error())
	}
	if n := s.DelayedFailures(); n > 0 {
		return zerr.With(zerr.Wrap(domain.ErrDelayedFailures, ""), "count", n)
	}
	return nil
}

// withSession runs fn against a fresh execution context. An error from fn
// takes precedence over delayed failures.
func (a *App) withSession(ctx context.Context, opts Options, fn func(*session) error) error {
	s, err := a.open(opts)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		_ = s.shutdown(ctx)
		return err
	}
	return s.close(ctx)
}
