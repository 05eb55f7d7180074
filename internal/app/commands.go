package app

import (
	"context"
	"fmt"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// ExecOptions configure a single command run.
type ExecOptions struct {
	Dir       string
	OnFailure string
	Always    bool
	Stdout    string
	Stderr    string
}

// Exec runs argv once and prints its captured standard output.
func (a *App) Exec(ctx context.Context, opts Options, argv []string, eo ExecOptions) error {
	if len(argv) == 0 {
		return domain.ErrNoCommand
	}

	policy, err := domain.ParseFailurePolicy(eo.OnFailure)
	if err != nil {
		return zerr.With(err, "value", eo.OnFailure)
	}
	stdout, err := domain.ParseOutputMode(eo.Stdout)
	if err != nil {
		return zerr.With(err, "value", eo.Stdout)
	}
	stderr, err := domain.ParseOutputMode(eo.Stderr)
	if err != nil {
		return zerr.With(err, "value", eo.Stderr)
	}

	cmd := domain.NewCommand(argv[0], argv[1:]...).WithPolicy(policy)
	if eo.Dir != "" {
		cmd = cmd.InDir(eo.Dir)
	}
	if eo.Always {
		cmd = cmd.AlwaysRun()
	}

	return a.withSession(ctx, opts, func(s *session) error {
		outcome, err := s.Run(ctx, cmd, stdout, stderr)
		if err != nil {
			return err
		}
		if text, ok := outcome.StdoutText(); ok {
			_, _ = fmt.Fprint(a.stdout, text)
		}
		return nil
	})
}

// Read prints the contents of path.
func (a *App) Read(ctx context.Context, opts Options, path string) error {
	return a.withSession(ctx, opts, func(s *session) error {
		_, _ = fmt.Fprint(a.stdout, s.ReadFile(ctx, path))
		return nil
	})
}

// Exists prints whether path exists.
func (a *App) Exists(ctx context.Context, opts Options, path string) error {
	return a.withSession(ctx, opts, func(s *session) error {
		_, _ = fmt.Fprintln(a.stdout, s.PathExists(path))
		return nil
	})
}

// Hash prints the content hash of each path.
func (a *App) Hash(ctx context.Context, opts Options, paths []string) error {
	return a.withSession(ctx, opts, func(s *session) error {
		for _, path := range paths {
			_, _ = fmt.Fprintf(a.stdout, "%s  %s\n", s.ContentHash(ctx, path), path)
		}
		return nil
	})
}

// Fresh prints the freshness verdict for patterns under root.
func (a *App) Fresh(ctx context.Context, opts Options, root string, patterns []string) error {
	return a.withSession(ctx, opts, func(s *session) error {
		if root == "" {
			root = s.settings.Root
		}
		verdict := s.CheckPathModifications(ctx, root, s.settings.Git, patterns)
		_, _ = fmt.Fprintln(a.stdout, formatFreshness(verdict))
		return nil
	})
}

// DiffIndex prints whether paths in dir differ from base.
func (a *App) DiffIndex(ctx context.Context, opts Options, dir, base string, paths []string) error {
	return a.withSession(ctx, opts, func(s *session) error {
		changed, err := s.GitDiffIndex(ctx, dir, base, paths...)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(a.stdout, formatChanged(changed))
		return nil
	})
}

// Git runs git with args in dir and prints its output.
func (a *App) Git(ctx context.Context, opts Options, dir string, args []string) error {
	return a.withSession(ctx, opts, func(s *session) error {
		out, err := s.GitOutput(ctx, dir, args...)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(a.stdout, out)
		return nil
	})
}

func formatFreshness(f domain.Freshness) string {
	if f.Upstream == "" {
		return f.State.String()
	}
	return f.State.String() + " " + f.Upstream
}

func formatChanged(changed bool) string {
	if changed {
		return "changed"
	}
	return "unchanged"
}
