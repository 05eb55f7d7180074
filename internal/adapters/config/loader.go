// Package config provides the configuration loader for kiln.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using YAML files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds kiln.yaml in cwd or its parents and returns the settings it
// describes. Without a file the defaults apply and the root is cwd. When cwd
// names a regular file, that file is loaded directly.
func (l *Loader) Load(cwd string) (*domain.Settings, error) {
	configPath, found := cwd, true
	if info, err := os.Stat(cwd); err != nil || info.IsDir() {
		configPath, found = findConfiguration(cwd)
	}
	if !found {
		return &domain.Settings{Root: filepath.Clean(cwd)}, nil
	}

	var kilnfile Kilnfile
	if err := readAndUnmarshalYAML(configPath, &kilnfile, domain.ErrConfigReadFailed, domain.ErrConfigParseFailed); err != nil {
		return nil, err
	}

	if kilnfile.Build.Jobs < 0 {
		l.Logger.Warn(fmt.Sprintf("ignoring negative jobs value %d in %s", kilnfile.Build.Jobs, configPath))
		kilnfile.Build.Jobs = 0
	}

	return &domain.Settings{
		Flags: domain.Flags{
			DryRun:   kilnfile.Build.DryRun,
			Verbose:  kilnfile.Build.Verbose,
			FailFast: kilnfile.Build.FailFast,
		},
		Jobs: kilnfile.Build.Jobs,
		Git: domain.GitConfig{
			NightlyBranch:    kilnfile.Git.NightlyBranch,
			MergeCommitEmail: kilnfile.Git.MergeCommitEmail,
			Repository:       kilnfile.Git.Repository,
		},
		Root: filepath.Dir(configPath),
	}, nil
}

// LoadPlan reads the plan file at path. Relative paths in steps are resolved
// against the plan file's directory; freshness patterns are kept as written.
func (l *Loader) LoadPlan(path string) (*domain.Plan, error) {
	var planfile Planfile
	if err := readAndUnmarshalYAML(path, &planfile, domain.ErrPlanReadFailed, domain.ErrPlanParseFailed); err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	plan := &domain.Plan{Steps: make([]domain.Step, 0, len(planfile.Steps))}
	for i := range planfile.Steps {
		step, err := buildStep(base, i, &planfile.Steps[i])
		if err != nil {
			return nil, zerr.With(err, "plan", path)
		}
		plan.Steps = append(plan.Steps, step)
	}
	return plan, nil
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := filepath.Clean(cwd)
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

//nolint:cyclop // one branch per step kind
func buildStep(base string, index int, dto *StepDTO) (domain.Step, error) {
	step := domain.Step{Name: dto.Name}
	if step.Name == "" {
		step.Name = fmt.Sprintf("step %d", index+1)
	}

	invalid := func(reason string) error {
		return zerr.With(zerr.Wrap(domain.ErrInvalidStep, reason), "step", step.Name)
	}

	kinds := 0
	for _, set := range []bool{len(dto.Run) > 0, dto.Read != "", dto.Exists != "", dto.Fresh != nil, dto.DiffIndex != nil} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return domain.Step{}, invalid("expected exactly one of run, read, exists, fresh or diff_index")
	}

	switch {
	case len(dto.Run) > 0:
		policy, err := domain.ParseFailurePolicy(dto.OnFailure)
		if err != nil {
			return domain.Step{}, zerr.With(err, "step", step.Name)
		}
		if step.Stdout, err = domain.ParseOutputMode(dto.Stdout); err != nil {
			return domain.Step{}, zerr.With(err, "step", step.Name)
		}
		if step.Stderr, err = domain.ParseOutputMode(dto.Stderr); err != nil {
			return domain.Step{}, zerr.With(err, "step", step.Name)
		}

		cmd := domain.NewCommand(dto.Run[0], dto.Run[1:]...).WithPolicy(policy)
		if dto.Dir != "" {
			cmd = cmd.InDir(resolvePath(base, dto.Dir))
		}
		if dto.Always {
			cmd = cmd.AlwaysRun()
		}
		step.Kind = domain.StepRun
		step.Command = cmd
	case dto.Read != "":
		step.Kind = domain.StepRead
		step.Path = resolvePath(base, dto.Read)
	case dto.Exists != "":
		step.Kind = domain.StepExists
		step.Path = resolvePath(base, dto.Exists)
	case dto.Fresh != nil:
		if len(dto.Fresh.Paths) == 0 {
			return domain.Step{}, invalid("fresh needs at least one path")
		}
		step.Kind = domain.StepFresh
		step.Root = resolvePath(base, dto.Fresh.Root)
		step.Patterns = dto.Fresh.Paths
	case dto.DiffIndex != nil:
		if dto.DiffIndex.Base == "" {
			return domain.Step{}, invalid("diff_index needs a base")
		}
		step.Kind = domain.StepDiffIndex
		step.Base = dto.DiffIndex.Base
		step.Root = resolvePath(base, dto.DiffIndex.Dir)
		step.Patterns = dto.DiffIndex.Paths
	}

	return step, nil
}

func resolvePath(base, path string) string {
	if path == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(base, path))
}

func readAndUnmarshalYAML[T any](path string, target *T, readErr, parseErr error) error {
	// #nosec G304 -- path is chosen by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, readErr.Error()), "path", path)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.With(zerr.Wrap(err, parseErr.Error()), "path", path)
	}
	return nil
}
