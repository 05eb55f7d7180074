package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/config"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	return config.NewLoader(log), log
}

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader, _ := newLoader(t)
	dir := t.TempDir()

	settings, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, &domain.Settings{Root: dir}, settings)
}

func TestLoader_Load_WalksUp(t *testing.T) {
	loader, _ := newLoader(t)
	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, `
build:
  dry_run: true
  verbose: 2
  fail_fast: true
  jobs: 4
git:
  nightly_branch: nightly
  merge_commit_email: bors@example.com
  repository: example/kiln
`)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	settings, err := loader.Load(nested)
	require.NoError(t, err)
	assert.Equal(t, domain.Flags{DryRun: true, Verbose: 2, FailFast: true}, settings.Flags)
	assert.Equal(t, 4, settings.Jobs)
	assert.Equal(t, domain.GitConfig{
		NightlyBranch:    "nightly",
		MergeCommitEmail: "bors@example.com",
		Repository:       "example/kiln",
	}, settings.Git)
	assert.Equal(t, root, settings.Root)
}

func TestLoader_Load_NegativeJobs(t *testing.T) {
	loader, log := newLoader(t)
	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, "build:\n  jobs: -3\n")
	log.EXPECT().Warn(gomock.Any()).Times(1)

	settings, err := loader.Load(root)
	require.NoError(t, err)
	assert.Zero(t, settings.Jobs)
}

func TestLoader_Load_ParseError(t *testing.T) {
	loader, _ := newLoader(t)
	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, "build: [unclosed\n")

	_, err := loader.Load(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrConfigParseFailed.Error())
}

func TestLoader_LoadPlan(t *testing.T) {
	loader, _ := newLoader(t)
	dir := t.TempDir()
	path := createFile(t, dir, "plan.yaml", `
steps:
  - name: build
    run: ["go", "build", "./..."]
    dir: src
    on_failure: delay
    always: true
    stdout: capture
    stderr: discard
  - read: VERSION
  - exists: /etc/hosts
  - fresh:
      root: repo
      paths: ["src", ":!src/vendor"]
  - diff_index:
      base: HEAD
      paths: ["docs"]
`)

	plan, err := loader.LoadPlan(path)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 5)

	build := plan.Steps[0]
	assert.Equal(t, "build", build.Name)
	assert.Equal(t, domain.StepRun, build.Kind)
	assert.Equal(t, "go", build.Command.Program())
	assert.Equal(t, []string{"build", "./..."}, build.Command.Args())
	assert.Equal(t, filepath.Join(dir, "src"), build.Command.Dir())
	assert.Equal(t, domain.FailureDelay, build.Command.Policy())
	assert.True(t, build.Command.RunsAlways())
	assert.Equal(t, domain.OutputCapture, build.Stdout)
	assert.Equal(t, domain.OutputDiscard, build.Stderr)

	read := plan.Steps[1]
	assert.Equal(t, "step 2", read.Name)
	assert.Equal(t, domain.StepRead, read.Kind)
	assert.Equal(t, filepath.Join(dir, "VERSION"), read.Path)

	assert.Equal(t, "/etc/hosts", plan.Steps[2].Path)

	fresh := plan.Steps[3]
	assert.Equal(t, domain.StepFresh, fresh.Kind)
	assert.Equal(t, filepath.Join(dir, "repo"), fresh.Root)
	assert.Equal(t, []string{"src", ":!src/vendor"}, fresh.Patterns)

	diff := plan.Steps[4]
	assert.Equal(t, domain.StepDiffIndex, diff.Kind)
	assert.Equal(t, "HEAD", diff.Base)
	assert.Equal(t, dir, diff.Root)
	assert.Equal(t, []string{"docs"}, diff.Patterns)
}

func TestLoader_LoadPlan_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "no action",
			content: "steps:\n  - name: empty\n",
			wantErr: domain.ErrInvalidStep,
		},
		{
			name:    "two actions",
			content: "steps:\n  - run: [\"true\"]\n    read: VERSION\n",
			wantErr: domain.ErrInvalidStep,
		},
		{
			name:    "fresh without paths",
			content: "steps:\n  - fresh:\n      root: .\n",
			wantErr: domain.ErrInvalidStep,
		},
		{
			name:    "diff index without base",
			content: "steps:\n  - diff_index:\n      paths: [a]\n",
			wantErr: domain.ErrInvalidStep,
		},
		{
			name:    "unknown policy",
			content: "steps:\n  - run: [\"true\"]\n    on_failure: sometimes\n",
			wantErr: domain.ErrInvalidFailurePolicy,
		},
		{
			name:    "unknown output mode",
			content: "steps:\n  - run: [\"true\"]\n    stdout: tee\n",
			wantErr: domain.ErrInvalidOutputMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := newLoader(t)
			path := createFile(t, t.TempDir(), "plan.yaml", tt.content)

			_, err := loader.LoadPlan(path)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoader_LoadPlan_Missing(t *testing.T) {
	loader, _ := newLoader(t)

	_, err := loader.LoadPlan(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), domain.ErrPlanReadFailed.Error())
}

func TestLoader_Load_ExplicitFile(t *testing.T) {
	loader, _ := newLoader(t)
	dir := t.TempDir()
	path := createFile(t, dir, "ci.yaml", "build:\n  fail_fast: true\n")

	settings, err := loader.Load(path)
	require.NoError(t, err)
	assert.True(t, settings.Flags.FailFast)
	assert.Equal(t, dir, settings.Root)
}
