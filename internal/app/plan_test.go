package app_test

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/core/domain"
	"go.uber.org/mock/gomock"
)

func runStep(name string, cmd domain.Command) domain.Step {
	return domain.Step{
		Name:    name,
		Kind:    domain.StepRun,
		Command: cmd,
		Stdout:  domain.OutputCapture,
		Stderr:  domain.OutputCapture,
	}
}

func TestApp_RunPlan_Summary(t *testing.T) {
	f := newFixture(t)
	f.settings(domain.Settings{Jobs: 2})

	build := domain.NewCommand("go", "build", "./...")
	lint := domain.NewCommand("golangci-lint", "run").AllowFailure()
	f.loader.EXPECT().LoadPlan("plan.yaml").Return(&domain.Plan{Steps: []domain.Step{
		runStep("build", build),
		runStep("build again", build),
		runStep("lint", lint),
		{Name: "readme", Kind: domain.StepExists, Path: "/work/README.md"},
		{Name: "changelog", Kind: domain.StepExists, Path: "/work/CHANGELOG.md"},
		{Name: "sources", Kind: domain.StepFresh, Root: "/work", Patterns: []string{"src"}},
	}}, nil)

	f.runner.EXPECT().
		Run(gomock.Any(), build, domain.OutputCapture, domain.OutputCapture).
		Return(domain.Outcome{Started: true}, nil).
		Times(1)
	f.runner.EXPECT().
		Run(gomock.Any(), lint, domain.OutputCapture, domain.OutputCapture).
		Return(domain.Outcome{Started: true, Status: domain.StatusFailed, ExitCode: 2}, nil)
	f.files.EXPECT().Exists("/work/README.md").Return(true)
	f.files.EXPECT().Exists("/work/CHANGELOG.md").Return(false)
	f.oracle.EXPECT().
		CheckPathModifications(gomock.Any(), "/work", domain.GitConfig{}, []string{"src"}, domain.CINone).
		Return(domain.Freshness{State: domain.LastModifiedUpstream, Upstream: "abc123"}, nil)

	err := f.app.RunPlan(context.Background(), opts, "plan.yaml")
	require.ErrorIs(t, err, domain.ErrStepsFailed)

	g := goldie.New(t)
	g.Assert(t, "plan_summary", f.stdout.Bytes())
}

func TestApp_RunPlan_DryRun(t *testing.T) {
	f := newFixture(t)
	f.settings(domain.Settings{Flags: domain.Flags{DryRun: true}})

	f.loader.EXPECT().LoadPlan("plan.yaml").Return(&domain.Plan{Steps: []domain.Step{
		runStep("deploy", domain.NewCommand("./deploy.sh")),
		runStep("status", domain.NewCommand("git", "status").AlwaysRun()),
	}}, nil)
	f.runner.EXPECT().
		Run(gomock.Any(), domain.NewCommand("git", "status").AlwaysRun(), domain.OutputCapture, domain.OutputCapture).
		Return(domain.Outcome{Started: true}, nil)

	require.NoError(t, f.app.RunPlan(context.Background(), opts, "plan.yaml"))

	g := goldie.New(t)
	g.Assert(t, "plan_dry_run", f.stdout.Bytes())
}

func TestApp_RunPlan_DelayedFailures(t *testing.T) {
	f := newFixture(t)
	f.settings(domain.Settings{Jobs: 1})

	f.loader.EXPECT().LoadPlan("plan.yaml").Return(&domain.Plan{Steps: []domain.Step{
		runStep("test", domain.NewCommand("go", "test").DelayFailure()),
		runStep("vet", domain.NewCommand("go", "vet")),
	}}, nil)
	f.runner.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.Outcome{Started: true, Status: domain.StatusFailed, ExitCode: 1}, nil).
		Times(2)
	f.logger.EXPECT().Error(gomock.Any()).Times(2)
	f.logger.EXPECT().Info(gomock.Any()).Times(2)

	err := f.app.RunPlan(context.Background(), opts, "plan.yaml")
	require.ErrorIs(t, err, domain.ErrDelayedFailures)
}

func TestApp_RunPlan_LoadError(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().LoadPlan("plan.yaml").Return(nil, domain.ErrPlanParseFailed)

	err := f.app.RunPlan(context.Background(), opts, "plan.yaml")
	require.ErrorIs(t, err, domain.ErrPlanParseFailed)
}
