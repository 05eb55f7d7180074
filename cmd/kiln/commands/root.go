// Package commands implements the CLI commands for the kiln build tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/build"
)

// CLI represents the command line interface for kiln.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Exec(ctx context.Context, opts app.Options, argv []string, eo app.ExecOptions) error
	Read(ctx context.Context, opts app.Options, path string) error
	Exists(ctx context.Context, opts app.Options, path string) error
	Hash(ctx context.Context, opts app.Options, paths []string) error
	Fresh(ctx context.Context, opts app.Options, root string, patterns []string) error
	DiffIndex(ctx context.Context, opts app.Options, dir, base string, paths []string) error
	Git(ctx context.Context, opts app.Options, dir string, args []string) error
	RunPlan(ctx context.Context, opts app.Options, path string) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "kiln",
		Short:         "Run build steps once per invocation",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Configuration file, or directory to search upwards from")
	flags.Bool("dry-run", false, "Skip commands that are not marked to always run")
	flags.CountP("verbose", "v", "Increase verbosity (repeat for span timings)")
	flags.Bool("fail-fast", false, "Exit on the first failing command")
	flags.IntP("jobs", "j", 0, "Maximum number of concurrent plan steps (default: number of CPUs)")
	flags.Bool("json-log", false, "Write diagnostics as JSON")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newExecCmd())
	rootCmd.AddCommand(c.newReadCmd())
	rootCmd.AddCommand(c.newExistsCmd())
	rootCmd.AddCommand(c.newHashCmd())
	rootCmd.AddCommand(c.newFreshCmd())
	rootCmd.AddCommand(c.newDiffIndexCmd())
	rootCmd.AddCommand(c.newGitCmd())
	rootCmd.AddCommand(c.newPlanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// options collects the global flags. Flags left at their default keep the
// configured value.
func options(cmd *cobra.Command) app.Options {
	flags := cmd.Flags()
	opts := app.Options{}
	opts.Config, _ = flags.GetString("config")
	opts.JSONLog, _ = flags.GetBool("json-log")

	if flags.Changed("dry-run") {
		v, _ := flags.GetBool("dry-run")
		opts.DryRun = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetCount("verbose")
		opts.Verbose = &v
	}
	if flags.Changed("fail-fast") {
		v, _ := flags.GetBool("fail-fast")
		opts.FailFast = &v
	}
	if flags.Changed("jobs") {
		v, _ := flags.GetInt("jobs")
		opts.Jobs = &v
	}
	return opts
}
