package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
)

func (c *CLI) newExecCmd() *cobra.Command {
	var eo app.ExecOptions
	cmd := &cobra.Command{
		Use:   "exec [flags] -- program [args...]",
		Short: "Run a command once",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Exec(cmd.Context(), options(cmd), args, eo)
		},
	}
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVarP(&eo.Dir, "dir", "C", "", "Working directory of the command")
	cmd.Flags().StringVar(&eo.OnFailure, "on-failure", "exit", "Failure policy: exit, delay or ignore")
	cmd.Flags().BoolVar(&eo.Always, "always", false, "Run even in dry-run mode")
	cmd.Flags().StringVar(&eo.Stdout, "stdout", "print", "Standard output mode: capture, print or discard")
	cmd.Flags().StringVar(&eo.Stderr, "stderr", "print", "Standard error mode: capture, print or discard")
	return cmd
}
