package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newFreshCmd() *cobra.Command {
	var root string
	cmd := &cobra.Command{
		Use:   "fresh pattern...",
		Short: "Check whether paths changed since the closest upstream commit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Fresh(cmd.Context(), options(cmd), root, args)
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "Source root (default: configuration root)")
	return cmd
}

func (c *CLI) newDiffIndexCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "diff-index base [path...]",
		Short: "Check whether paths differ from a base commit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.DiffIndex(cmd.Context(), options(cmd), dir, args[0], args[1:])
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "C", "", "Repository directory")
	return cmd
}

func (c *CLI) newGitCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "git [flags] -- args...",
		Short: "Run git and print its output",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Git(cmd.Context(), options(cmd), dir, args)
		},
	}
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVarP(&dir, "dir", "C", "", "Repository directory")
	return cmd
}
