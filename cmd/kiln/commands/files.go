package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read path",
		Short: "Print the contents of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Read(cmd.Context(), options(cmd), args[0])
		},
	}
}

func (c *CLI) newExistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exists path",
		Short: "Print whether a path exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Exists(cmd.Context(), options(cmd), args[0])
		},
	}
}

func (c *CLI) newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash path...",
		Short: "Print the content hash of files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Hash(cmd.Context(), options(cmd), args)
		},
	}
}
