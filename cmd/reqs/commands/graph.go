package commands

import (
	"github.com/mrmachine/reqs/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph [manifest]",
		Short: "Print the manifest's packages in install order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			progress, _ := cmd.Flags().GetBool("progress")
			return c.app.Graph(cmd.Context(), manifestArg(args), app.RunOptions{Progress: progress})
		},
	}
	cmd.Flags().BoolP("progress", "p", false, "Render live resolution progress")
	return cmd
}
