package commands

import (
	"github.com/mrmachine/reqs/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [manifest]",
		Short: "Resolve every entry against the index without writing anything",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			progress, _ := cmd.Flags().GetBool("progress")
			return c.app.Check(cmd.Context(), manifestArg(args), app.RunOptions{Progress: progress})
		},
	}
	cmd.Flags().BoolP("progress", "p", false, "Render live resolution progress")
	return cmd
}
