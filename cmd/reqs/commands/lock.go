package commands

import (
	"github.com/mrmachine/reqs/internal/adapters/lockio"
	"github.com/mrmachine/reqs/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newLockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lock [manifest]",
		Short: "Resolve the manifest and write a lockfile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			progress, _ := cmd.Flags().GetBool("progress")
			return c.app.Lock(cmd.Context(), manifestArg(args), output, app.RunOptions{Progress: progress})
		},
	}
	cmd.Flags().StringP("output", "o", lockio.DefaultPath, "Lockfile output path")
	cmd.Flags().BoolP("progress", "p", false, "Render live resolution progress")
	return cmd
}
