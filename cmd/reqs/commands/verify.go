package commands

import (
	"github.com/mrmachine/reqs/internal/adapters/lockio"
	"github.com/spf13/cobra"
)

func (c *CLI) newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [manifest]",
		Short: "Check that the lockfile still matches the manifest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lockPath, _ := cmd.Flags().GetString("lockfile")
			return c.app.Verify(manifestArg(args), lockPath)
		},
	}
	cmd.Flags().StringP("lockfile", "l", lockio.DefaultPath, "Lockfile path to verify")
	return cmd
}
