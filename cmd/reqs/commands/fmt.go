package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newFmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt [manifest]",
		Short: "Print the manifest in normalized form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.app.Format(manifestArg(args))
		},
	}
}
