package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [manifest]",
		Short: "Parse a manifest and list its entries",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.app.Parse(manifestArg(args))
		},
	}
}
