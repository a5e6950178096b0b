package commands

import (
	"github.com/spf13/cobra"
)

func newShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one transaction and why it is flagged",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, reasons, err := a.ledger.Get(args[0])
			if err != nil {
				return err
			}
			return a.render.Detail(cmd.OutOrStdout(), c, reasons)
		},
	}
}
