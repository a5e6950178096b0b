package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/famwallet/famwallet/internal/id"
)

func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a transaction by ID or unique ID prefix",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, ok, err := a.ledger.Delete(args[0])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "No transaction matching %q\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s: %s %s %s\n",
				id.Short(removed.ID), removed.Type, a.render.Money(removed.Amount), removed.Merchant)
			return nil
		},
	}
}
