package commands

import (
	"github.com/spf13/cobra"

	"github.com/famwallet/famwallet/internal/query"
)

func newStatsCommand(a *app) *cobra.Command {
	var byCategory bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show credit, debit and balance over all transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.ledger.View(query.Options{})
			if err != nil {
				return err
			}
			if err := a.render.Summary(cmd.OutOrStdout(), v.Totals); err != nil {
				return err
			}
			if !byCategory || v.Count == 0 {
				return nil
			}

			totals, err := a.ledger.Breakdown()
			if err != nil {
				return err
			}
			a.render.Categories(cmd.OutOrStdout(), totals)
			return nil
		},
	}

	cmd.Flags().BoolVar(&byCategory, "by-category", false, "also break totals down by category")

	return cmd
}
