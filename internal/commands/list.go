package commands

import (
	"github.com/spf13/cobra"

	"github.com/famwallet/famwallet/internal/query"
	"github.com/famwallet/famwallet/internal/render"
)

func newListCommand(a *app) *cobra.Command {
	var search, typeFilter, sortOrder string
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show transactions with balance totals",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := query.ParseTypeFilter(typeFilter)
			if err != nil {
				return err
			}
			order, err := query.ParseSortOrder(sortOrder)
			if err != nil {
				return err
			}

			v, err := a.ledger.View(query.Options{Search: search, Type: filter, Sort: order})
			if err != nil {
				return err
			}

			if asJSON {
				return render.JSON(cmd.OutOrStdout(), v.Rows)
			}
			return a.render.View(cmd.OutOrStdout(), v)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "match merchant, category or mode")
	cmd.Flags().StringVarP(&typeFilter, "type", "t", string(query.FilterAll), "all, credit, debit or suspicious")
	cmd.Flags().StringVar(&sortOrder, "sort", string(query.SortNone), "none, latest, amountHigh or amountLow")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print rows as JSON")

	return cmd
}
