package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/famwallet/famwallet/internal/render"
)

func newLogCommand(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the activity log of adds, deletes, resets, exports and imports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}

			entries, err := a.activity.Read()
			if err != nil {
				return err
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}
			return render.Activity(cmd.OutOrStdout(), entries)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the most recent entries (0 for all)")

	return cmd
}
