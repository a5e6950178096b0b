package commands

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/famwallet/famwallet/internal/export"
)

func newChartCommand(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render spending by category as a PNG bar chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			totals, err := a.ledger.Breakdown()
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := export.Chart(&buf, totals); err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing chart: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Chart saved to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", export.ChartFileName, "output PNG path")

	return cmd
}
