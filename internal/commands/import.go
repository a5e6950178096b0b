package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/famwallet/famwallet/internal/importer"
)

func newImportCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Add transactions from a JSON or CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			parser, err := importer.DefaultRegistry().ForFile(path, format)
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer f.Close()

			txns, err := parser.Parse(f)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", path, err)
			}

			res, err := a.ledger.Import(txns)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions (%d already present)\n", res.Added, res.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "json or csv (default from file extension)")

	return cmd
}
