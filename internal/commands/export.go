package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/famwallet/famwallet/internal/export"
)

func newExportCommand(a *app) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every stored transaction to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			if out == "-" {
				return a.ledger.Export(cmd.OutOrStdout(), f)
			}
			if out == "" {
				out = export.FileName(f)
			}

			file, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			if err := a.ledger.Export(file, f); err != nil {
				file.Close()
				_ = os.Remove(out)
				return err
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", out, err)
			}

			a.log.Debug().Str("path", out).Str("type", export.MediaType(f)).Msg("export written")
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatJSON), "json or csv")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path, - for stdout (default transactions.<format>)")

	return cmd
}
