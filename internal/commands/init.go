package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/famwallet/famwallet/internal/config"
)

func newInitCommand() *cobra.Command {
	var force bool
	var currency string
	var locale string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a ledger directory with a default config",
		Args:  cobra.MaximumNArgs(1),
		// The ledger does not exist yet, so skip the root setup.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cmd.Flags().GetString("dir")
			if err != nil {
				return err
			}
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg := config.Default()
			if currency != "" {
				cfg.Display.Currency = currency
			}
			if locale != "" {
				cfg.Display.Locale = locale
			}
			if err := runInit(absDir, cfg, force); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized famwallet ledger at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	cmd.Flags().StringVar(&currency, "currency", "", "currency symbol (default ₹)")
	cmd.Flags().StringVar(&locale, "locale", "", "number formatting locale (default en-IN)")

	return cmd
}

func runInit(dir string, cfg *config.Config, force bool) error {
	for _, d := range []string{dir, filepath.Join(dir, "logs")} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
