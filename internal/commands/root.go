package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/famwallet/famwallet/internal/activitylog"
	"github.com/famwallet/famwallet/internal/buildinfo"
	"github.com/famwallet/famwallet/internal/config"
	"github.com/famwallet/famwallet/internal/ledger"
	"github.com/famwallet/famwallet/internal/render"
	"github.com/famwallet/famwallet/internal/store"
)

// app carries what every command needs once flags are parsed.
type app struct {
	dir        string
	configPath string
	verbose    bool

	now      func() time.Time
	cfg      *config.Config
	log      zerolog.Logger
	ledger   *ledger.Service
	activity *activitylog.Log
	render   *render.Renderer
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{now: time.Now}

	rootCmd := &cobra.Command{
		Use:     "famwallet",
		Short:   "Personal transaction ledger",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.dir, "dir", ".", "ledger directory")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default <dir>/"+config.FileName+")")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newInitCommand(),
		newAddCommand(a),
		newListCommand(a),
		newShowCommand(a),
		newDeleteCommand(a),
		newStatsCommand(a),
		newResetCommand(a),
		newExportCommand(a),
		newImportCommand(a),
		newChartCommand(a),
		newLogCommand(a),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	absDir, err := filepath.Abs(a.dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	a.dir = absDir

	var cfg *config.Config
	if a.configPath != "" {
		cfg, err = config.Load(a.configPath)
	} else {
		cfg, err = config.LoadOrDefault(filepath.Join(a.dir, config.FileName))
	}
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	if a.verbose {
		level = zerolog.DebugLevel
	}
	a.log = newLogger(cmd, level)

	st, err := store.NewFileStore(a.dir, cfg.Storage.Key)
	if err != nil {
		return err
	}

	a.activity = activitylog.New(afero.NewOsFs(), a.dir)
	opts := []ledger.Option{ledger.WithClock(a.now)}
	if cfg.ActivityLog {
		opts = append(opts, ledger.WithActivityLog(a.activity))
	}
	a.ledger = ledger.NewService(st, a.log, opts...)
	a.render = render.New(cfg.Display.Currency, cfg.Display.Locale)

	a.log.Debug().Str("dir", a.dir).Str("key", cfg.Storage.Key).Msg("ledger opened")
	return nil
}

func newLogger(cmd *cobra.Command, level zerolog.Level) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        cmd.ErrOrStderr(),
		NoColor:    true,
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
