package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"mandalart-cli/internal/config"
	"mandalart-cli/internal/format"
	"mandalart-cli/internal/logging"
	"mandalart-cli/internal/store"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Backend    string
	ConfigFile string
	PrettyJSON bool
	Format     string
	Year       int

	cfg     config.Config
	logger  *slog.Logger
	logFile io.Closer
	now     func() time.Time
}

func NewRootCmd() *cobra.Command {
	app := &App{now: func() time.Time { return time.Now().UTC() }}

	cmd := &cobra.Command{
		Use:          "mandalart",
		Short:        "Mandalart goal planner (local-first) CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive grid
  mandalart

  # Scriptable commands
  mandalart goals show sub-2025-0
  mandalart goals done sub-2025-0-sub-3 --year 2025

  # Direct goal lookup (shortcut for: mandalart goals show <goal-id>)
  mandalart sub-2025-0
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.configure(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.logFile != nil {
			_ = app.logFile.Close()
			app.logFile = nil
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ConfigFile, "config", envOr("MANDALART_CONFIG", ""), "Config file (default .mandalart.yaml in cwd or $HOME)")
	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Path to store dir (default ~/.mandalart/default)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", "", "Storage backend (sqlite|json)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("MANDALART_FORMAT", "json"), "Output format (json|edn|yaml|toml)")
	cmd.PersistentFlags().IntVar(&app.Year, "year", 0, "Planner year (default: current year)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newYearsCmd(app))
	cmd.AddCommand(newGoalsCmd(app))
	cmd.AddCommand(newTimelineCmd(app))
	cmd.AddCommand(newLanguageCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newBackupCmd(app))
	cmd.AddCommand(newThemesCmd(app))
	cmd.AddCommand(newKeywordsCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// configure layers flags over MANDALART_* env vars over the config file.
func (app *App) configure(cmd *cobra.Command) error {
	v := config.New(app.ConfigFile)
	flags := cmd.Root().PersistentFlags()
	for key, name := range map[string]string{"dir": "dir", "backend": "backend"} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}
	if err := config.ReadFile(v); err != nil {
		return writeErr(cmd, fmt.Errorf("read config: %w", err))
	}
	cfg, err := config.Load(v)
	if err != nil {
		return writeErr(cmd, err)
	}
	app.cfg = cfg

	if cfg.LogFile != "" {
		l, c, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.logger, app.logFile = l, c
	} else {
		app.logger = logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	}
	return nil
}

func (app *App) year() int {
	if app.Year != 0 {
		return app.Year
	}
	return app.now().Year()
}

func (app *App) store() (store.Store, error) {
	backend, err := store.ParseBackend(app.cfg.Backend)
	if err != nil {
		return store.Store{}, err
	}
	dir := strings.TrimSpace(app.cfg.Dir)
	if dir == "" {
		if dir, err = store.DefaultDir(); err != nil {
			return store.Store{}, err
		}
	}
	app.Dir = dir
	return store.Store{Dir: dir, Backend: backend, Logger: app.logger}, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
