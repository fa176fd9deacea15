// Package cli is the weekly command line: flag parsing, start-up wiring and
// the TUI program.
package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/weekly/internal/config"
	"github.com/sandeepkv93/weekly/internal/logging"
	"github.com/sandeepkv93/weekly/internal/model"
	"github.com/sandeepkv93/weekly/internal/storage"
	"github.com/sandeepkv93/weekly/internal/update"
	"github.com/sandeepkv93/weekly/internal/views"
	"github.com/spf13/cobra"
)

type App struct {
	ConfigPath string
	Date       string
	NoMouse    bool
	LogFile    string
	LogLevel   string
}

func NewRootCommand() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "weekly",
		Short:        "Weekly task planner for the terminal",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		Example: strings.TrimSpace(`
  # Plan the current week
  weekly

  # Open the week containing a date, without mouse capture
  weekly --date 2024-01-10 --no-mouse

  # Debug logging to a file
  weekly --log-file /tmp/weekly.log --log-level debug
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	cmd.Flags().StringVar(&app.ConfigPath, "config", "", "Path to a TOML config file (default: $XDG_CONFIG_HOME/weekly/config.toml)")
	cmd.Flags().StringVar(&app.Date, "date", "", "Open the week containing this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&app.NoMouse, "no-mouse", false, "Disable mouse drag and drop")
	cmd.Flags().StringVar(&app.LogFile, "log-file", "", "Write logs to this file")
	cmd.Flags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	return cmd
}

// resolveConfig layers explicitly set flags over file and env settings.
func resolveConfig(cmd *cobra.Command, app *App) (config.Config, error) {
	cfg, err := config.Resolve(app.ConfigPath)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("no-mouse") {
		cfg.Mouse = !app.NoMouse
	}
	if flags.Changed("log-file") {
		cfg.LogFile = app.LogFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = strings.ToLower(app.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// anchorDate is the local date given by --date, or now.
func anchorDate(raw string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return now, nil
	}
	key, err := model.ParseDateKey(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("--date: %w", err)
	}
	return key.Date(now.Location())
}

func programOptions(cfg config.Config) []tea.ProgramOption {
	var opts []tea.ProgramOption
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return opts
}

func runTUI(cmd *cobra.Command, app *App) error {
	cfg, err := resolveConfig(cmd, app)
	if err != nil {
		return err
	}
	anchor, err := anchorDate(app.Date, time.Now())
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(logging.Options{
		Path:            cfg.LogFile,
		Level:           cfg.LogLevel,
		ReportTimestamp: true,
		Prefix:          "weekly",
	})
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	repo, err := storage.OpenSession()
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close() }()

	views.ApplyColorProfile(cfg.NoColor)
	m := update.NewModelWithOptions(update.Options{
		Config:        cfg,
		Anchor:        anchor,
		Logger:        logger,
		Repo:          repo,
		MarkdownStyle: views.MarkdownStyle(cfg.NoColor),
	})

	logger.Info("starting", "week", model.KeyOf(model.WeekOf(anchor).Start()), "mouse", cfg.Mouse)
	if _, err := tea.NewProgram(m, programOptions(cfg)...).Run(); err != nil {
		logger.Error("program exited", "err", err)
		return err
	}
	return nil
}
