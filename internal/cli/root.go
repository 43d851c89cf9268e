// Package cli provides the command-line interface for the focus timer.
package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/zenlizolet/Focus-Timer/internal/core/model"
	"github.com/zenlizolet/Focus-Timer/internal/core/timekeeper"
	"github.com/zenlizolet/Focus-Timer/internal/logging"
	"github.com/zenlizolet/Focus-Timer/internal/platform"
	"github.com/zenlizolet/Focus-Timer/internal/storage"
)

// AppName names the settings directory and the single-instance lock.
const AppName = "FocusTimer"

// Options is the resolved configuration handed to the launcher.
type Options struct {
	Settings         model.Settings
	SettingsPath     string
	LogLevel         slog.Level
	TickInterval     time.Duration
	DecimalSeparator rune
}

// LaunchFunc starts the timer with resolved options.
type LaunchFunc func(options Options) error

// decimalSeparatorFunc is a function variable so tests can pin the locale.
var decimalSeparatorFunc = platform.DecimalSeparator

// settingsPathFunc is a function variable so tests can avoid the user config dir.
var settingsPathFunc = storage.SettingsPath

// NewRootCommand creates the root command. Flags override the settings file.
func NewRootCommand(version string, launch LaunchFunc) *cobra.Command {
	var (
		workMinutes    string
		breakMinutes   string
		autoStartBreak bool
		fullscreen     bool
		logLevel       string
		tick           time.Duration
		configPath     string
	)

	root := &cobra.Command{
		Use:   "focustimer",
		Short: "Focus/break interval timer",
		Long: `focustimer alternates focus and break periods and keeps a running total
of focused time for as long as it is open.

Period lengths are whole minutes between 1 and 240. Decimal input is rounded,
using either '.' or the decimal separator of the system locale.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if configPath == "" {
				path, err := settingsPathFunc(AppName)
				if err != nil {
					return err
				}
				configPath = path
			}

			settings, err := storage.LoadSettingsFile(configPath)
			if err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v, using defaults\n", err)
			}

			separator := decimalSeparatorFunc()
			flags := cmd.Flags()
			if flags.Changed("work") {
				duration, err := model.ParseMinutesDuration(workMinutes, separator)
				if err != nil {
					return fmt.Errorf("--work: %w", err)
				}
				settings.WorkDuration = duration
			}
			if flags.Changed("break") {
				duration, err := model.ParseMinutesDuration(breakMinutes, separator)
				if err != nil {
					return fmt.Errorf("--break: %w", err)
				}
				settings.BreakDuration = duration
			}
			if flags.Changed("auto-start-break") {
				settings.AutoStartBreak = autoStartBreak
			}
			if flags.Changed("fullscreen") {
				settings.Fullscreen = fullscreen
			}
			if tick <= 0 {
				return fmt.Errorf("--tick must be positive, got %s", tick)
			}
			if err := settings.TimerConfig().Validate(); err != nil {
				return err
			}

			return launch(Options{
				Settings:         settings,
				SettingsPath:     configPath,
				LogLevel:         logging.ParseLevel(logLevel),
				TickInterval:     tick,
				DecimalSeparator: separator,
			})
		},
	}

	root.Flags().StringVar(&workMinutes, "work", "", "focus period length in minutes (default from settings, 50)")
	root.Flags().StringVar(&breakMinutes, "break", "", "break period length in minutes (default from settings, 5)")
	root.Flags().BoolVar(&autoStartBreak, "auto-start-break", true, "start the break as soon as a focus period completes")
	root.Flags().BoolVar(&fullscreen, "fullscreen", false, "open the timer window fullscreen")
	root.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.Flags().DurationVar(&tick, "tick", timekeeper.DefaultTickInterval, "refresh cadence of the timer")
	root.Flags().StringVar(&configPath, "config", "", "settings file (default in the user config directory)")

	return root
}
