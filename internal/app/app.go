// Package app wires the timer core to the desktop user interface.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/zenlizolet/Focus-Timer/internal/core/clock"
	"github.com/zenlizolet/Focus-Timer/internal/core/display"
	"github.com/zenlizolet/Focus-Timer/internal/core/model"
	"github.com/zenlizolet/Focus-Timer/internal/core/timekeeper"
	"github.com/zenlizolet/Focus-Timer/internal/notify"
	"github.com/zenlizolet/Focus-Timer/internal/platform"
	"github.com/zenlizolet/Focus-Timer/internal/storage"
	"github.com/zenlizolet/Focus-Timer/internal/ui/overlay"
	"github.com/zenlizolet/Focus-Timer/internal/ui/preferences"
	"github.com/zenlizolet/Focus-Timer/internal/ui/tray"
	"github.com/zenlizolet/Focus-Timer/internal/usecase"
	"github.com/zenlizolet/Focus-Timer/resources"
)

const (
	appID         = "io.github.zenlizolet.focustimer"
	windowOpacity = uint8(235)
	eventBuffer   = 4
)

// Options configures a timer session.
type Options struct {
	AppName          string
	Settings         model.Settings
	SettingsPath     string
	TickInterval     time.Duration
	DecimalSeparator rune
	Logger           *slog.Logger
	Clock            clock.Clock
	LoginItem        usecase.LoginItem
	IdleProvider     platform.IdleProvider
}

// App owns the timer and every window that renders it.
type App struct {
	fyne        fyne.App
	options     Options
	logger      *slog.Logger
	keeper      *timekeeper.TimeKeeper
	window      *overlay.Window
	preferences *preferences.Window
	tray        *tray.Manager
	notifier    *notify.Desktop
	idle        *idleWatcher
	applyPrefs  *usecase.ApplyPreferences
	settings    model.Settings
	stop        context.CancelFunc
}

// Run acquires the single-instance lock, opens the timer window and blocks until quit.
func Run(options Options) error {
	guard, err := platform.AcquireSingleInstance(options.AppName)
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	if options.LoginItem == nil {
		options.LoginItem = platform.NewAutostart(options.AppName)
	}
	if options.IdleProvider == nil {
		options.IdleProvider = platform.NewIdleProvider()
	}

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo(resources.FocusLogo))

	timer := New(fyneApp, options)
	timer.Run(context.Background())
	return nil
}

// New builds the timer and its windows on fyneApp.
func New(fyneApp fyne.App, options Options) *App {
	if options.Logger == nil {
		options.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if options.Clock == nil {
		options.Clock = clock.SystemClock
	}
	if options.TickInterval <= 0 {
		options.TickInterval = timekeeper.DefaultTickInterval
	}
	if options.DecimalSeparator == 0 {
		options.DecimalSeparator = model.InvariantSeparator
	}

	timer := &App{
		fyne:     fyneApp,
		options:  options,
		logger:   options.Logger,
		settings: options.Settings,
	}

	timer.keeper = timekeeper.New(options.Settings.TimerConfig(), timekeeper.Config{
		TickInterval:     options.TickInterval,
		Clock:            options.Clock,
		Logger:           options.Logger,
		DecimalSeparator: options.DecimalSeparator,
	})

	var saver usecase.SettingsSaver
	if options.SettingsPath != "" {
		saver = usecase.SettingsSaverFunc(func(settings model.Settings) error {
			return storage.SaveSettingsFile(options.SettingsPath, settings)
		})
	}
	timer.applyPrefs = usecase.NewApplyPreferences(timer.keeper, saver, options.DecimalSeparator)
	if options.LoginItem != nil {
		timer.applyPrefs.WithLoginItem(options.LoginItem)
	}

	timer.window = overlay.New(fyneApp, timer.windowConfig(), overlay.Controls{
		OnStart:       timer.command(timer.keeper.Start),
		OnPause:       timer.command(timer.keeper.Pause),
		OnReset:       timer.command(timer.keeper.Reset),
		OnPreferences: timer.showPreferences,
		OnFullscreen:  timer.fullscreenToggled,
	})
	timer.preferences = preferences.New(fyneApp, options.Settings, timer.savePreferences)

	timer.notifier = notify.NewDesktop(fyneApp, func(title, body string) {
		timer.window.ShowMessage(title, body)
	}, options.Logger)
	timer.notifier.SetEnabled(options.Settings.Notifications)
	timer.keeper.AddNotifier(timer.notifier)

	timer.idle = newIdleWatcher(options.IdleProvider, timer.keeper, options.Logger, func(idle time.Duration) {
		fyne.Do(func() {
			timer.render()
			timer.window.ShowMessage("Paused", fmt.Sprintf("Focus paused after %d minutes away.", int(idle/time.Minute)))
		})
	})
	timer.idle.setEnabled(options.Settings.PauseWhenIdle)

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		icons := tray.Icons{
			Focus: resources.MustLogo(resources.FocusLogo),
			Break: resources.MustLogo(resources.BreakLogo),
		}
		timer.tray = tray.New(desktopApp, icons, tray.Callbacks{
			OnShow:        timer.window.Show,
			OnStart:       timer.command(timer.keeper.Start),
			OnPause:       timer.command(timer.keeper.Pause),
			OnReset:       timer.command(timer.keeper.Reset),
			OnPreferences: timer.showPreferences,
			OnQuit:        timer.Quit,
		})
		timer.window.SetCloseIntercept(timer.window.Hide)
	} else {
		timer.window.SetCloseIntercept(timer.Quit)
	}

	timer.render()
	return timer
}

// Run starts the scheduler and the render loop, then blocks in the Fyne event loop.
func (timer *App) Run(ctx context.Context) {
	ctx, timer.stop = context.WithCancel(ctx)
	defer timer.stop()
	defer timer.keeper.Close()

	go timer.keeper.Run(ctx)
	go timer.renderLoop(ctx)
	go timer.redrawOnEvents(timer.keeper.Subscribe(eventBuffer))
	go timer.idle.run(ctx, idleCheckInterval)

	timer.logger.Info("focus timer started",
		"work", timer.settings.WorkDuration,
		"break", timer.settings.BreakDuration,
		"auto_start_break", timer.settings.AutoStartBreak,
		"tick", timer.options.TickInterval,
	)
	timer.window.Show()
	timer.fyne.Run()
	timer.logger.Info("focus timer stopped", "total_focus", timer.keeper.TotalFocusTime())
}

// Quit stops the timer and closes the application.
func (timer *App) Quit() {
	if timer.stop != nil {
		timer.stop()
	}
	timer.keeper.Close()
	timer.fyne.Quit()
}

// Keeper returns the running timer.
func (timer *App) Keeper() *timekeeper.TimeKeeper {
	return timer.keeper
}

func (timer *App) renderLoop(ctx context.Context) {
	ticker := time.NewTicker(timer.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fyne.Do(timer.render)
		}
	}
}

// redrawOnEvents draws a frame as soon as a period completes so the window and tray
// switch mode without waiting for the next render tick. It returns when the keeper closes.
func (timer *App) redrawOnEvents(events <-chan timekeeper.Event) {
	for event := range events {
		if event.Type == timekeeper.EventInvalidDuration {
			continue
		}
		fyne.Do(timer.render)
	}
}

// render draws one frame. It must run on the Fyne main goroutine.
func (timer *App) render() {
	snapshot := timer.keeper.Snapshot(timer.options.Clock.Now())
	timer.window.Render(snapshot)
	if timer.tray != nil {
		timer.tray.SetStatus(snapshot.Mode, snapshot.Status, display.Remaining(snapshot.RemainingTime))
	}
}

// command runs a timer operation and redraws right away instead of waiting for the next tick.
func (timer *App) command(operation func()) func() {
	return func() {
		operation()
		timer.render()
	}
}

func (timer *App) showPreferences() {
	timer.preferences.UpdateSettings(timer.settings.WithTimerConfig(timer.keeper.Config()))
	timer.preferences.Show()
}

func (timer *App) savePreferences(input usecase.ApplyPreferencesInput) error {
	out, err := timer.applyPrefs.Execute(context.Background(), input)
	if out == nil {
		if errors.Is(err, model.ErrInvalidDuration) {
			timer.logger.Warn("preferences rejected", "error", err)
		}
		return err
	}
	if err != nil {
		timer.logger.Error("save settings failed", "path", timer.options.SettingsPath, "error", err)
		timer.window.ShowError(err)
	}

	timer.settings = out.Settings
	timer.notifier.SetEnabled(out.Settings.Notifications)
	timer.idle.setEnabled(out.Settings.PauseWhenIdle)
	timer.window.UpdateConfig(timer.windowConfig())
	for _, message := range out.Messages {
		timer.window.ShowMessage("Settings", message)
	}
	timer.render()
	return nil
}

// fullscreenToggled keeps the saved preference in step with the F11/Escape toggle.
func (timer *App) fullscreenToggled(fullscreen bool) {
	timer.settings.Fullscreen = fullscreen
	if timer.options.SettingsPath == "" {
		return
	}
	if err := storage.SaveSettingsFile(timer.options.SettingsPath, timer.settings); err != nil {
		timer.logger.Error("save settings failed", "path", timer.options.SettingsPath, "error", err)
	}
}

func (timer *App) windowConfig() overlay.Config {
	return overlay.Config{
		Opacity:    windowOpacity,
		Fullscreen: timer.settings.Fullscreen,
	}
}
