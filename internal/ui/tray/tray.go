package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/systray"

	"github.com/zenlizolet/Focus-Timer/internal/core/model"
)

const menuTitle = "Focus Timer"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnStart       func()
	OnPause       func()
	OnReset       func()
	OnPreferences func()
	OnQuit        func()
}

// Icons are the tray icons per mode.
type Icons struct {
	Focus fyne.Resource
	Break fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	icons       Icons
	statusItem  *fyne.MenuItem
	startItem   *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	callbacks   Callbacks
	setTooltip  func(string)
	mode        model.Mode
	status      model.Status
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:        app,
		icons:      icons,
		callbacks:  callbacks,
		setTooltip: systray.SetTooltip,
		mode:       model.ModeFocus,
		status:     model.StatusIdle,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.startItem = fyne.NewMenuItem("Start", func() {
		invoke(manager.callbacks.OnStart)
	})
	manager.pauseItem = fyne.NewMenuItem("Pause", func() {
		invoke(manager.callbacks.OnPause)
	})
	manager.pauseItem.Disabled = true

	manager.refreshMenu()
	manager.setIcon(model.ModeFocus)
	return manager
}

// SetStatus updates the status label and the tray tooltip.
// It must run on the Fyne main goroutine.
func (manager *Manager) SetStatus(mode model.Mode, status model.Status, countdown string) {
	label := fmt.Sprintf("%s %s", mode.Display(), countdown)
	if status == model.StatusPaused {
		label = fmt.Sprintf("%s (paused)", label)
	}

	if mode != manager.mode {
		manager.mode = mode
		manager.setIcon(mode)
	}

	menuChanged := status != manager.status
	manager.status = status
	if label == manager.statusLabel && !menuChanged {
		return
	}
	manager.statusLabel = label
	manager.setTooltip(label)

	manager.statusItem.Label = fmt.Sprintf("Status: %s", label)
	manager.startItem.Disabled = status == model.StatusRunning
	manager.pauseItem.Disabled = status != model.StatusRunning
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItem("Show timer", func() {
			invoke(manager.callbacks.OnShow)
		}),
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.pauseItem,
		fyne.NewMenuItem("Reset", func() {
			invoke(manager.callbacks.OnReset)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() {
			invoke(manager.callbacks.OnPreferences)
		}),
		fyne.NewMenuItem("Quit", func() {
			invoke(manager.callbacks.OnQuit)
		}),
	))
}

func (manager *Manager) setIcon(mode model.Mode) {
	icon := manager.icons.Focus
	if mode == model.ModeBreak && manager.icons.Break != nil {
		icon = manager.icons.Break
	}
	if manager.app != nil && icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func invoke(handler func()) {
	if handler != nil {
		handler()
	}
}
