package preferences

import (
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/zenlizolet/Focus-Timer/internal/core/model"
	"github.com/zenlizolet/Focus-Timer/internal/usecase"
)

// SaveFunc applies the form. A returned error keeps the window open.
type SaveFunc func(input usecase.ApplyPreferencesInput) error

// Window handles the preferences UI.
type Window struct {
	window         fyne.Window
	onSave         SaveFunc
	workMinutes    *widget.Entry
	breakMinutes   *widget.Entry
	autoStartBreak *widget.Check
	fullscreen     *widget.Check
	notifications  *widget.Check
	launchAtLogin  *widget.Check
	pauseWhenIdle  *widget.Check
	saveButton     *widget.Button
	cancelButton   *widget.Button
}

// New creates a preferences window.
func New(app fyne.App, settings model.Settings, onSave SaveFunc) *Window {
	window := app.NewWindow("Focus Timer Settings")

	prefs := &Window{
		window:         window,
		onSave:         onSave,
		workMinutes:    widget.NewEntry(),
		breakMinutes:   widget.NewEntry(),
		autoStartBreak: widget.NewCheck("Start break automatically", nil),
		fullscreen:     widget.NewCheck("Fullscreen timer", nil),
		notifications:  widget.NewCheck("Desktop notifications", nil),
		launchAtLogin:  widget.NewCheck("Launch at login", nil),
		pauseWhenIdle:  widget.NewCheck("Pause focus when away from the computer", nil),
	}
	prefs.workMinutes.SetPlaceHolder("50")
	prefs.breakMinutes.SetPlaceHolder("5")
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, widget.NewLabel("Focus length"), widget.NewLabel("min"), prefs.workMinutes),
		container.NewBorder(nil, nil, widget.NewLabel("Break length"), widget.NewLabel("min"), prefs.breakMinutes),
		prefs.autoStartBreak,
		prefs.pauseWhenIdle,
		widget.NewLabelWithStyle("Window", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.fullscreen,
		prefs.notifications,
		prefs.launchAtLogin,
	)

	prefs.saveButton = widget.NewButton("Save", prefs.handleSave)
	prefs.cancelButton = widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(prefs.saveButton, layout.NewSpacer(), prefs.cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 360))
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.workMinutes.SetText(minutesText(settings.WorkDuration))
	prefs.breakMinutes.SetText(minutesText(settings.BreakDuration))
	prefs.autoStartBreak.SetChecked(settings.AutoStartBreak)
	prefs.fullscreen.SetChecked(settings.Fullscreen)
	prefs.notifications.SetChecked(settings.Notifications)
	prefs.launchAtLogin.SetChecked(settings.LaunchAtLogin)
	prefs.pauseWhenIdle.SetChecked(settings.PauseWhenIdle)
}

// Input returns the current form values.
func (prefs *Window) Input() usecase.ApplyPreferencesInput {
	return usecase.ApplyPreferencesInput{
		WorkMinutes:    prefs.workMinutes.Text,
		BreakMinutes:   prefs.breakMinutes.Text,
		AutoStartBreak: prefs.autoStartBreak.Checked,
		Fullscreen:     prefs.fullscreen.Checked,
		Notifications:  prefs.notifications.Checked,
		LaunchAtLogin:  prefs.launchAtLogin.Checked,
		PauseWhenIdle:  prefs.pauseWhenIdle.Checked,
	}
}

func (prefs *Window) handleSave() {
	if prefs.onSave != nil {
		if err := prefs.onSave(prefs.Input()); err != nil {
			dialog.ShowError(err, prefs.window)
			return
		}
	}
	prefs.window.Hide()
}

func minutesText(duration time.Duration) string {
	return strconv.Itoa(int(duration / time.Minute))
}
