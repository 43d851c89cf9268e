package overlay

import (
	"image/color"
	"time"

	"github.com/zenlizolet/Focus-Timer/internal/core/display"
	"github.com/zenlizolet/Focus-Timer/internal/core/model"
	"github.com/zenlizolet/Focus-Timer/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Config defines window visuals.
type Config struct {
	Opacity    uint8
	Fullscreen bool
}

// Controls are invoked from the window buttons.
type Controls struct {
	OnStart       func()
	OnPause       func()
	OnReset       func()
	OnPreferences func()
	// OnFullscreen receives the new mode after a keyboard toggle.
	OnFullscreen func(fullscreen bool)
}

// Window shows the countdown, the current mode and the focus total.
type Window struct {
	window         fyne.Window
	config         Config
	controls       Controls
	background     *canvas.Rectangle
	modeLabel      *canvas.Text
	timerLabel     *canvas.Text
	totalLabel     *canvas.Text
	startButton    *widget.Button
	pauseButton    *widget.Button
	resetButton    *widget.Button
	settingsButton *widget.Button
}

const (
	windowWidth  = float32(520)
	windowHeight = float32(360)
)

var (
	focusColor = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	breakColor = color.NRGBA{R: 110, G: 200, B: 160, A: 255}
	textColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// New creates the timer window.
func New(app fyne.App, config Config, controls Controls) *Window {
	window := app.NewWindow("Focus Timer")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 18, G: 18, B: 28, A: config.Opacity})

	modeLabel := canvas.NewText(model.ModeFocus.Display(), focusColor)
	modeLabel.Alignment = fyne.TextAlignCenter
	modeLabel.TextStyle = fyne.TextStyle{Bold: true}
	modeLabel.TextSize = 28

	timerLabel := canvas.NewText("--:--", textColor)
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Monospace: true}
	timerLabel.TextSize = 72

	totalLabel := canvas.NewText(totalText(0, 0), textColor)
	totalLabel.Alignment = fyne.TextAlignCenter
	totalLabel.TextSize = 16

	overlay := &Window{
		window:     window,
		config:     config,
		controls:   controls,
		background: background,
		modeLabel:  modeLabel,
		timerLabel: timerLabel,
		totalLabel: totalLabel,
	}

	overlay.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		call(overlay.controls.OnStart)
	})
	overlay.pauseButton = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), func() {
		call(overlay.controls.OnPause)
	})
	overlay.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		call(overlay.controls.OnReset)
	})
	overlay.settingsButton = widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		call(overlay.controls.OnPreferences)
	})

	buttons := container.NewHBox(overlay.startButton, overlay.pauseButton, overlay.resetButton, overlay.settingsButton)
	content := container.New(&stackLayout{}, modeLabel, timerLabel, totalLabel, container.NewCenter(buttons))
	window.SetContent(container.NewStack(background, content))
	window.Canvas().SetOnTypedKey(overlay.handleKey)

	overlay.applyWindowMode()
	return overlay
}

// Window returns the underlying Fyne window, used as dialog parent.
func (overlay *Window) Window() fyne.Window {
	return overlay.window
}

// Show displays the window.
func (overlay *Window) Show() {
	overlay.window.Show()
	overlay.window.RequestFocus()
}

// Hide hides the window without stopping the timer.
func (overlay *Window) Hide() {
	overlay.window.Hide()
}

// SetCloseIntercept replaces the close button behaviour.
func (overlay *Window) SetCloseIntercept(handler func()) {
	overlay.window.SetCloseIntercept(handler)
}

// UpdateConfig updates window visuals.
func (overlay *Window) UpdateConfig(config Config) {
	overlay.config = config
	overlay.background.FillColor = color.NRGBA{R: 18, G: 18, B: 28, A: config.Opacity}
	canvas.Refresh(overlay.background)
	overlay.applyWindowMode()
}

// ToggleFullscreen flips between fullscreen and windowed mode.
func (overlay *Window) ToggleFullscreen() {
	overlay.config.Fullscreen = !overlay.window.FullScreen()
	overlay.applyWindowMode()
	if overlay.controls.OnFullscreen != nil {
		overlay.controls.OnFullscreen(overlay.config.Fullscreen)
	}
}

// Render draws one frame. It must run on the Fyne main goroutine.
func (overlay *Window) Render(snapshot timekeeper.Snapshot) {
	overlay.modeLabel.Text = snapshot.Mode.Display()
	overlay.modeLabel.Color = focusColor
	if snapshot.Mode == model.ModeBreak {
		overlay.modeLabel.Color = breakColor
	}
	overlay.modeLabel.Refresh()

	overlay.timerLabel.Text = display.Remaining(snapshot.RemainingTime)
	overlay.timerLabel.Refresh()

	overlay.totalLabel.Text = totalText(snapshot.TotalFocus, snapshot.UnbankedFocus)
	overlay.totalLabel.Refresh()

	if snapshot.Status == model.StatusRunning {
		overlay.startButton.Disable()
		overlay.pauseButton.Enable()
	} else {
		overlay.startButton.Enable()
		overlay.pauseButton.Disable()
	}
}

// ShowMessage opens an information dialog over the window.
func (overlay *Window) ShowMessage(title, message string) {
	dialog.ShowInformation(title, message, overlay.window)
}

// ShowError opens an error dialog over the window.
func (overlay *Window) ShowError(err error) {
	dialog.ShowError(err, overlay.window)
}

func (overlay *Window) handleKey(event *fyne.KeyEvent) {
	switch event.Name {
	case fyne.KeyEscape, fyne.KeyF11:
		overlay.ToggleFullscreen()
	}
}

func (overlay *Window) applyWindowMode() {
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(true)
		return
	}
	overlay.window.SetFullScreen(false)
	overlay.window.Resize(fyne.NewSize(windowWidth, windowHeight))
}

// totalText shows the banked total and, once it reaches a minute, the running session.
func totalText(total, unbanked time.Duration) string {
	text := "Total focused: " + display.FocusTotal(total)
	if unbanked >= time.Minute {
		text += " (+" + display.FocusTotal(unbanked) + " this session)"
	}
	return text
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}

// stackLayout centers its objects vertically: mode, countdown, total, buttons.
type stackLayout struct{}

const stackGap = float32(12)

func (layout *stackLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 4 {
		return
	}
	height := layout.MinSize(objects).Height
	y := (size.Height - height) / 2
	if y < 0 {
		y = 0
	}
	for _, object := range objects {
		objectSize := object.MinSize()
		object.Move(fyne.NewPos(0, y))
		object.Resize(fyne.NewSize(size.Width, objectSize.Height))
		y += objectSize.Height + stackGap
	}
}

func (layout *stackLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var width, height float32
	for index, object := range objects {
		objectSize := object.MinSize()
		if objectSize.Width > width {
			width = objectSize.Width
		}
		height += objectSize.Height
		if index > 0 {
			height += stackGap
		}
	}
	return fyne.NewSize(width+40, height)
}
