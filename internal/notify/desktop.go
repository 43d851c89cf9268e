// Package notify delivers timer events to the desktop.
package notify

import (
	"io"
	"log/slog"
	"sync/atomic"

	"fyne.io/fyne/v2"

	"github.com/zenlizolet/Focus-Timer/internal/core/display"
	"github.com/zenlizolet/Focus-Timer/internal/core/timekeeper"
)

// Desktop turns completion events into desktop notifications and in-window messages.
// Rejected input is not announced here; the form that submitted it reports the error.
type Desktop struct {
	send    func(*fyne.Notification)
	present func(title, body string)
	do      func(func())
	logger  *slog.Logger
	enabled atomic.Bool
}

// NewDesktop creates a notifier sending through app.
// present, when set, also shows the announcement inside the application.
// Both run on the Fyne main goroutine.
func NewDesktop(app fyne.App, present func(title, body string), logger *slog.Logger) *Desktop {
	var send func(*fyne.Notification)
	if app != nil {
		send = app.SendNotification
	}
	return newDesktop(send, present, fyne.Do, logger)
}

func newDesktop(send func(*fyne.Notification), present func(title, body string), do func(func()), logger *slog.Logger) *Desktop {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	desktop := &Desktop{
		send:    send,
		present: present,
		do:      do,
		logger:  logger,
	}
	desktop.enabled.Store(true)
	return desktop
}

// SetEnabled toggles system notifications. In-window messages are always shown.
func (desktop *Desktop) SetEnabled(enabled bool) {
	desktop.enabled.Store(enabled)
}

// Notify implements timekeeper.Notifier.
func (desktop *Desktop) Notify(event timekeeper.Event) {
	if event.Type == timekeeper.EventInvalidDuration {
		return
	}
	title, body, ok := display.Announcement(event)
	if !ok {
		return
	}

	send := desktop.enabled.Load() && desktop.send != nil
	if !send && desktop.present == nil {
		return
	}
	desktop.do(func() {
		if send {
			desktop.logger.Debug("sending notification", "event", event.Type)
			desktop.send(fyne.NewNotification(title, body))
		}
		if desktop.present != nil {
			desktop.present(title, body)
		}
	})
}
