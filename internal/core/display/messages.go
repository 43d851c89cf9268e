package display

import (
	"fmt"
	"time"

	"github.com/zenlizolet/Focus-Timer/internal/core/model"
	"github.com/zenlizolet/Focus-Timer/internal/core/timekeeper"
)

// Announcement returns the title and body shown to the user for a timer event.
// ok is false for events that have nothing to announce.
func Announcement(event timekeeper.Event) (title, body string, ok bool) {
	switch event.Type {
	case timekeeper.EventFocusComplete:
		body = fmt.Sprintf("Well done! Time for a %d minute break.", wholeMinutes(event.Duration))
		if event.Status == model.StatusRunning {
			body += " The break has started."
		}
		return "Break time!", body, true
	case timekeeper.EventBreakComplete:
		return model.ModeFocus.Display(), "The break is over. Time to get back to work.", true
	case timekeeper.EventInvalidDuration:
		return "Invalid duration", InvalidMinutesHint(event.Mode), true
	}
	return "", "", false
}

// InvalidMinutesHint explains what input a period length accepts.
func InvalidMinutesHint(mode model.Mode) string {
	example := model.DefaultWorkDuration
	if mode == model.ModeBreak {
		example = 10 * time.Minute
	}
	return fmt.Sprintf("Enter a valid number of minutes between %d and %d (e.g. %d).",
		model.MinMinutes, model.MaxMinutes, wholeMinutes(example))
}

// Reconfigured confirms an accepted period length.
func Reconfigured(mode model.Mode, duration time.Duration) string {
	name := "Focus"
	if mode == model.ModeBreak {
		name = "Break"
	}
	return fmt.Sprintf("%s timer set to %d minutes.", name, wholeMinutes(duration))
}

func wholeMinutes(duration time.Duration) int {
	return int(duration / time.Minute)
}
