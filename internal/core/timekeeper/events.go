package timekeeper

import (
	"time"

	"github.com/zenlizolet/Focus-Timer/internal/core/model"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventFocusComplete   EventType = "focus_complete"
	EventBreakComplete   EventType = "break_complete"
	EventInvalidDuration EventType = "invalid_duration"
)

// Event represents a TimeKeeper update for observers.
// Mode, Status and Duration describe the period that is current after the transition.
type Event struct {
	Type       EventType
	Mode       model.Mode
	Status     model.Status
	Duration   time.Duration
	TotalFocus time.Duration
	Reason     string
	At         time.Time
}

// Notifier receives TimeKeeper events.
// Notify is called after the TimeKeeper lock is released, so it may call back into the TimeKeeper.
type Notifier interface {
	Notify(event Event)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Event)

// Notify calls fn(event).
func (fn NotifierFunc) Notify(event Event) {
	fn(event)
}
