package clock

import (
	"sync"
	"time"
)

// Clock supplies the current instant.
// This interface lets tests drive the timer without sleeping.
type Clock interface {
	Now() time.Time
}

// SystemClock is the default Clock implementation using the standard library.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Manual is a Clock that only moves when told to.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual returns a Manual clock frozen at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the frozen instant.
func (manual *Manual) Now() time.Time {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return manual.now
}

// Advance moves the clock forward and returns the new instant.
func (manual *Manual) Advance(delta time.Duration) time.Time {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	manual.now = manual.now.Add(delta)
	return manual.now
}

// Set jumps the clock to an absolute instant.
func (manual *Manual) Set(now time.Time) {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	manual.now = now
}
