package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualAdvance(t *testing.T) {
	start := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	manual := NewManual(start)

	assert.Equal(t, start, manual.Now())
	assert.Equal(t, start.Add(90*time.Second), manual.Advance(90*time.Second))
	assert.Equal(t, start.Add(90*time.Second), manual.Now())

	manual.Set(start)
	assert.Equal(t, start, manual.Now())
}

func TestSystemClockMovesForward(t *testing.T) {
	first := SystemClock.Now()
	second := SystemClock.Now()
	assert.False(t, second.Before(first))
}
