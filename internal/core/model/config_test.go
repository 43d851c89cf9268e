package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, 50*time.Minute, config.WorkDuration)
	assert.Equal(t, 5*time.Minute, config.BreakDuration)
	assert.True(t, config.AutoStartBreak)
	assert.NoError(t, config.Validate())
}

func TestConfigDurationFor(t *testing.T) {
	config := Config{WorkDuration: 25 * time.Minute, BreakDuration: 10 * time.Minute}
	assert.Equal(t, 25*time.Minute, config.DurationFor(ModeFocus))
	assert.Equal(t, 10*time.Minute, config.DurationFor(ModeBreak))
}

func TestConfigWithDuration(t *testing.T) {
	config := DefaultConfig()

	updated := config.WithDuration(ModeBreak, 10*time.Minute)
	assert.Equal(t, 10*time.Minute, updated.BreakDuration)
	assert.Equal(t, config.WorkDuration, updated.WorkDuration)
	assert.Equal(t, 5*time.Minute, config.BreakDuration, "original must not change")

	updated = config.WithDuration(ModeFocus, 30*time.Minute)
	assert.Equal(t, 30*time.Minute, updated.WorkDuration)
}

func TestConfigValidate(t *testing.T) {
	config := DefaultConfig()
	config.BreakDuration = 0
	assert.ErrorIs(t, config.Validate(), ErrInvalidDuration)

	config = DefaultConfig()
	config.WorkDuration = 300 * time.Minute
	assert.ErrorIs(t, config.Validate(), ErrInvalidDuration)
}

func TestModeDisplay(t *testing.T) {
	assert.Equal(t, "Focus!", ModeFocus.Display())
	assert.Equal(t, "Break!", ModeBreak.Display())
}
