package model

import (
	"fmt"
	"time"
)

// Mode selects which configured period length applies.
type Mode string

const (
	ModeFocus Mode = "focus"
	ModeBreak Mode = "break"
)

// Display returns the label shown above the countdown.
func (mode Mode) Display() string {
	switch mode {
	case ModeFocus:
		return "Focus!"
	case ModeBreak:
		return "Break!"
	default:
		return string(mode)
	}
}

// Status is the countdown state within the current mode.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
)

// Default period lengths.
const (
	DefaultWorkDuration  = 50 * time.Minute
	DefaultBreakDuration = 5 * time.Minute
)

// Config contains the configured period lengths and the auto-start policy.
type Config struct {
	WorkDuration   time.Duration
	BreakDuration  time.Duration
	AutoStartBreak bool
}

// DefaultConfig returns the startup configuration.
func DefaultConfig() Config {
	return Config{
		WorkDuration:   DefaultWorkDuration,
		BreakDuration:  DefaultBreakDuration,
		AutoStartBreak: true,
	}
}

// DurationFor returns the configured period length for mode.
func (config Config) DurationFor(mode Mode) time.Duration {
	if mode == ModeBreak {
		return config.BreakDuration
	}
	return config.WorkDuration
}

// WithDuration returns a copy of config with the period length for mode replaced.
func (config Config) WithDuration(mode Mode, duration time.Duration) Config {
	if mode == ModeBreak {
		config.BreakDuration = duration
	} else {
		config.WorkDuration = duration
	}
	return config
}

// Validate checks both period lengths against the accepted range.
func (config Config) Validate() error {
	if err := ValidateDuration(config.WorkDuration); err != nil {
		return fmt.Errorf("work duration: %w", err)
	}
	if err := ValidateDuration(config.BreakDuration); err != nil {
		return fmt.Errorf("break duration: %w", err)
	}
	return nil
}
