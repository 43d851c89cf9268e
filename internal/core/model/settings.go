package model

import "time"

// Settings defines editable user preferences.
type Settings struct {
	WorkDuration   time.Duration
	BreakDuration  time.Duration
	AutoStartBreak bool

	Fullscreen    bool
	Notifications bool
	LaunchAtLogin bool
	PauseWhenIdle bool
}

// DefaultSettings returns default settings for the focus timer.
func DefaultSettings() Settings {
	config := DefaultConfig()
	return Settings{
		WorkDuration:   config.WorkDuration,
		BreakDuration:  config.BreakDuration,
		AutoStartBreak: config.AutoStartBreak,
		Fullscreen:     false,
		Notifications:  true,
	}
}

// TimerConfig converts settings to the timer configuration.
func (settings Settings) TimerConfig() Config {
	return Config{
		WorkDuration:   settings.WorkDuration,
		BreakDuration:  settings.BreakDuration,
		AutoStartBreak: settings.AutoStartBreak,
	}
}

// WithTimerConfig copies the timer configuration back into settings.
func (settings Settings) WithTimerConfig(config Config) Settings {
	settings.WorkDuration = config.WorkDuration
	settings.BreakDuration = config.BreakDuration
	settings.AutoStartBreak = config.AutoStartBreak
	return settings
}
