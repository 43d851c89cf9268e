// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/zenlizolet/Focus-Timer/internal/core/display"
	"github.com/zenlizolet/Focus-Timer/internal/core/model"
)

// Timer is the part of the TimeKeeper the preferences use case drives.
type Timer interface {
	Reconfigure(mode model.Mode, minutes string) error
	SetAutoStartBreak(enabled bool)
	Config() model.Config
}

// SettingsSaver persists accepted preferences.
type SettingsSaver interface {
	SaveSettings(settings model.Settings) error
}

// SettingsSaverFunc adapts a function to SettingsSaver.
type SettingsSaverFunc func(model.Settings) error

// SaveSettings calls fn(settings).
func (fn SettingsSaverFunc) SaveSettings(settings model.Settings) error {
	return fn(settings)
}

// LoginItem registers the timer to launch at login.
type LoginItem interface {
	Apply(enabled bool) error
}

// ApplyPreferencesInput contains the raw values from the preferences form.
type ApplyPreferencesInput struct {
	WorkMinutes    string
	BreakMinutes   string
	AutoStartBreak bool
	Fullscreen     bool
	Notifications  bool
	LaunchAtLogin  bool
	PauseWhenIdle  bool
}

// ApplyPreferencesOutput contains the result of the ApplyPreferences use case.
type ApplyPreferencesOutput struct {
	Settings model.Settings
	Messages []string // One confirmation per reconfigured period
}

// ApplyPreferences validates the preferences form, reconfigures the timer and saves settings.
type ApplyPreferences struct {
	timer            Timer
	saver            SettingsSaver
	loginItem        LoginItem
	decimalSeparator rune
}

// NewApplyPreferences creates a new ApplyPreferences use case.
func NewApplyPreferences(timer Timer, saver SettingsSaver, decimalSeparator rune) *ApplyPreferences {
	if decimalSeparator == 0 {
		decimalSeparator = model.InvariantSeparator
	}
	return &ApplyPreferences{
		timer:            timer,
		saver:            saver,
		decimalSeparator: decimalSeparator,
	}
}

// WithLoginItem sets the login registration updated from LaunchAtLogin.
func (uc *ApplyPreferences) WithLoginItem(loginItem LoginItem) *ApplyPreferences {
	uc.loginItem = loginItem
	return uc
}

// Execute applies the form. Both period lengths are validated before anything changes;
// a period is reconfigured only when its length differs from the current one, so an
// unchanged field never resets a running period.
func (uc *ApplyPreferences) Execute(_ context.Context, in ApplyPreferencesInput) (*ApplyPreferencesOutput, error) {
	work, err := model.ParseMinutesDuration(in.WorkMinutes, uc.decimalSeparator)
	if err != nil {
		return nil, uc.rejected(model.ModeFocus, in.WorkMinutes)
	}
	rest, err := model.ParseMinutesDuration(in.BreakMinutes, uc.decimalSeparator)
	if err != nil {
		return nil, uc.rejected(model.ModeBreak, in.BreakMinutes)
	}

	current := uc.timer.Config()
	out := &ApplyPreferencesOutput{}

	if work != current.WorkDuration {
		if err := uc.timer.Reconfigure(model.ModeFocus, in.WorkMinutes); err != nil {
			return nil, fmt.Errorf("focus minutes: %w", err)
		}
		out.Messages = append(out.Messages, display.Reconfigured(model.ModeFocus, work))
	}
	if rest != current.BreakDuration {
		if err := uc.timer.Reconfigure(model.ModeBreak, in.BreakMinutes); err != nil {
			return nil, fmt.Errorf("break minutes: %w", err)
		}
		out.Messages = append(out.Messages, display.Reconfigured(model.ModeBreak, rest))
	}
	uc.timer.SetAutoStartBreak(in.AutoStartBreak)

	out.Settings = model.Settings{
		WorkDuration:   work,
		BreakDuration:  rest,
		AutoStartBreak: in.AutoStartBreak,
		Fullscreen:     in.Fullscreen,
		Notifications:  in.Notifications,
		LaunchAtLogin:  in.LaunchAtLogin,
		PauseWhenIdle:  in.PauseWhenIdle,
	}
	if uc.loginItem != nil {
		if err := uc.loginItem.Apply(in.LaunchAtLogin); err != nil {
			return out, fmt.Errorf("launch at login: %w", err)
		}
	}
	if uc.saver != nil {
		if err := uc.saver.SaveSettings(out.Settings); err != nil {
			return out, fmt.Errorf("save settings: %w", err)
		}
	}
	return out, nil
}

// rejected routes invalid input through the timer so observers see the rejection.
func (uc *ApplyPreferences) rejected(mode model.Mode, minutes string) error {
	err := uc.timer.Reconfigure(mode, minutes)
	if err == nil {
		err = fmt.Errorf("%w: %q", model.ErrInvalidDuration, minutes)
	}
	if mode == model.ModeBreak {
		return fmt.Errorf("break minutes: %w", err)
	}
	return fmt.Errorf("focus minutes: %w", err)
}
