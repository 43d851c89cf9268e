package app

import (
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenlizolet/Focus-Timer/internal/core/clock"
	"github.com/zenlizolet/Focus-Timer/internal/core/model"
	"github.com/zenlizolet/Focus-Timer/internal/core/timekeeper"
	"github.com/zenlizolet/Focus-Timer/internal/storage"
	"github.com/zenlizolet/Focus-Timer/internal/usecase"
)

func newTestApp(t *testing.T) (*App, *clock.Manual, string) {
	t.Helper()
	fyneApp := test.NewApp()
	t.Cleanup(fyneApp.Quit)

	manual := clock.NewManual(time.Date(2026, 5, 4, 8, 30, 0, 0, time.UTC))
	path := filepath.Join(t.TempDir(), "settings.yaml")
	timer := New(fyneApp, Options{
		AppName:          "FocusTimerTest",
		Settings:         model.DefaultSettings(),
		SettingsPath:     path,
		DecimalSeparator: ',',
		Clock:            manual,
	})
	t.Cleanup(timer.keeper.Close)
	return timer, manual, path
}

func TestNewStartsIdleInFocus(t *testing.T) {
	timer, manual, _ := newTestApp(t)

	snapshot := timer.Keeper().Snapshot(manual.Now())
	assert.Equal(t, model.ModeFocus, snapshot.Mode)
	assert.Equal(t, model.StatusIdle, snapshot.Status)
	assert.Equal(t, 50*time.Minute, snapshot.RemainingTime)
}

func TestCommandsDriveKeeper(t *testing.T) {
	timer, manual, _ := newTestApp(t)

	timer.command(timer.keeper.Start)()
	manual.Advance(20 * time.Minute)
	timer.command(timer.keeper.Pause)()

	assert.Equal(t, model.StatusPaused, timer.keeper.Status())
	assert.Equal(t, 20*time.Minute, timer.keeper.TotalFocusTime())
	assert.Equal(t, 30*time.Minute, timer.keeper.RemainingTime(manual.Now()))
}

func TestSavePreferencesPersists(t *testing.T) {
	timer, _, path := newTestApp(t)

	err := timer.savePreferences(usecase.ApplyPreferencesInput{
		WorkMinutes:    "25",
		BreakMinutes:   "5",
		AutoStartBreak: false,
		Notifications:  false,
	})
	require.NoError(t, err)

	assert.Equal(t, 25*time.Minute, timer.keeper.Config().WorkDuration)
	assert.False(t, timer.keeper.Config().AutoStartBreak)

	saved, err := storage.LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, model.Settings{
		WorkDuration:  25 * time.Minute,
		BreakDuration: 5 * time.Minute,
	}, saved)
}

func TestSavePreferencesRejectsInvalidMinutes(t *testing.T) {
	timer, _, path := newTestApp(t)

	err := timer.savePreferences(usecase.ApplyPreferencesInput{
		WorkMinutes:  "241",
		BreakMinutes: "5",
	})

	require.ErrorIs(t, err, model.ErrInvalidDuration)
	assert.Equal(t, model.DefaultConfig(), timer.keeper.Config())
	assert.NoFileExists(t, path)
}

type recordedLogin struct {
	applied []bool
}

func (login *recordedLogin) Apply(enabled bool) error {
	login.applied = append(login.applied, enabled)
	return nil
}

func TestSavePreferencesAppliesLoginItem(t *testing.T) {
	fyneApp := test.NewApp()
	t.Cleanup(fyneApp.Quit)
	login := &recordedLogin{}
	timer := New(fyneApp, Options{
		AppName:   "FocusTimerTest",
		Settings:  model.DefaultSettings(),
		Clock:     clock.NewManual(time.Date(2026, 5, 4, 8, 30, 0, 0, time.UTC)),
		LoginItem: login,
	})
	t.Cleanup(timer.keeper.Close)

	require.NoError(t, timer.savePreferences(usecase.ApplyPreferencesInput{
		WorkMinutes:   "50",
		BreakMinutes:  "5",
		LaunchAtLogin: true,
	}))

	assert.Equal(t, []bool{true}, login.applied)
	assert.True(t, timer.settings.LaunchAtLogin)
}

func TestFullscreenToggleUpdatesSettings(t *testing.T) {
	timer, _, path := newTestApp(t)

	timer.window.ToggleFullscreen()

	assert.True(t, timer.settings.Fullscreen)
	timer.showPreferences()
	assert.True(t, timer.preferences.Input().Fullscreen)

	saved, err := storage.LoadSettingsFile(path)
	require.NoError(t, err)
	assert.True(t, saved.Fullscreen)

	require.NoError(t, timer.savePreferences(timer.preferences.Input()))
	assert.True(t, timer.settings.Fullscreen, "saving the form keeps the keyboard toggle")
}

func TestRedrawOnEventsStopsWhenKeeperCloses(t *testing.T) {
	timer, _, _ := newTestApp(t)
	events := make(chan timekeeper.Event, 1)
	events <- timekeeper.Event{Type: timekeeper.EventInvalidDuration}
	close(events)

	done := make(chan struct{})
	go func() {
		timer.redrawOnEvents(events)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("redraw loop did not stop")
	}
}
