package preferences

import (
	"errors"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenlizolet/Focus-Timer/internal/core/model"
	"github.com/zenlizolet/Focus-Timer/internal/usecase"
)

func TestWindowShowsSettings(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	settings := model.DefaultSettings()
	settings.BreakDuration = 10 * time.Minute
	prefs := New(app, settings, nil)

	assert.Equal(t, usecase.ApplyPreferencesInput{
		WorkMinutes:    "50",
		BreakMinutes:   "10",
		AutoStartBreak: true,
		Notifications:  true,
	}, prefs.Input())
}

func TestSavePassesFormValues(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var got []usecase.ApplyPreferencesInput
	prefs := New(app, model.DefaultSettings(), func(input usecase.ApplyPreferencesInput) error {
		got = append(got, input)
		return nil
	})
	prefs.Show()

	prefs.workMinutes.SetText("25,5")
	test.Tap(prefs.fullscreen)
	test.Tap(prefs.launchAtLogin)
	test.Tap(prefs.saveButton)

	require.Len(t, got, 1)
	assert.Equal(t, "25,5", got[0].WorkMinutes)
	assert.Equal(t, "5", got[0].BreakMinutes)
	assert.True(t, got[0].Fullscreen)
	assert.True(t, got[0].LaunchAtLogin)
}

func TestSaveErrorKeepsValues(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	calls := 0
	prefs := New(app, model.DefaultSettings(), func(usecase.ApplyPreferencesInput) error {
		calls++
		return errors.New("invalid duration")
	})
	prefs.Show()

	prefs.breakMinutes.SetText("0")
	test.Tap(prefs.saveButton)

	assert.Equal(t, 1, calls)
	assert.Equal(t, "0", prefs.Input().BreakMinutes)
}
