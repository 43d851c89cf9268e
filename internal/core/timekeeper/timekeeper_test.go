package timekeeper

import (
	"bytes"
	"context"
	"log/slog"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenlizolet/Focus-Timer/internal/core/clock"
	"github.com/zenlizolet/Focus-Timer/internal/core/model"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (rec *recorder) Notify(event Event) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.events = append(rec.events, event)
}

func (rec *recorder) types() []EventType {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	types := make([]EventType, 0, len(rec.events))
	for _, event := range rec.events {
		types = append(types, event.Type)
	}
	return types
}

func newTestKeeper(config model.Config) (*TimeKeeper, *clock.Manual, *recorder) {
	manual := clock.NewManual(t0)
	keeper := New(config, Config{Clock: manual, DecimalSeparator: ','})
	rec := &recorder{}
	keeper.AddNotifier(rec)
	return keeper, manual, rec
}

func TestNewDefaults(t *testing.T) {
	keeper := New(model.DefaultConfig(), Config{})
	assert.Equal(t, DefaultTickInterval, keeper.options.TickInterval)
	assert.Equal(t, clock.SystemClock, keeper.options.Clock)
	assert.NotNil(t, keeper.options.Logger)
	assert.Equal(t, model.InvariantSeparator, keeper.options.DecimalSeparator)
	assert.Equal(t, model.ModeFocus, keeper.Mode())
	assert.Equal(t, model.StatusIdle, keeper.Status())
	assert.Equal(t, 50*time.Minute, keeper.RemainingTime(time.Now()))
}

func TestReconfigureThenRemainingIsExact(t *testing.T) {
	keeper, manual, _ := newTestKeeper(testConfig(false))
	keeper.Start()

	for minutes := model.MinMinutes; minutes <= model.MaxMinutes; minutes++ {
		require.NoError(t, keeper.Reconfigure(model.ModeFocus, strconv.Itoa(minutes)))
		require.Equal(t, time.Duration(minutes)*time.Minute, keeper.RemainingTime(manual.Now()))
		require.Equal(t, model.StatusIdle, keeper.Status())
	}
}

func TestReconfigureBoundaries(t *testing.T) {
	tests := []struct {
		input    string
		accepted bool
		minutes  int
	}{
		{"0", false, 0},
		{"241", false, 0},
		{"1", true, 1},
		{"240", true, 240},
		{"50,5", true, 50},
		{"50.5", true, 50},
		{"abc", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			keeper, manual, rec := newTestKeeper(testConfig(false))
			before := keeper.Snapshot(manual.Now())

			err := keeper.Reconfigure(model.ModeFocus, tt.input)
			if !tt.accepted {
				require.ErrorIs(t, err, model.ErrInvalidDuration)
				assert.Equal(t, before, keeper.Snapshot(manual.Now()), "rejection must not change state")
				assert.Equal(t, []EventType{EventInvalidDuration}, rec.types())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, time.Duration(tt.minutes)*time.Minute, keeper.Config().WorkDuration)
			assert.Empty(t, rec.types())
		})
	}
}

func TestReconfigureRejectedWhileRunningKeepsCountdown(t *testing.T) {
	keeper, manual, rec := newTestKeeper(testConfig(false))
	keeper.Start()
	manual.Advance(10 * time.Second)

	err := keeper.Reconfigure(model.ModeFocus, "999")
	require.Error(t, err)
	assert.Equal(t, model.StatusRunning, keeper.Status())
	assert.Equal(t, 50*time.Second, keeper.RemainingTime(manual.Now()))

	require.Len(t, rec.events, 1)
	assert.Contains(t, rec.events[0].Reason, "outside")
}

func TestReconfigureDurationValidates(t *testing.T) {
	keeper, _, rec := newTestKeeper(testConfig(false))
	require.NoError(t, keeper.ReconfigureDuration(model.ModeBreak, 10*time.Minute))
	assert.Equal(t, 10*time.Minute, keeper.Config().BreakDuration)

	assert.ErrorIs(t, keeper.ReconfigureDuration(model.ModeBreak, 0), model.ErrInvalidDuration)
	assert.ErrorIs(t, keeper.ReconfigureDuration(model.Mode("nap"), time.Minute), model.ErrInvalidDuration)
	assert.Equal(t, []EventType{EventInvalidDuration, EventInvalidDuration}, rec.types())
}

func TestStartWithoutPriorRemainingUsesFullDuration(t *testing.T) {
	keeper, manual, _ := newTestKeeper(testConfig(false))
	keeper.Start()
	assert.Equal(t, time.Minute, keeper.RemainingTime(manual.Now()))
}

func TestPauseResumeKeepsRemaining(t *testing.T) {
	keeper, manual, _ := newTestKeeper(testConfig(false))
	keeper.Start()
	manual.Advance(25 * time.Second)
	keeper.Pause()

	manual.Advance(10 * time.Minute)
	assert.Equal(t, 35*time.Second, keeper.RemainingTime(manual.Now()))

	keeper.Start()
	manual.Advance(5 * time.Second)
	assert.Equal(t, 30*time.Second, keeper.RemainingTime(manual.Now()))
}

func TestResetNeverChangesTotal(t *testing.T) {
	keeper, manual, _ := newTestKeeper(testConfig(false))
	keeper.Start()
	manual.Advance(20 * time.Second)
	keeper.Pause()
	require.Equal(t, 20*time.Second, keeper.TotalFocusTime(), "pause banks elapsed focus")

	keeper.Start()
	manual.Advance(30 * time.Second)
	keeper.Reset()
	assert.Equal(t, 20*time.Second, keeper.TotalFocusTime())
	assert.Equal(t, model.StatusIdle, keeper.Status())
	assert.Equal(t, time.Minute, keeper.RemainingTime(manual.Now()))

	keeper.Reset()
	assert.Equal(t, 20*time.Second, keeper.TotalFocusTime())
}

func TestFocusCompletionScenario(t *testing.T) {
	keeper, manual, rec := newTestKeeper(testConfig(false))
	keeper.Start()

	keeper.Tick(manual.Advance(61 * time.Second))

	assert.Equal(t, []EventType{EventFocusComplete}, rec.types())
	assert.Equal(t, time.Minute, keeper.TotalFocusTime())
	assert.Equal(t, model.ModeBreak, keeper.Mode())
	assert.Equal(t, model.StatusIdle, keeper.Status())

	keeper.Tick(manual.Now())
	assert.Len(t, rec.types(), 1, "idle tick is a no-op")
}

func TestAutoStartBreak(t *testing.T) {
	keeper, manual, rec := newTestKeeper(testConfig(false))
	keeper.SetAutoStartBreak(true)
	keeper.Start()

	completedAt := manual.Advance(time.Minute)
	keeper.Tick(completedAt)

	state := keeper.State()
	assert.Equal(t, model.ModeBreak, state.Mode)
	assert.Equal(t, model.StatusRunning, state.Status)
	assert.Equal(t, completedAt.Add(5*time.Minute), state.Deadline)

	keeper.Tick(manual.Advance(5 * time.Minute))
	assert.Equal(t, model.ModeFocus, keeper.Mode())
	assert.Equal(t, model.StatusIdle, keeper.Status())
	assert.Equal(t, []EventType{EventFocusComplete, EventBreakComplete}, rec.types())
	assert.Equal(t, time.Minute, keeper.TotalFocusTime())
}

func TestReconfigureBreakWhileFocusRunning(t *testing.T) {
	keeper, manual, _ := newTestKeeper(testConfig(false))
	keeper.Start()
	manual.Advance(15 * time.Second)

	require.NoError(t, keeper.Reconfigure(model.ModeBreak, "10"))
	assert.Equal(t, model.StatusRunning, keeper.Status())
	assert.Equal(t, 45*time.Second, keeper.RemainingTime(manual.Now()))

	keeper.Tick(manual.Advance(45 * time.Second))
	assert.Equal(t, model.ModeBreak, keeper.Mode())
	assert.Equal(t, 10*time.Minute, keeper.RemainingTime(manual.Now()))
}

func TestSnapshot(t *testing.T) {
	keeper, manual, _ := newTestKeeper(testConfig(true))
	keeper.Start()
	manual.Advance(12 * time.Second)

	snapshot := keeper.Snapshot(manual.Now())
	assert.Equal(t, model.ModeFocus, snapshot.Mode)
	assert.Equal(t, model.StatusRunning, snapshot.Status)
	assert.Equal(t, 48*time.Second, snapshot.RemainingTime)
	assert.Equal(t, 12*time.Second, snapshot.UnbankedFocus)
	assert.Zero(t, snapshot.TotalFocus)
	assert.True(t, snapshot.AutoStartBreak)
	assert.Equal(t, time.Minute, snapshot.Config.WorkDuration)
}

func TestSubscribeReceivesEventsAndClose(t *testing.T) {
	keeper, manual, _ := newTestKeeper(testConfig(false))
	events := keeper.Subscribe(2)

	keeper.Start()
	keeper.Tick(manual.Advance(time.Minute))

	select {
	case event := <-events:
		assert.Equal(t, EventFocusComplete, event.Type)
		assert.Equal(t, model.ModeBreak, event.Mode)
		assert.Equal(t, 5*time.Minute, event.Duration)
		assert.Equal(t, manual.Now(), event.At)
	default:
		t.Fatal("expected a focus complete event")
	}

	keeper.Close()
	_, open := <-events
	assert.False(t, open)

	late := keeper.Subscribe(1)
	_, open = <-late
	assert.False(t, open, "subscribing after close yields a closed channel")
	keeper.Close()
}

func TestSubscribeDropsWhenFull(t *testing.T) {
	keeper, manual, _ := newTestKeeper(testConfig(false))
	events := keeper.Subscribe(1)

	require.Error(t, keeper.Reconfigure(model.ModeFocus, "x"))
	require.Error(t, keeper.Reconfigure(model.ModeFocus, "y"))
	keeper.Start()
	keeper.Tick(manual.Advance(time.Minute))

	assert.Len(t, events, 1)
}

func TestNotifierMayCallBack(t *testing.T) {
	keeper, manual, _ := newTestKeeper(testConfig(false))
	keeper.AddNotifier(NotifierFunc(func(event Event) {
		if event.Type == EventFocusComplete {
			keeper.Start()
		}
	}))

	keeper.Start()
	keeper.Tick(manual.Advance(time.Minute))
	assert.Equal(t, model.StatusRunning, keeper.Status())
	assert.Equal(t, model.ModeBreak, keeper.Mode())
}

func TestRunTicksUntilCancelled(t *testing.T) {
	manual := clock.NewManual(t0)
	keeper := New(testConfig(false), Config{TickInterval: time.Millisecond, Clock: manual})
	events := keeper.Subscribe(1)
	keeper.Start()
	manual.Advance(2 * time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		keeper.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return len(events) == 1
	}, time.Second, time.Millisecond)
	assert.Equal(t, model.ModeBreak, keeper.Mode())

	cancel()
	require.Eventually(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Second, time.Millisecond)
}

func TestLogsTransitions(t *testing.T) {
	var buffer bytes.Buffer
	manual := clock.NewManual(t0)
	logger := slog.New(slog.NewTextHandler(&buffer, &slog.HandlerOptions{Level: slog.LevelDebug}))
	keeper := New(testConfig(false), Config{Clock: manual, Logger: logger})

	keeper.Start()
	keeper.Tick(manual.Advance(time.Minute))
	_ = keeper.Reconfigure(model.ModeFocus, "0")

	output := buffer.String()
	assert.Contains(t, output, "op=start")
	assert.Contains(t, output, "event=focus_complete")
	assert.Contains(t, output, "reconfigure rejected")
}
