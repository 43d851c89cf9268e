package timekeeper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/zenlizolet/Focus-Timer/internal/core/clock"
	"github.com/zenlizolet/Focus-Timer/internal/core/model"
)

// DefaultTickInterval is the scheduler cadence used when none is configured.
const DefaultTickInterval = 200 * time.Millisecond

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval     time.Duration
	Clock            clock.Clock
	Logger           *slog.Logger
	DecimalSeparator rune
}

// Snapshot is everything a renderer needs for one frame.
type Snapshot struct {
	State
	RemainingTime  time.Duration
	TotalFocus     time.Duration
	UnbankedFocus  time.Duration
	AutoStartBreak bool
	Config         model.Config
}

// TimeKeeper is the focus/break state machine.
// All operations are serialized by an internal mutex; notifiers run after it is released.
type TimeKeeper struct {
	mu        sync.Mutex
	machine   machine
	options   Config
	notifiers []Notifier
	events    []chan Event
	closed    bool
}

// New creates a TimeKeeper in Focus/Idle with a zero ledger.
func New(config model.Config, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = DefaultTickInterval
	}
	if options.Clock == nil {
		options.Clock = clock.SystemClock
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if options.DecimalSeparator == 0 {
		options.DecimalSeparator = model.InvariantSeparator
	}

	return &TimeKeeper{
		machine: newMachine(config),
		options: options,
	}
}

// AddNotifier registers a push observer.
func (keeper *TimeKeeper) AddNotifier(notifier Notifier) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.notifiers = append(keeper.notifiers, notifier)
}

// Subscribe registers a new observer channel.
// Sends never block; a full channel drops the event.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	if keeper.closed {
		close(ch)
	} else {
		keeper.events = append(keeper.events, ch)
	}
	keeper.mu.Unlock()
	return ch
}

// Close closes all subscription channels.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Start begins or resumes the current period.
func (keeper *TimeKeeper) Start() {
	now := keeper.options.Clock.Now()
	keeper.apply("start", func(m machine) (machine, []Event) {
		return m.start(now)
	})
}

// Pause freezes the countdown and banks the running focus session.
func (keeper *TimeKeeper) Pause() {
	now := keeper.options.Clock.Now()
	keeper.apply("pause", func(m machine) (machine, []Event) {
		return m.pause(now)
	})
}

// Reset returns the current period to Idle with its configured length.
// Unbanked focus time is forfeited.
func (keeper *TimeKeeper) Reset() {
	keeper.apply("reset", func(m machine) (machine, []Event) {
		return m.reset()
	})
}

// Tick completes the running period once now reaches its deadline.
func (keeper *TimeKeeper) Tick(now time.Time) {
	keeper.apply("tick", func(m machine) (machine, []Event) {
		return m.tick(now)
	})
}

// Reconfigure sets the period length for mode from user-entered minutes.
// Rejected input leaves all state unchanged, emits EventInvalidDuration and returns
// an error wrapping model.ErrInvalidDuration.
func (keeper *TimeKeeper) Reconfigure(mode model.Mode, minutes string) error {
	duration, err := model.ParseMinutesDuration(minutes, keeper.options.DecimalSeparator)
	return keeper.reconfigure(mode, duration, err)
}

// ReconfigureDuration is Reconfigure for an already converted duration.
func (keeper *TimeKeeper) ReconfigureDuration(mode model.Mode, duration time.Duration) error {
	return keeper.reconfigure(mode, duration, model.ValidateDuration(duration))
}

func (keeper *TimeKeeper) reconfigure(mode model.Mode, duration time.Duration, err error) error {
	now := keeper.options.Clock.Now()
	if err == nil && mode != model.ModeFocus && mode != model.ModeBreak {
		err = fmt.Errorf("%w: unknown mode %q", model.ErrInvalidDuration, mode)
	}
	if err != nil {
		keeper.options.Logger.Warn("reconfigure rejected", "mode", mode, "error", err)
		keeper.apply("reconfigure", func(m machine) (machine, []Event) {
			return m.reject(err.Error(), now)
		})
		return err
	}

	keeper.options.Logger.Info("reconfigured", "mode", mode, "duration", duration)
	keeper.apply("reconfigure", func(m machine) (machine, []Event) {
		return m.reconfigure(mode, duration, now)
	})
	return nil
}

// SetAutoStartBreak toggles whether a completed focus period starts its break right away.
func (keeper *TimeKeeper) SetAutoStartBreak(enabled bool) {
	keeper.apply("auto-start", func(m machine) (machine, []Event) {
		return m.setAutoStartBreak(enabled)
	})
}

// Mode returns the current mode.
func (keeper *TimeKeeper) Mode() model.Mode {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.machine.state.Mode
}

// Status returns the current status.
func (keeper *TimeKeeper) Status() model.Status {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.machine.state.Status
}

// State returns a copy of the countdown state.
func (keeper *TimeKeeper) State() State {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.machine.state
}

// RemainingTime returns the time left in the current period as of now.
func (keeper *TimeKeeper) RemainingTime(now time.Time) time.Duration {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.machine.state.RemainingAt(now)
}

// TotalFocusTime returns the banked focus total.
func (keeper *TimeKeeper) TotalFocusTime() time.Duration {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.machine.ledger.TotalFocusTime()
}

// Config returns the current configuration.
func (keeper *TimeKeeper) Config() model.Config {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.machine.config
}

// Snapshot returns a consistent view of the timer as of now.
func (keeper *TimeKeeper) Snapshot(now time.Time) Snapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	current := keeper.machine
	return Snapshot{
		State:          current.state,
		RemainingTime:  current.state.RemainingAt(now),
		TotalFocus:     current.ledger.TotalFocusTime(),
		UnbankedFocus:  current.ledger.Unbanked(now),
		AutoStartBreak: current.config.AutoStartBreak,
		Config:         current.config,
	}
}

// Run drives Tick at the configured cadence until ctx is done.
// The deadline is absolute, so late or missed ticks never cause drift.
func (keeper *TimeKeeper) Run(ctx context.Context) {
	ticker := time.NewTicker(keeper.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			keeper.Tick(keeper.options.Clock.Now())
		}
	}
}

func (keeper *TimeKeeper) apply(name string, transition func(machine) (machine, []Event)) {
	keeper.mu.Lock()
	before := keeper.machine.state
	next, events := transition(keeper.machine)
	keeper.machine = next
	after := next.state
	keeper.emitLocked(events)
	notifiers := append([]Notifier(nil), keeper.notifiers...)
	keeper.mu.Unlock()

	if before.Mode != after.Mode || before.Status != after.Status {
		keeper.options.Logger.Debug("transition",
			"op", name,
			"from_mode", before.Mode,
			"from_status", before.Status,
			"to_mode", after.Mode,
			"to_status", after.Status,
		)
	}
	for _, event := range events {
		if event.Type != EventInvalidDuration {
			keeper.options.Logger.Info("period complete",
				"event", event.Type,
				"next_mode", event.Mode,
				"next_status", event.Status,
				"total_focus", event.TotalFocus,
			)
		}
		for _, notifier := range notifiers {
			notifier.Notify(event)
		}
	}
}

func (keeper *TimeKeeper) emitLocked(events []Event) {
	for _, event := range events {
		for _, ch := range keeper.events {
			select {
			case ch <- event:
			default:
			}
		}
	}
}
