package timekeeper

import (
	"slices"
	"time"

	"github.com/zenlizolet/Focus-Timer/internal/core/ledger"
	"github.com/zenlizolet/Focus-Timer/internal/core/model"
)

// State is the countdown state owned by a TimeKeeper.
// Deadline is set only while Running and Remaining only while Paused.
type State struct {
	Mode      model.Mode
	Status    model.Status
	Duration  time.Duration
	Deadline  time.Time
	Remaining time.Duration
}

// RemainingAt returns the time left in the current period as of now.
func (state State) RemainingAt(now time.Time) time.Duration {
	switch state.Status {
	case model.StatusRunning:
		remaining := state.Deadline.Sub(now)
		if remaining < 0 {
			return 0
		}
		return remaining
	case model.StatusPaused:
		return state.Remaining
	default:
		return state.Duration
	}
}

func idleState(mode model.Mode, duration time.Duration) State {
	return State{
		Mode:     mode,
		Status:   model.StatusIdle,
		Duration: duration,
	}
}

type operation string

const (
	opStart       operation = "start"
	opPause       operation = "pause"
	opReset       operation = "reset"
	opComplete    operation = "complete"
	opReconfigure operation = "reconfigure"
)

type ledgerEffect int

const (
	ledgerKeep ledgerEffect = iota
	ledgerBegin
	ledgerBank
	ledgerForfeit
)

// allowedFrom lists the statuses each operation acts on. Any other status makes it a no-op.
var allowedFrom = map[operation][]model.Status{
	opStart:       {model.StatusIdle, model.StatusPaused},
	opPause:       {model.StatusRunning},
	opReset:       {model.StatusIdle, model.StatusRunning, model.StatusPaused},
	opComplete:    {model.StatusRunning},
	opReconfigure: {model.StatusIdle, model.StatusRunning, model.StatusPaused},
}

// ledgerEffects lists what each operation does to the focus session, per mode.
// Pause and completion bank the session. Reset and reconfigure forfeit it.
// Breaks never touch the ledger.
var ledgerEffects = map[operation]map[model.Mode]ledgerEffect{
	opStart:       {model.ModeFocus: ledgerBegin, model.ModeBreak: ledgerKeep},
	opPause:       {model.ModeFocus: ledgerBank, model.ModeBreak: ledgerKeep},
	opComplete:    {model.ModeFocus: ledgerBank, model.ModeBreak: ledgerKeep},
	opReset:       {model.ModeFocus: ledgerForfeit, model.ModeBreak: ledgerKeep},
	opReconfigure: {model.ModeFocus: ledgerForfeit, model.ModeBreak: ledgerKeep},
}

// completion describes the hand-over when a period reaches its deadline.
type completion struct {
	next      model.Mode
	event     EventType
	autoStart bool
}

var completions = map[model.Mode]completion{
	model.ModeFocus: {next: model.ModeBreak, event: EventFocusComplete, autoStart: true},
	model.ModeBreak: {next: model.ModeFocus, event: EventBreakComplete, autoStart: false},
}

// machine is the pure timer state machine. Every transition takes the machine by value
// and returns the successor together with the events it produced.
type machine struct {
	state  State
	config model.Config
	ledger ledger.Ledger
}

func newMachine(config model.Config) machine {
	return machine{
		state:  idleState(model.ModeFocus, config.WorkDuration),
		config: config,
	}
}

func (m machine) permits(op operation) bool {
	return slices.Contains(allowedFrom[op], m.state.Status)
}

func (m *machine) applyLedger(op operation, at time.Time) {
	switch ledgerEffects[op][m.state.Mode] {
	case ledgerBegin:
		m.ledger.BeginSession(at)
	case ledgerBank:
		m.ledger.BankSession(at)
	case ledgerForfeit:
		m.ledger.AbandonSession()
	}
}

func (m machine) start(now time.Time) (machine, []Event) {
	if !m.permits(opStart) {
		return m, nil
	}
	amount := m.state.Duration
	if m.state.Status == model.StatusPaused && m.state.Remaining > 0 {
		amount = m.state.Remaining
	}
	m.state.Status = model.StatusRunning
	m.state.Deadline = now.Add(amount)
	m.state.Remaining = 0
	m.applyLedger(opStart, now)
	return m, nil
}

func (m machine) pause(now time.Time) (machine, []Event) {
	if !m.permits(opPause) {
		return m, nil
	}
	remaining := m.state.Deadline.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	m.applyLedger(opPause, now)
	m.state.Status = model.StatusPaused
	m.state.Deadline = time.Time{}
	m.state.Remaining = remaining
	return m, nil
}

func (m machine) reset() (machine, []Event) {
	m.applyLedger(opReset, time.Time{})
	m.state = idleState(m.state.Mode, m.config.DurationFor(m.state.Mode))
	return m, nil
}

func (m machine) tick(now time.Time) (machine, []Event) {
	if !m.permits(opComplete) || now.Before(m.state.Deadline) {
		return m, nil
	}
	return m.complete(now)
}

// complete hands over to the next mode. Focus credit stops at the deadline even when
// the tick arrives late.
func (m machine) complete(now time.Time) (machine, []Event) {
	rule := completions[m.state.Mode]
	creditUntil := now
	if m.state.Deadline.Before(now) {
		creditUntil = m.state.Deadline
	}
	m.applyLedger(opComplete, creditUntil)
	m.state = idleState(rule.next, m.config.DurationFor(rule.next))

	if rule.autoStart && m.config.AutoStartBreak {
		m, _ = m.start(now)
	}
	return m, []Event{m.event(rule.event, now, "")}
}

// reconfigure stores an already validated duration for mode.
func (m machine) reconfigure(mode model.Mode, duration time.Duration, now time.Time) (machine, []Event) {
	m.config = m.config.WithDuration(mode, duration)
	if mode != m.state.Mode {
		return m, nil
	}
	m.applyLedger(opReconfigure, now)
	m.state = idleState(mode, duration)
	return m, nil
}

func (m machine) reject(reason string, now time.Time) (machine, []Event) {
	return m, []Event{m.event(EventInvalidDuration, now, reason)}
}

func (m machine) setAutoStartBreak(enabled bool) (machine, []Event) {
	m.config.AutoStartBreak = enabled
	return m, nil
}

func (m machine) event(eventType EventType, now time.Time, reason string) Event {
	return Event{
		Type:       eventType,
		Mode:       m.state.Mode,
		Status:     m.state.Status,
		Duration:   m.state.Duration,
		TotalFocus: m.ledger.TotalFocusTime(),
		Reason:     reason,
		At:         now,
	}
}
