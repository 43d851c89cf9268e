// Package ledger accumulates credited focus time for the process lifetime.
package ledger

import "time"

// Ledger tracks the banked focus total and the start of the session being timed.
// The zero value is an empty ledger. Ledger holds no references, so copies are independent.
type Ledger struct {
	total        time.Duration
	sessionStart time.Time
	active       bool
}

// CreditSession adds elapsed to the total. Negative amounts credit nothing.
func (ledger *Ledger) CreditSession(elapsed time.Duration) {
	if elapsed <= 0 {
		return
	}
	ledger.total += elapsed
}

// TotalFocusTime returns the banked total.
func (ledger Ledger) TotalFocusTime() time.Duration {
	return ledger.total
}

// BeginSession marks now as the start of a focus session unless one is already active.
func (ledger *Ledger) BeginSession(now time.Time) {
	if ledger.active {
		return
	}
	ledger.sessionStart = now
	ledger.active = true
}

// BankSession credits the active session up to until and closes it.
// It returns the credited amount.
func (ledger *Ledger) BankSession(until time.Time) time.Duration {
	if !ledger.active {
		return 0
	}
	elapsed := until.Sub(ledger.sessionStart)
	if elapsed < 0 {
		elapsed = 0
	}
	ledger.CreditSession(elapsed)
	ledger.closeSession()
	return elapsed
}

// AbandonSession closes the active session without crediting it.
func (ledger *Ledger) AbandonSession() {
	ledger.closeSession()
}

// SessionStart returns the start of the active session, if any.
func (ledger Ledger) SessionStart() (time.Time, bool) {
	return ledger.sessionStart, ledger.active
}

// Unbanked returns the time accrued by the active session as of now.
func (ledger Ledger) Unbanked(now time.Time) time.Duration {
	if !ledger.active {
		return 0
	}
	elapsed := now.Sub(ledger.sessionStart)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func (ledger *Ledger) closeSession() {
	ledger.sessionStart = time.Time{}
	ledger.active = false
}
