package order

import (
	"time"

	"shop/internal/pkg/errs"
)

// HistoryEntry is one immutable row of the status ledger: which status the
// order entered, who moved it there, when, and an optional note.
type HistoryEntry struct {
	status Status
	note   string
	actor  Actor
	at     time.Time
}

// NewHistoryEntry creates a ledger entry. Status and actor must be valid and
// the timestamp must be set.
func NewHistoryEntry(status Status, note string, actor Actor, at time.Time) (HistoryEntry, error) {
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if err := actor.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if at.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("history entry timestamp")
	}

	return HistoryEntry{
		status: status,
		note:   note,
		actor:  actor,
		at:     at,
	}, nil
}

// Status returns the status the order entered.
func (e HistoryEntry) Status() Status {
	return e.status
}

// Note returns the free-form note recorded with the change.
func (e HistoryEntry) Note() string {
	return e.note
}

// Actor returns who initiated the change.
func (e HistoryEntry) Actor() Actor {
	return e.actor
}

// At returns when the change happened.
func (e HistoryEntry) At() time.Time {
	return e.at
}
