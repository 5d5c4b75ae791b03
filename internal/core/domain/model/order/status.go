package order

import (
	"errors"
	"fmt"

	"shop/internal/pkg/errs"
)

// Status represents the lifecycle state of a purchase order.
// It implements a state machine with a fixed transition table so orders
// follow the fulfillment workflow and terminal states stay terminal.
//
// State transitions:
//
//	new ──> confirmed ──> preparing ──> shipping ──> completed
//	 │          │             │
//	 └──────────┴─────────────┴──> cancelled
//	 │          │             │
//	 └──────────┴─────────────┴──> cancel_requested ──> cancelled
//	                                      │
//	                                      └──> preparing  (request rejected)
//
// completed and cancelled are terminal. The cancel_requested lane is not part
// of the generic transition table at all: orders enter it only through a
// customer's cancellation request and leave it only through an admin
// resolution, both dedicated aggregate operations.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status right after order placement.
	New

	// Confirmed indicates the order was accepted, manually or by the
	// auto-progression sweep. The cancellation grace window restarts here.
	Confirmed

	// Preparing indicates fulfillment has started. Direct cancellation is no
	// longer possible; cancellation now requires admin review.
	Preparing

	// Shipping indicates the order left the warehouse. No cancellation of any
	// kind is accepted.
	Shipping

	// Completed indicates the order was delivered. Terminal.
	Completed

	// Cancelled indicates the order was cancelled and its inventory restored. Terminal.
	Cancelled

	// CancelRequested indicates a customer asked to cancel after the grace
	// window (or during preparation) and an admin decision is pending.
	CancelRequested
)

// Sentinel errors for transition rejections; match with errors.Is.
// The concrete error types carry the attempted from/to pair.
var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrTerminalState     = errors.New("order is in a terminal state")
)

// InvalidTransitionError reports a transition that the rule table does not allow.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the attempted pair.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// TerminalStateError reports an attempt to leave completed or cancelled.
type TerminalStateError struct {
	From Status
	To   Status
}

// NewTerminalStateError creates a TerminalStateError for the attempted pair.
func NewTerminalStateError(from, to Status) *TerminalStateError {
	return &TerminalStateError{From: from, To: to}
}

func (e *TerminalStateError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrTerminalState, e.From, e.To)
}

func (e *TerminalStateError) Unwrap() error {
	return ErrTerminalState
}

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "unknown",
		New:             "new",
		Confirmed:       "confirmed",
		Preparing:       "preparing",
		Shipping:        "shipping",
		Completed:       "completed",
		Cancelled:       "cancelled",
		CancelRequested: "cancel_requested",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		New:             "new",
		Confirmed:       "confirmed",
		Preparing:       "preparing",
		Shipping:        "shipping",
		Completed:       "completed",
		Cancelled:       "cancelled",
		CancelRequested: "cancel_requested",
	}
}

// transitionTable is the rule table of legal generic transitions per status.
// CancelRequested appears in no entry on purpose: parking an order there and
// resolving it belong to the cancellation workflow, not to generic moves.
func transitionTable() map[Status][]Status {
	return map[Status][]Status{
		New:             {Confirmed, Cancelled},
		Confirmed:       {Preparing, Cancelled},
		Preparing:       {Shipping, Cancelled},
		Shipping:        {Completed},
		CancelRequested: {},
		Completed:       {},
		Cancelled:       {},
	}
}

// cancellationTransitionTable holds the transitions reserved for the
// cancellation workflow: a customer request parks a live pre-shipping order in
// cancel_requested, and an admin resolution leaves it.
func cancellationTransitionTable() map[Status][]Status {
	return map[Status][]Status{
		New:             {CancelRequested},
		Confirmed:       {CancelRequested},
		Preparing:       {CancelRequested},
		CancelRequested: {Cancelled, Preparing},
	}
}

// StatusFromString parses the wire representation of a status ("new",
// "cancel_requested", ...). Returns an error for unknown values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status ("new", "confirmed", ...).
// Invalid values render as "unknown". Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// ValidateTransition checks whether the actor may move an order from this
// status to the requested one through the generic path.
//
// Rejections, most specific first:
//   - TerminalStateError when the current status is completed or cancelled
//   - InvalidTransitionError when the pair is absent from the generic rule
//     table; any move into or out of cancel_requested is rejected here
//     regardless of actor, those are cancellation workflow territory
//
// Returns nil when the transition is allowed.
func (s Status) ValidateTransition(to Status, actor Actor) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	if s.IsTerminal() {
		return NewTerminalStateError(s, to)
	}

	for _, allowed := range transitionTable()[s] {
		if allowed == to {
			return nil
		}
	}

	return NewInvalidTransitionError(s, to)
}

// validateCancellationTransition checks a move against the cancellation
// workflow table. Only the aggregate's request/approve/reject operations
// call it.
func (s Status) validateCancellationTransition(to Status) error {
	if err := s.Validate(); err != nil {
		return err
	}

	if s.IsTerminal() {
		return NewTerminalStateError(s, to)
	}

	for _, allowed := range cancellationTransitionTable()[s] {
		if allowed == to {
			return nil
		}
	}

	return NewInvalidTransitionError(s, to)
}
