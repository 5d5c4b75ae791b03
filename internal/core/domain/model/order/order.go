package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

// CancelGraceWindow is how long after placement (and again after
// confirmation) a customer may cancel directly, without admin review.
const CancelGraceWindow = 30 * time.Minute

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrNoActiveCancelRequest is returned when an admin tries to resolve a
	// cancellation request on an order that is not in cancel_requested status.
	ErrNoActiveCancelRequest = errors.New("no active cancellation request")
)

// Order is the aggregate root for a customer purchase order. It owns the
// status state machine, the append-only status ledger, the frozen line items,
// and the cancellation bookkeeping.
//
// Invariants:
//   - the current status always equals the status of the last ledger entry
//   - ledger entries are monotonically non-decreasing in time
//   - totalPrice is computed once at creation and never changes
//   - completed and cancelled are terminal
//   - inventory restoration happens at most once (restored flag)
//
// All status mutations land in applyStatus, so the ledger append and the
// grace-window restart live on a single path. Generic moves validate against
// the fulfillment table; the cancellation request/approve/reject operations
// validate against their own.
type Order struct {
	id             kernel.UUID
	code           string
	customerID     kernel.UUID
	addressID      kernel.UUID
	items          []LineItem
	totalPrice     int64
	shippingFee    int64
	status         Status
	history        []HistoryEntry
	cancelReason   string
	cancellation   CancellationInfo
	cancelDeadline time.Time
	restored       bool

	isConstructed bool
}

// NewOrder places a new order. The total price is computed from the frozen
// line-item prices plus the shipping fee, the status is set to new with a
// single ledger entry, and the direct-cancellation deadline is set to
// now + CancelGraceWindow.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	addressID kernel.UUID,
	items []LineItem,
	shippingFee int64,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        New,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setAddressID(addressID),
		o.setItems(items),
		o.setShippingFee(shippingFee),
	); err != nil {
		return nil, err
	}

	if now.IsZero() {
		return nil, errs.NewValueIsRequiredError("order placement time")
	}

	o.code = generateCode(id, now)
	o.totalPrice = o.shippingFee
	for _, item := range o.items {
		o.totalPrice += item.Subtotal()
	}
	o.cancelDeadline = now.Add(CancelGraceWindow)

	entry, err := NewHistoryEntry(New, "order placed", ActorCustomer, now)
	if err != nil {
		return nil, err
	}
	o.history = []HistoryEntry{entry}

	return o, nil
}

// RestoreOrderParams carries the persisted state used to rebuild an aggregate.
type RestoreOrderParams struct {
	ID             kernel.UUID
	Code           string
	CustomerID     kernel.UUID
	AddressID      kernel.UUID
	Items          []LineItem
	TotalPrice     int64
	ShippingFee    int64
	Status         Status
	History        []HistoryEntry
	CancelReason   string
	Cancellation   CancellationInfo
	CancelDeadline time.Time
	Restored       bool
}

// RestoreOrder rebuilds an order from persistence. It re-checks the core
// invariants so corrupt rows never become live aggregates: the status must be
// valid, the ledger non-empty, and the last ledger entry must match the
// current status.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setCustomerID(p.CustomerID),
		o.setAddressID(p.AddressID),
		o.setItems(p.Items),
		o.setShippingFee(p.ShippingFee),
	); err != nil {
		return nil, err
	}

	if err := p.Status.Validate(); err != nil {
		return nil, err
	}
	if p.Code == "" {
		return nil, errs.NewValueIsRequiredError("order code")
	}
	if len(p.History) == 0 {
		return nil, errs.NewValueIsRequiredError("order status history")
	}
	if last := p.History[len(p.History)-1].Status(); last != p.Status {
		return nil, errs.NewValueIsInvalidErrorWithCause("order status history",
			fmt.Errorf("status %s does not match last ledger entry %s", p.Status, last))
	}

	o.code = p.Code
	o.totalPrice = p.TotalPrice
	o.status = p.Status
	o.history = append([]HistoryEntry(nil), p.History...)
	o.cancelReason = p.CancelReason
	o.cancellation = p.Cancellation
	o.cancelDeadline = p.CancelDeadline
	o.restored = p.Restored

	return o, nil
}

// Validate ensures the Order instance was created through a factory function.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Code returns the human-readable order code.
func (o *Order) Code() string {
	return o.code
}

// CustomerID returns the owning customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// AddressID returns the delivery address identifier.
func (o *Order) AddressID() kernel.UUID {
	return o.addressID
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []LineItem {
	return append([]LineItem(nil), o.items...)
}

// TotalPrice returns the immutable order total in minor units,
// including the shipping fee.
func (o *Order) TotalPrice() int64 {
	return o.totalPrice
}

// ShippingFee returns the shipping fee in minor units.
func (o *Order) ShippingFee() int64 {
	return o.shippingFee
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// History returns a copy of the append-only status ledger.
func (o *Order) History() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history...)
}

// CancelReason returns the customer's cancellation reason, if any.
func (o *Order) CancelReason() string {
	return o.cancelReason
}

// Cancellation returns the cancellation bookkeeping.
func (o *Order) Cancellation() CancellationInfo {
	return o.cancellation
}

// CancelDeadline returns the end of the direct-cancellation grace window.
func (o *Order) CancelDeadline() time.Time {
	return o.cancelDeadline
}

// Restored reports whether the order's inventory was already given back.
func (o *Order) Restored() bool {
	return o.restored
}

// ChangeStatus is the generic mutation entrypoint of the aggregate. It runs
// the transition validator, moves the order, and appends one ledger entry.
// Entering confirmed restarts the direct-cancellation grace window.
//
// Moves into or out of cancel_requested are rejected here no matter the
// actor; RequestCancellation, ApproveCancellation, and RejectCancellation are
// the only ways through that lane.
func (o *Order) ChangeStatus(to Status, note string, actor Actor, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateTransition(to, actor); err != nil {
		return err
	}

	return o.applyStatus(to, note, actor, now)
}

// applyStatus performs the already-validated move and appends the ledger
// entry. Entering confirmed restarts the grace window.
//
// The ledger stays monotonic even under clock skew: an entry timestamp never
// precedes its predecessor's.
func (o *Order) applyStatus(to Status, note string, actor Actor, now time.Time) error {
	if last := o.lastEntry(); last != nil && now.Before(last.At()) {
		now = last.At()
	}

	entry, err := NewHistoryEntry(to, note, actor, now)
	if err != nil {
		return err
	}

	o.status = to
	o.history = append(o.history, entry)

	if to == Confirmed {
		o.cancelDeadline = now.Add(CancelGraceWindow)
	}

	return nil
}

// Cancel moves the order to cancelled and records the reason.
// The caller restores inventory afterwards, exactly once, guarded by Restored.
func (o *Order) Cancel(reason string, actor Actor, now time.Time) error {
	if err := o.ChangeStatus(Cancelled, reason, actor, now); err != nil {
		return err
	}
	o.cancelReason = reason
	return nil
}

// RequestCancellation parks the order in cancel_requested on behalf of the
// customer, pending an admin decision. No inventory effect happens here.
func (o *Order) RequestCancellation(requestedBy kernel.UUID, reason string, now time.Time) error {
	if err := requestedBy.Validate(); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.status.validateCancellationTransition(CancelRequested); err != nil {
		return err
	}
	if err := o.applyStatus(CancelRequested, reason, ActorCustomer, now); err != nil {
		return err
	}
	o.cancelReason = reason
	o.cancellation.requestedBy = &requestedBy
	return nil
}

// ApproveCancellation resolves a pending cancellation request by cancelling
// the order. Fails with ErrNoActiveCancelRequest unless the order is in
// cancel_requested status, which makes repeated approvals harmless.
func (o *Order) ApproveCancellation(approvedBy kernel.UUID, now time.Time) error {
	if err := approvedBy.Validate(); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if o.status != CancelRequested {
		return ErrNoActiveCancelRequest
	}
	if err := o.status.validateCancellationTransition(Cancelled); err != nil {
		return err
	}
	if err := o.applyStatus(Cancelled, "cancellation request approved", ActorAdmin, now); err != nil {
		return err
	}
	o.cancellation.approvedBy = &approvedBy
	return nil
}

// RejectCancellation resolves a pending cancellation request by putting the
// order back on the fulfillment track (preparing) and recording the reason.
func (o *Order) RejectCancellation(rejectedBy kernel.UUID, reason string, now time.Time) error {
	if err := rejectedBy.Validate(); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if o.status != CancelRequested {
		return ErrNoActiveCancelRequest
	}
	if err := o.status.validateCancellationTransition(Preparing); err != nil {
		return err
	}
	if err := o.applyStatus(Preparing, "rejected: "+reason, ActorAdmin, now); err != nil {
		return err
	}
	o.cancellation.rejectionReason = reason
	return nil
}

// NeedsInventoryRestore reports whether the order is cancelled and its stock
// was not yet given back. Together with the per-order lock this makes the
// restore exactly-once.
func (o *Order) NeedsInventoryRestore() bool {
	return o.status == Cancelled && !o.restored
}

// MarkInventoryRestored records that the order's stock was given back.
func (o *Order) MarkInventoryRestored() {
	o.restored = true
}

func (o *Order) lastEntry() *HistoryEntry {
	if len(o.history) == 0 {
		return nil
	}
	return &o.history[len(o.history)-1]
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

func (o *Order) setAddressID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.addressID = id
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order line items")
	}

	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, dup := seen[item.ProductID()]; dup {
			return errs.NewValueIsInvalidErrorWithCause("order line items",
				fmt.Errorf("duplicate product %s", item.ProductID()))
		}
		seen[item.ProductID()] = struct{}{}
	}

	o.items = append([]LineItem(nil), items...)
	return nil
}

func (o *Order) setShippingFee(fee int64) error {
	if fee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("shipping fee is invalid",
			fmt.Errorf("%d is negative", fee))
	}
	o.shippingFee = fee
	return nil
}

func generateCode(id kernel.UUID, now time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102"), strings.ToUpper(id.String()[:8]))
}
