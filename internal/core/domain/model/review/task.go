// Package review provides the pending review task created when an order
// completes. One task exists per (customer, product, order) triple; repeated
// completion signals must not create duplicates, which the persistence layer
// enforces with a composite unique key and insert-if-absent writes.
package review

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

// ErrTaskIsNotConstructed is returned when a Task instance was not created
// through the NewPendingTask or RestoreTask factory functions.
var ErrTaskIsNotConstructed = errors.New("Task must be created via NewPendingTask or RestoreTask constructor")

// TaskStatus is the review task lifecycle: pending until the customer writes
// the review, done afterwards.
type TaskStatus int

const (
	// TaskStatusUnknown represents an invalid or undefined task status.
	TaskStatusUnknown TaskStatus = iota

	// TaskPending means the customer has not reviewed the product yet.
	TaskPending

	// TaskDone means the review was written.
	TaskDone
)

// String returns "pending" or "done"; invalid values render as "unknown".
func (s TaskStatus) String() string {
	switch s {
	case TaskPending:
		return "pending"
	case TaskDone:
		return "done"
	default:
		return "unknown"
	}
}

// Validate checks if the TaskStatus value is valid.
func (s TaskStatus) Validate() error {
	if s != TaskPending && s != TaskDone {
		return errs.NewValueIsInvalidError("task status is invalid")
	}
	return nil
}

// TaskStatusFromString parses a stored status name back into a TaskStatus.
func TaskStatusFromString(s string) (TaskStatus, error) {
	switch s {
	case TaskPending.String():
		return TaskPending, nil
	case TaskDone.String():
		return TaskDone, nil
	default:
		return TaskStatusUnknown, errs.NewValueIsInvalidError("task status")
	}
}

// Task is one review-eligibility entry, keyed by (customer, product, order).
type Task struct {
	customerID kernel.UUID
	productID  kernel.UUID
	orderID    kernel.UUID
	status     TaskStatus

	isConstructed bool
}

// NewPendingTask creates a pending review task for one purchased product.
func NewPendingTask(customerID, productID, orderID kernel.UUID) (*Task, error) {
	return RestoreTask(customerID, productID, orderID, TaskPending)
}

// RestoreTask rebuilds a task from persistence.
func RestoreTask(customerID, productID, orderID kernel.UUID, status TaskStatus) (*Task, error) {
	if err := errors.Join(
		customerID.Validate(),
		productID.Validate(),
		orderID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Task{
		customerID:    customerID,
		productID:     productID,
		orderID:       orderID,
		status:        status,
		isConstructed: true,
	}, nil
}

// Validate ensures the Task instance was created through a factory function.
func (t *Task) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTaskIsNotConstructed
	}
	return nil
}

// CustomerID returns the reviewer.
func (t *Task) CustomerID() kernel.UUID {
	return t.customerID
}

// ProductID returns the product awaiting review.
func (t *Task) ProductID() kernel.UUID {
	return t.productID
}

// OrderID returns the completed order that made the review eligible.
func (t *Task) OrderID() kernel.UUID {
	return t.orderID
}

// Status returns the task status.
func (t *Task) Status() TaskStatus {
	return t.status
}

// MarkDone records that the review was written.
func (t *Task) MarkDone() error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.status = TaskDone
	return nil
}
