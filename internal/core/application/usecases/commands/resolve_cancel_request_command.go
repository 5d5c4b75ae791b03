package commands

import (
	"errors"
	"fmt"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

var ErrResolveCancelRequestCommandIsNotConstructed = errors.New(
	"ResolveCancelRequestCommand must be created via NewResolveCancelRequestCommand constructor",
)

// CancelResolution is the admin's decision on a pending cancellation request.
type CancelResolution int

const (
	// ResolutionUnknown represents an invalid or undefined resolution.
	ResolutionUnknown CancelResolution = iota

	// ResolutionApprove cancels the order and restores its inventory.
	ResolutionApprove

	// ResolutionReject puts the order back on the fulfillment track.
	ResolutionReject
)

// ResolutionFromString parses "approve" or "reject".
func ResolutionFromString(s string) (CancelResolution, error) {
	switch s {
	case "approve":
		return ResolutionApprove, nil
	case "reject":
		return ResolutionReject, nil
	default:
		return ResolutionUnknown, errs.NewValueIsInvalidErrorWithCause("resolution is invalid",
			fmt.Errorf("%q is not a valid resolution", s))
	}
}

// Validate checks if the CancelResolution value is valid.
func (r CancelResolution) Validate() error {
	if r != ResolutionApprove && r != ResolutionReject {
		return errs.NewValueIsInvalidErrorWithCause("resolution is invalid",
			fmt.Errorf("%d is not a valid resolution", r))
	}
	return nil
}

// String returns "approve" or "reject"; invalid values render as "unknown".
func (r CancelResolution) String() string {
	switch r {
	case ResolutionApprove:
		return "approve"
	case ResolutionReject:
		return "reject"
	default:
		return "unknown"
	}
}

// ResolveCancelRequestCommand represents an admin decision on an order
// sitting in cancel_requested.
type ResolveCancelRequestCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	adminID         kernel.UUID
	resolution      CancelResolution
	rejectionReason string

	guard guard.ConstructorGuard
}

// NewResolveCancelRequestCommand creates an admin resolution command.
// A rejection requires a reason; an approval ignores it.
func NewResolveCancelRequestCommand(
	orderID kernel.UUID,
	adminID kernel.UUID,
	resolution CancelResolution,
	rejectionReason string,
) (ResolveCancelRequestCommand, error) {
	cmd := ResolveCancelRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		adminID.Validate(),
		resolution.Validate(),
	); err != nil {
		return ResolveCancelRequestCommand{}, err
	}
	if resolution == ResolutionReject && rejectionReason == "" {
		return ResolveCancelRequestCommand{}, errs.NewValueIsRequiredError("rejection reason")
	}

	cmd.orderID = orderID
	cmd.adminID = adminID
	cmd.resolution = resolution
	cmd.rejectionReason = rejectionReason

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveCancelRequestCommand) Validate() error {
	return c.guard.Validate(ErrResolveCancelRequestCommandIsNotConstructed)
}

// OrderID returns the order whose cancellation request is being resolved.
func (c ResolveCancelRequestCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AdminID returns the resolving administrator.
func (c ResolveCancelRequestCommand) AdminID() kernel.UUID {
	return c.adminID
}

// Resolution returns the decision.
func (c ResolveCancelRequestCommand) Resolution() CancelResolution {
	return c.resolution
}

// RejectionReason returns the reason given for a rejection.
func (c ResolveCancelRequestCommand) RejectionReason() string {
	return c.rejectionReason
}
