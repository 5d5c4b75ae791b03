package order

import (
	"shop/internal/core/domain/model/kernel"
)

// CancellationInfo records who asked for a cancellation and how it was
// resolved. RequestedBy is set when an order enters cancel_requested;
// ApprovedBy or RejectionReason is filled by the admin resolution.
type CancellationInfo struct {
	requestedBy     *kernel.UUID
	approvedBy      *kernel.UUID
	rejectionReason string
}

// RestoreCancellationInfo rebuilds cancellation bookkeeping from persistence.
func RestoreCancellationInfo(requestedBy, approvedBy *kernel.UUID, rejectionReason string) CancellationInfo {
	return CancellationInfo{
		requestedBy:     requestedBy,
		approvedBy:      approvedBy,
		rejectionReason: rejectionReason,
	}
}

// RequestedBy returns the customer who filed the cancellation request,
// or nil when no request was ever filed.
func (c CancellationInfo) RequestedBy() *kernel.UUID {
	return c.requestedBy
}

// ApprovedBy returns the admin who approved the cancellation, or nil.
func (c CancellationInfo) ApprovedBy() *kernel.UUID {
	return c.approvedBy
}

// RejectionReason returns the admin's reason for rejecting the request,
// or the empty string.
func (c CancellationInfo) RejectionReason() string {
	return c.rejectionReason
}
