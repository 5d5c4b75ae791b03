package queries

import (
	"errors"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves a single order with its line items and the full
// status ledger.
//
// Example:
//
//	query, err := queries.NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//
//	fmt.Printf("Order %s is %s\n", resp.Code, resp.Status)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order.
// Returns a validation error when the ID is not constructed.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// GetOrderQueryResponse is the read model for a single order.
type GetOrderQueryResponse struct {
	ID             kernel.UUID
	Code           string
	CustomerID     kernel.UUID
	AddressID      kernel.UUID
	Status         string
	TotalPrice     int64
	ShippingFee    int64
	CancelReason   string
	CancelDeadline time.Time
	Items          []GetOrderQueryItem
	History        []GetOrderQueryHistoryEntry
}

// GetOrderQueryItem is one purchased line of an order.
type GetOrderQueryItem struct {
	ProductID kernel.UUID
	Quantity  int
	UnitPrice int64
}

// GetOrderQueryHistoryEntry is one step of the order status ledger.
type GetOrderQueryHistoryEntry struct {
	Status string
	Note   string
	Actor  string
	At     time.Time
}
