package queries

import (
	"errors"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var (
	ErrGetCancelRequestsQueryIsNotConstructed = errors.New(
		"GetCancelRequestsQuery must be created via NewGetCancelRequestsQuery constructor",
	)
)

// GetCancelRequestsQuery retrieves all orders currently waiting on an
// administrator decision about a cancellation request.
//
// Example:
//
//	query := NewGetCancelRequestsQuery()
//	pending, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get cancel requests: %w", err)
//	}
//
//	for _, req := range pending {
//	    fmt.Printf("%s requested by %s: %s\n", req.Code, req.RequestedBy, req.Reason)
//	}
type GetCancelRequestsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetCancelRequestsQuery creates a query for the admin review backlog.
func NewGetCancelRequestsQuery() GetCancelRequestsQuery {
	return GetCancelRequestsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetCancelRequestsQuery) Validate() error {
	return q.guard.Validate(ErrGetCancelRequestsQueryIsNotConstructed)
}

// GetCancelRequestsQueryResponse is one order awaiting cancellation review.
type GetCancelRequestsQueryResponse struct {
	OrderID     kernel.UUID
	Code        string
	CustomerID  kernel.UUID
	RequestedBy kernel.UUID
	Reason      string
	RequestedAt time.Time
}
