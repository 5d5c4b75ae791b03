package queries

import (
	"context"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCancelRequestsQueryHandler lists the cancellation review backlog from
// the database. The request reason and timestamp come from the ledger entry
// that moved the order into review.
type GetCancelRequestsQueryHandler struct {
	db *gorm.DB
}

// NewGetCancelRequestsQueryHandler creates a handler for backlog queries.
func NewGetCancelRequestsQueryHandler(db *gorm.DB) GetCancelRequestsQueryHandler {
	return GetCancelRequestsQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by request time so the
// oldest request is reviewed first.
func (h GetCancelRequestsQueryHandler) Handle(
	ctx context.Context,
	query GetCancelRequestsQuery,
) ([]GetCancelRequestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	requests := make([]GetCancelRequestsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.code,
			o.customer_id,
			o.cancel_requested_by,
			o.cancel_reason,
			h.occurred_at
		FROM orders o
		JOIN order_history h ON h.order_id = o.id
		WHERE o.status = ?
		  AND h.status = ?
		  AND h.seq = (
			SELECT MAX(seq) FROM order_history
			WHERE order_id = o.id AND status = ?
		  )
		ORDER BY h.occurred_at
	`, order.CancelRequested.String(), order.CancelRequested.String(), order.CancelRequested.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetCancelRequestsQueryResponse
		var orderID, customerID, requestedBy uuid.UUID

		err = rows.Scan(
			&orderID,
			&resp.Code,
			&customerID,
			&requestedBy,
			&resp.Reason,
			&resp.RequestedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		if resp.RequestedBy, err = kernel.UUIDFromBytes(requestedBy[:]); err != nil {
			return nil, err
		}

		requests = append(requests, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
