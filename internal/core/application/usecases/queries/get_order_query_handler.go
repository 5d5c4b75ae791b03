package queries

import (
	"context"
	"database/sql"
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order straight from the database,
// bypassing the aggregate. Line items and the status ledger are fetched with
// separate statements and assembled into one response.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(orderID)
//
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get order: %v", err)
//	    return err
//	}
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the read. Returns errs.ObjectNotFoundError when no order
// exists with the requested ID.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp, err := h.readOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.Items, err = h.readItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.History, err = h.readHistory(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) readOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (GetOrderQueryResponse, error) {
	var resp GetOrderQueryResponse
	var id, customerID, addressID uuid.UUID

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			code,
			customer_id,
			address_id,
			status,
			total_price,
			shipping_fee,
			cancel_reason,
			cancel_deadline
		FROM orders
		WHERE id = ?
	`, orderID.String()).Row()

	err := row.Scan(
		&id,
		&resp.Code,
		&customerID,
		&addressID,
		&resp.Status,
		&resp.TotalPrice,
		&resp.ShippingFee,
		&resp.CancelReason,
		&resp.CancelDeadline,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return resp, errs.NewObjectNotFoundError("order", orderID.String())
		}
		return resp, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return resp, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return resp, err
	}
	if resp.AddressID, err = kernel.UUIDFromBytes(addressID[:]); err != nil {
		return resp, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) readItems(
	ctx context.Context,
	orderID kernel.UUID,
) ([]GetOrderQueryItem, error) {
	items := make([]GetOrderQueryItem, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			quantity,
			unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY product_id
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetOrderQueryItem
		var productID uuid.UUID

		if err = rows.Scan(&productID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}

		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (h GetOrderQueryHandler) readHistory(
	ctx context.Context,
	orderID kernel.UUID,
) ([]GetOrderQueryHistoryEntry, error) {
	history := make([]GetOrderQueryHistoryEntry, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			note,
			actor,
			occurred_at
		FROM order_history
		WHERE order_id = ?
		ORDER BY seq
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetOrderQueryHistoryEntry

		if err = rows.Scan(&entry.Status, &entry.Note, &entry.Actor, &entry.At); err != nil {
			return nil, err
		}

		history = append(history, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
