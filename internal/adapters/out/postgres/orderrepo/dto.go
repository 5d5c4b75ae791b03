// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between the domain model and the relational layout of
// the orders, order_items and order_history tables.
package orderrepo

import (
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items and ledger entries live in their own tables and are loaded
// alongside the order row.
type OrderDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code                  string    `gorm:"uniqueIndex;size:32"`
	CustomerID            uuid.UUID `gorm:"type:uuid;index"`
	AddressID             uuid.UUID `gorm:"type:uuid"`
	Status                string    `gorm:"size:32;index"`
	TotalPrice            int64
	ShippingFee           int64
	CancelReason          string
	CancelRequestedBy     *uuid.UUID `gorm:"type:uuid"`
	CancelApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	CancelRejectionReason string
	CancelDeadline        time.Time `gorm:"index"`
	Restored              bool

	Items   []ItemDTO    `gorm:"foreignKey:OrderID;references:ID"`
	History []HistoryDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one purchased line of an order. The composite primary
// key doubles as the uniqueness guarantee that an order holds at most one
// line per product.
type ItemDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int
	UnitPrice int64
}

// TableName specifies the database table name for order line items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// HistoryDTO represents one entry of the append-only status ledger.
// Seq is the position of the entry within its order, starting at zero.
type HistoryDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int       `gorm:"primaryKey"`
	Status     string    `gorm:"size:32"`
	Note       string
	Actor      string `gorm:"size:16"`
	OccurredAt time.Time
}

// TableName specifies the database table name for ledger entries.
func (HistoryDTO) TableName() string {
	return "order_history"
}

// fromDomain converts an order aggregate to its database representation,
// including item and ledger rows.
func fromDomain(aggregate *order.Order) OrderDTO {
	var requestedBy, approvedBy *uuid.UUID
	if id := aggregate.Cancellation().RequestedBy(); id != nil {
		raw := id.Bytes()
		requestedBy = &raw
	}
	if id := aggregate.Cancellation().ApprovedBy(); id != nil {
		raw := id.Bytes()
		approvedBy = &raw
	}

	dto := OrderDTO{
		ID:                    aggregate.ID().Bytes(),
		Code:                  aggregate.Code(),
		CustomerID:            aggregate.CustomerID().Bytes(),
		AddressID:             aggregate.AddressID().Bytes(),
		Status:                aggregate.Status().String(),
		TotalPrice:            aggregate.TotalPrice(),
		ShippingFee:           aggregate.ShippingFee(),
		CancelReason:          aggregate.CancelReason(),
		CancelRequestedBy:     requestedBy,
		CancelApprovedBy:      approvedBy,
		CancelRejectionReason: aggregate.Cancellation().RejectionReason(),
		CancelDeadline:        aggregate.CancelDeadline(),
		Restored:              aggregate.Restored(),
	}

	for _, item := range aggregate.Items() {
		dto.Items = append(dto.Items, ItemDTO{
			OrderID:   dto.ID,
			ProductID: item.ProductID().Bytes(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	for seq, entry := range aggregate.History() {
		dto.History = append(dto.History, HistoryDTO{
			OrderID:    dto.ID,
			Seq:        seq,
			Status:     entry.Status().String(),
			Note:       entry.Note(),
			Actor:      entry.Actor().String(),
			OccurredAt: entry.At(),
		})
	}

	return dto
}

// toDomain converts database rows back into an order aggregate via
// RestoreOrder, which re-validates the aggregate invariants.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	addressID, err := kernel.UUIDFromBytes(dto.AddressID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewLineItem(productID, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, entryDTO := range dto.History {
		entryStatus, entryErr := order.StatusFromString(entryDTO.Status)
		if entryErr != nil {
			return nil, entryErr
		}
		entryActor, entryErr := order.ActorFromString(entryDTO.Actor)
		if entryErr != nil {
			return nil, entryErr
		}

		entry, entryErr := order.NewHistoryEntry(entryStatus, entryDTO.Note, entryActor, entryDTO.OccurredAt)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	cancellation, err := restoreCancellation(dto)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:             id,
		Code:           dto.Code,
		CustomerID:     customerID,
		AddressID:      addressID,
		Items:          items,
		TotalPrice:     dto.TotalPrice,
		ShippingFee:    dto.ShippingFee,
		Status:         status,
		History:        history,
		CancelReason:   dto.CancelReason,
		Cancellation:   cancellation,
		CancelDeadline: dto.CancelDeadline,
		Restored:       dto.Restored,
	})
}

func restoreCancellation(dto OrderDTO) (order.CancellationInfo, error) {
	var requestedBy, approvedBy *kernel.UUID

	if dto.CancelRequestedBy != nil {
		id, err := kernel.UUIDFromBytes((*dto.CancelRequestedBy)[:])
		if err != nil {
			return order.CancellationInfo{}, err
		}
		requestedBy = &id
	}
	if dto.CancelApprovedBy != nil {
		id, err := kernel.UUIDFromBytes((*dto.CancelApprovedBy)[:])
		if err != nil {
			return order.CancellationInfo{}, err
		}
		approvedBy = &id
	}

	return order.RestoreCancellationInfo(requestedBy, approvedBy, dto.CancelRejectionReason), nil
}
