// Package reviewtaskrepo persists review tasks. The composite primary key
// over (customer, product, order) plus a do-nothing conflict clause makes
// task creation naturally idempotent: replaying a completion signal inserts
// nothing new.
package reviewtaskrepo

import (
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/review"

	"github.com/google/uuid"
)

// TaskDTO represents the database structure for review tasks.
type TaskDTO struct {
	CustomerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status     string    `gorm:"size:16"`
}

// TableName specifies the database table name for review tasks.
func (TaskDTO) TableName() string {
	return "review_tasks"
}

func fromDomain(task *review.Task) TaskDTO {
	return TaskDTO{
		CustomerID: task.CustomerID().Bytes(),
		ProductID:  task.ProductID().Bytes(),
		OrderID:    task.OrderID().Bytes(),
		Status:     task.Status().String(),
	}
}

func toDomain(dto TaskDTO) (*review.Task, error) {
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	status, err := review.TaskStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return review.RestoreTask(customerID, productID, orderID, status)
}
