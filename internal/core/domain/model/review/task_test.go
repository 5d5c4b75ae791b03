package review_test

import (
	"testing"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/review"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPendingTask(t *testing.T) {
	t.Run("should create pending task", func(t *testing.T) {
		customerID := kernel.NewUUID()
		productID := kernel.NewUUID()
		orderID := kernel.NewUUID()

		task, err := review.NewPendingTask(customerID, productID, orderID)

		require.NoError(t, err)
		require.NoError(t, task.Validate())
		assert.True(t, task.CustomerID().IsEqual(customerID))
		assert.True(t, task.ProductID().IsEqual(productID))
		assert.True(t, task.OrderID().IsEqual(orderID))
		assert.Equal(t, review.TaskPending, task.Status())
	})

	t.Run("should fail with invalid identifiers", func(t *testing.T) {
		var invalidID kernel.UUID

		task, err := review.NewPendingTask(invalidID, kernel.NewUUID(), kernel.NewUUID())

		require.Error(t, err)
		assert.Nil(t, task)
	})
}

func TestRestoreTask(t *testing.T) {
	t.Run("should rebuild task in any valid status", func(t *testing.T) {
		task, err := review.RestoreTask(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), review.TaskDone)

		require.NoError(t, err)
		assert.Equal(t, review.TaskDone, task.Status())
	})

	t.Run("should fail with invalid status", func(t *testing.T) {
		task, err := review.RestoreTask(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), review.TaskStatusUnknown)

		require.Error(t, err)
		assert.Nil(t, task)
	})
}

func TestTask_MarkDone(t *testing.T) {
	t.Run("should move task to done", func(t *testing.T) {
		task, err := review.NewPendingTask(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())
		require.NoError(t, err)

		require.NoError(t, task.MarkDone())

		assert.Equal(t, review.TaskDone, task.Status())
	})

	t.Run("should reject unconstructed task", func(t *testing.T) {
		var task review.Task

		require.ErrorIs(t, task.MarkDone(), review.ErrTaskIsNotConstructed)
	})
}

func TestTaskStatus(t *testing.T) {
	t.Run("should render wire names", func(t *testing.T) {
		assert.Equal(t, "pending", review.TaskPending.String())
		assert.Equal(t, "done", review.TaskDone.String())
		assert.Equal(t, "unknown", review.TaskStatusUnknown.String())
	})

	t.Run("should parse wire names", func(t *testing.T) {
		status, err := review.TaskStatusFromString("pending")
		require.NoError(t, err)
		assert.Equal(t, review.TaskPending, status)

		status, err = review.TaskStatusFromString("done")
		require.NoError(t, err)
		assert.Equal(t, review.TaskDone, status)
	})

	t.Run("should reject unknown wire names", func(t *testing.T) {
		for _, s := range []string{"", "unknown", "PENDING", "complete"} {
			_, err := review.TaskStatusFromString(s)
			assert.Error(t, err, "input %q", s)
		}
	})
}
