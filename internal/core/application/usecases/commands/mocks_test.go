package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/model/product"
	"shop/internal/core/domain/model/review"
	"shop/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock implementations for testing.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetNewBefore(ctx context.Context, cutoff time.Time) ([]kernel.UUID, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

func (m *MockOrderRepository) GetAllInCancelRequestedStatus(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Add(ctx context.Context, aggregate *product.Product) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) Reserve(ctx context.Context, id kernel.UUID, qty int) error {
	args := m.Called(ctx, id, qty)
	return args.Error(0)
}

func (m *MockProductRepository) Release(ctx context.Context, id kernel.UUID, qty int) error {
	args := m.Called(ctx, id, qty)
	return args.Error(0)
}

type MockReviewTaskRepository struct {
	mock.Mock
}

func (m *MockReviewTaskRepository) AddIfAbsent(ctx context.Context, task *review.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockReviewTaskRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*review.Task, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*review.Task), args.Error(1)
}

type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) Exists(ctx context.Context, addressID, customerID kernel.UUID) error {
	args := m.Called(ctx, addressID, customerID)
	return args.Error(0)
}

type MockOrderNotifier struct {
	mock.Mock
}

func (m *MockOrderNotifier) PublishStatusChanged(ctx context.Context, event ports.OrderStatusChanged) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockUoW struct {
	mock.Mock
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

func (m *MockUoW) ReviewTaskRepository() ports.ReviewTaskRepository {
	args := m.Called()
	return args.Get(0).(ports.ReviewTaskRepository)
}

func (m *MockUoW) AddressRepository() ports.AddressRepository {
	args := m.Called()
	return args.Get(0).(ports.AddressRepository)
}

type MockUoWFactory struct {
	mock.Mock
}

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoW struct {
	mock.Mock
}

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct {
	mock.Mock
}

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// testLogger discards output; handlers always expect a non-nil logger.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// orderWithStatus builds an order placed at placedAt and walks it to the
// target status through the regular mutation path.
func orderWithStatus(t *testing.T, customerID kernel.UUID, target order.Status, placedAt time.Time) *order.Order {
	t.Helper()

	item, err := order.NewLineItem(kernel.NewUUID(), 2, 1500)
	require.NoError(t, err)
	ord, err := order.NewOrder(kernel.NewUUID(), customerID, kernel.NewUUID(),
		[]order.LineItem{item}, 300, placedAt)
	require.NoError(t, err)

	path := map[order.Status][]order.Status{
		order.New:       {},
		order.Confirmed: {order.Confirmed},
		order.Preparing: {order.Confirmed, order.Preparing},
		order.Shipping:  {order.Confirmed, order.Preparing, order.Shipping},
		order.Completed: {order.Confirmed, order.Preparing, order.Shipping, order.Completed},
	}

	steps, ok := path[target]
	if !ok {
		switch target {
		case order.Cancelled:
			require.NoError(t, ord.Cancel("cancelled in test setup", order.ActorCustomer, placedAt.Add(time.Minute)))
			return ord
		case order.CancelRequested:
			require.NoError(t, ord.RequestCancellation(customerID, "requested in test setup", placedAt.Add(time.Minute)))
			return ord
		default:
			t.Fatalf("cannot build order in status %s", target)
		}
	}

	at := placedAt
	for _, to := range steps {
		at = at.Add(time.Minute)
		require.NoError(t, ord.ChangeStatus(to, "", order.ActorAdmin, at))
	}
	return ord
}
