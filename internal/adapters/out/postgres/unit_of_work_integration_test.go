package postgres_test

import (
	"context"
	"testing"
	"time"

	"shop/internal/adapters/out/postgres"
	"shop/internal/adapters/out/postgres/addressrepo"
	"shop/internal/adapters/out/postgres/orderrepo"
	"shop/internal/adapters/out/postgres/productrepo"
	"shop/internal/adapters/out/postgres/reviewtaskrepo"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/model/product"
	"shop/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that an order status change, its
// ledger entry, and its inventory effect commit or roll back as one unit.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgrescontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgrescontainer.Run(ctx,
		"postgres:15-alpine",
		postgrescontainer.WithDatabase("testdb"),
		postgrescontainer.WithUsername("testuser"),
		postgrescontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.HistoryDTO{},
		&productrepo.ProductDTO{},
		&reviewtaskrepo.TaskDTO{},
		&addressrepo.AddressDTO{},
	))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE order_history, order_items, orders, products, review_tasks, addresses").Error)

	suite.factory = postgres.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// seedProduct writes an inventory record outside any transaction.
func (suite *UnitOfWorkIntegrationTestSuite) seedProduct(stock int) *product.Product {
	p, err := product.NewProduct(kernel.NewUUID(), "mechanical keyboard", 1500, stock)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.ProductRepository().Add(context.Background(), p))
	return p
}

// seedOrder writes an order for one unit of the given product.
func (suite *UnitOfWorkIntegrationTestSuite) seedOrder(productID kernel.UUID, placedAt time.Time) *order.Order {
	item, err := order.NewLineItem(productID, 1, 1500)
	suite.Require().NoError(err)
	ord, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]order.LineItem{item}, 0, placedAt)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.OrderRepository().Add(context.Background(), ord))
	return ord
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()
	p := suite.seedProduct(10)
	ord := suite.seedOrder(p.ID(), time.Now().UTC().Add(-time.Hour))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	loaded, err := uow.OrderRepository().GetForUpdate(ctx, ord.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.Cancel("changed my mind", order.ActorCustomer, time.Now().UTC()))
	suite.Require().NoError(uow.ProductRepository().Release(ctx, p.ID(), 1))
	loaded.MarkInventoryRestored()
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))

	suite.Require().NoError(uow.Commit(ctx))

	// Both writes are visible after the commit.
	reloaded, err := suite.factory.Create().OrderRepository().Get(ctx, ord.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, reloaded.Status())
	suite.True(reloaded.Restored())

	stockRow, err := suite.factory.Create().ProductRepository().Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(11, stockRow.Stock())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAcrossRepositories() {
	ctx := context.Background()
	p := suite.seedProduct(10)
	ord := suite.seedOrder(p.ID(), time.Now().UTC().Add(-time.Hour))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	loaded, err := uow.OrderRepository().GetForUpdate(ctx, ord.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.Cancel("changed my mind", order.ActorCustomer, time.Now().UTC()))
	suite.Require().NoError(uow.ProductRepository().Release(ctx, p.ID(), 1))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))

	suite.Require().NoError(uow.Rollback(ctx))

	// Neither write survived the rollback.
	reloaded, err := suite.factory.Create().OrderRepository().Get(ctx, ord.ID())
	suite.Require().NoError(err)
	suite.Equal(order.New, reloaded.Status())
	suite.Len(reloaded.History(), 1)

	stockRow, err := suite.factory.Create().ProductRepository().Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(10, stockRow.Stock())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin() {
	uow := suite.factory.Create()

	err := uow.Commit(context.Background())

	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_AfterCommitIsHarmless() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))

	// The deferred rollback pattern hits this path on every success.
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBegin_IsIdempotent() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositoriesWithoutTransaction() {
	ctx := context.Background()

	addressID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&addressrepo.AddressDTO{
		ID:         addressID.Bytes(),
		CustomerID: customerID.Bytes(),
		Line:       "12 Harbor Street",
	}).Error)

	// Without Begin the repositories run against the main connection.
	uow := suite.factory.Create()
	suite.Require().NoError(uow.AddressRepository().Exists(ctx, addressID, customerID))

	// An address owned by another customer reads as missing.
	err := uow.AddressRepository().Exists(ctx, addressID, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
