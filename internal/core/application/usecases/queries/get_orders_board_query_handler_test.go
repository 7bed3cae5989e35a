package queries_test

import (
	"context"
	"testing"
	"time"

	"pos/internal/adapters/out/postgres/orderrepo"
	"pos/internal/core/application/usecases/queries"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrdersBoardQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrdersBoardQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetOrdersBoardQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}, &orderrepo.PaymentDTO{},
	))

	suite.handler = queries.NewGetOrdersBoardQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, noopTracker{}, false)
}

func (suite *GetOrdersBoardQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE orders, order_items, order_payments").Error,
	)
}

func (suite *GetOrdersBoardQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetOrdersBoardQueryHandlerTestSuite) seedOrder(branchID kernel.UUID) *order.Order {
	tableID := kernel.NewUUID()
	o, err := order.NewOrder(
		kernel.NewUUID(), "ORD-"+kernel.NewUUID().String()[:8], branchID,
		order.DeliveryTypeDineIn, &tableID, order.DeliveryDetails{}, 1000,
	)
	suite.Require().NoError(err)

	item, err := order.NewItem(
		kernel.NewUUID(), "Carbonara", 1, kernel.NewMoney(1000), nil, nil, "",
	)
	suite.Require().NoError(err)
	suite.Require().NoError(o.AddItem(item))
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))

	return o
}

func (suite *GetOrdersBoardQueryHandlerTestSuite) TestHandle_GroupsByStatus() {
	ctx := context.Background()
	branchID := kernel.NewUUID()

	pending := suite.seedOrder(branchID)

	preparing := suite.seedOrder(branchID)
	suite.Require().NoError(preparing.TransitionTo(order.StatusPreparing))
	suite.Require().NoError(suite.orderRepo.Update(ctx, preparing))

	query, err := queries.NewGetOrdersBoardQuery(branchID)
	suite.Require().NoError(err)

	board, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	// Every active status renders a column, empty ones included.
	suite.Len(board.Columns, len(order.ActiveStatuses()))
	suite.Require().Len(board.Columns[order.StatusPending], 1)
	suite.Require().Len(board.Columns[order.StatusPreparing], 1)
	suite.Empty(board.Columns[order.StatusReady])

	suite.Equal(pending.Number(), board.Columns[order.StatusPending][0].Number)
	// 10.00 plus 10% tax.
	suite.Equal(int64(1100), board.Columns[order.StatusPending][0].TotalCents)
}

func (suite *GetOrdersBoardQueryHandlerTestSuite) TestHandle_CancellationBadge() {
	ctx := context.Background()
	branchID := kernel.NewUUID()

	requested := suite.seedOrder(branchID)
	suite.Require().NoError(requested.RequestCancellation("guest changed mind"))
	suite.Require().NoError(suite.orderRepo.Update(ctx, requested))

	query, err := queries.NewGetOrdersBoardQuery(branchID)
	suite.Require().NoError(err)

	board, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(board.Columns[order.StatusPending], 1)
	suite.True(board.Columns[order.StatusPending][0].CancellationPending)
}

func TestGetOrdersBoardQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrdersBoardQueryHandlerTestSuite))
}
