package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"pos/internal/adapters/out/postgres/orderrepo"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers to verify persistence
// behavior, child-row handling and the optimistic version predicate.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.PaymentDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE orders, order_items, order_payments").Error,
	)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker, false)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	return suite.createTestOrderAtBranch(kernel.NewUUID())
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrderAtBranch(branchID kernel.UUID) *order.Order {
	tableID := kernel.NewUUID()
	o, err := order.NewOrder(
		kernel.NewUUID(), "ORD-"+kernel.NewUUID().String()[:8], branchID,
		order.DeliveryTypeDineIn, &tableID, order.DeliveryDetails{}, 1000,
	)
	suite.Require().NoError(err)

	item, err := order.NewItem(
		kernel.NewUUID(), "Margherita", 2, kernel.NewMoney(1250),
		[]string{"extra cheese", "basil"}, []string{"onion"}, "well done",
	)
	suite.Require().NoError(err)
	suite.Require().NoError(o.AddItem(item))

	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(testOrder.ID(), restored.ID())
	suite.Equal(testOrder.Number(), restored.Number())
	suite.Equal(order.StatusPending, restored.Status())
	suite.Require().Len(restored.Items(), 1)
	suite.Equal([]string{"basil", "extra cheese"}, restored.Items()[0].Modifiers())
	suite.Equal([]string{"onion"}, restored.Items()[0].RemovedIngredients())
	suite.True(restored.Total().IsEqual(testOrder.Total()))
	suite.Equal(order.CancellationNone, restored.Cancellation().Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())

	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByNumber() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	restored, err := suite.repository.GetByNumber(ctx, testOrder.Number())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), restored.ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsTransitionAndPayments() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.TransitionTo(order.StatusPreparing))

	payment, err := order.NewPayment(
		kernel.NewUUID(), testOrder.Total(), order.PaymentMethodCard, order.PaymentStatusCompleted,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AddPayment(payment))

	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusPreparing, restored.Status())
	suite.Require().Len(restored.Payments(), 1)
	suite.True(restored.PaidTotal().IsEqual(testOrder.Total()))
	suite.Equal(1, restored.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersionConflicts() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Both copies restored at version 0; the second write is stale.
	first, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.TransitionTo(order.StatusConfirmed))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.TransitionTo(order.StatusPreparing))
	err = suite.repository.Update(ctx, second)

	var conflict *errs.ConflictError
	suite.Require().ErrorAs(err, &conflict)

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusConfirmed, restored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsCancellationState() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.RequestCancellation("guest changed mind"))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(restored.Cancellation().IsPending())
	suite.Equal("guest changed mind", restored.Cancellation().Reason())
	suite.Equal(order.StatusPending, restored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllActive_FiltersByBranchAndStatus() {
	ctx := context.Background()

	branchID := kernel.NewUUID()

	active := suite.createTestOrderAtBranch(branchID)
	suite.Require().NoError(suite.repository.Add(ctx, active))

	cancelled := suite.createTestOrderAtBranch(branchID)
	suite.Require().NoError(cancelled.Cancel())
	suite.Require().NoError(suite.repository.Add(ctx, cancelled))

	otherBranch := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, otherBranch))

	orders, err := suite.repository.GetAllActive(ctx, branchID, order.ActiveStatuses())
	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.Equal(active.ID(), orders[0].ID())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
