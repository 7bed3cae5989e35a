package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"pos/internal/adapters/out/postgres"
	"pos/internal/adapters/out/postgres/orderrepo"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies transaction semantics of the GORM
// unit of work: commit visibility, rollback isolation, and serialization of
// concurrent writes to the same order.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
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

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE orders, order_items, order_payments").Error,
	)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder() *order.Order {
	tableID := kernel.NewUUID()
	o, err := order.NewOrder(
		kernel.NewUUID(), "ORD-"+kernel.NewUUID().String()[:8], kernel.NewUUID(),
		order.DeliveryTypeDineIn, &tableID, order.DeliveryDetails{}, 1000,
	)
	suite.Require().NoError(err)

	item, err := order.NewItem(
		kernel.NewUUID(), "Carbonara", 1, kernel.NewMoney(1450), nil, nil, "",
	)
	suite.Require().NoError(err)
	suite.Require().NoError(o.AddItem(item))

	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_MakesChangesVisible() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	restored, err := reader.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), restored.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	_, err := reader.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_Fails() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().Error(uow.Commit(ctx))
}

// Two workers race to start preparing the same pending order. The row lock
// taken by Get inside the transaction serializes them; the loser re-reads
// the already-preparing order and its transition fails, so exactly one
// accept succeeds.
func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentTransitions_ExactlyOneWins() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	seed := suite.factory.Create()
	suite.Require().NoError(seed.Begin(ctx))
	suite.Require().NoError(seed.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(seed.Commit(ctx))

	attempt := func() error {
		uow := suite.factory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer func() {
			_ = uow.Rollback(ctx)
		}()

		repo := uow.OrderRepository()
		aggregate, err := repo.Get(ctx, testOrder.ID())
		if err != nil {
			return err
		}
		if err = aggregate.TransitionTo(order.StatusPreparing); err != nil {
			return err
		}
		if err = repo.Update(ctx, aggregate); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	const workers = 2
	results := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			results[slot] = attempt()
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		}
	}
	suite.Equal(1, succeeded)

	reader := suite.factory.Create()
	restored, err := reader.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusPreparing, restored.Status())
	suite.Equal(1, restored.Version())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
