package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"pos/internal/core/application/usecases/commands"
	"pos/internal/core/domain/events"
	"pos/internal/core/domain/model/actor"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllActive(
	ctx context.Context, branchID kernel.UUID, statuses []order.Status,
) ([]*order.Order, error) {
	args := m.Called(ctx, branchID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

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

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// grantsOracle answers capability checks from a fixed grant set, the way
// the static role table does in production.
type grantsOracle struct {
	grants map[actor.Role][]actor.Capability
	err    error
}

func (o grantsOracle) Allows(_ context.Context, role actor.Role, capability actor.Capability) (bool, error) {
	if o.err != nil {
		return false, o.err
	}
	for _, granted := range o.grants[role] {
		if granted == capability {
			return true, nil
		}
	}
	return false, nil
}

func staffOracle() grantsOracle {
	return grantsOracle{grants: map[actor.Role][]actor.Capability{
		actor.RoleWaiter: {actor.CapUpdateOrder},
		actor.RoleManager: {
			actor.CapUpdateOrder, actor.CapAcceptOrder,
			actor.CapAdvanceOrder, actor.CapTakePayment, actor.CapCancelOrder,
		},
		actor.RoleKitchen: {actor.CapAcceptOrder, actor.CapAdvanceOrder},
		actor.RoleCashier: {actor.CapAcceptOrder, actor.CapTakePayment, actor.CapCancelOrder},
	}}
}

func storedOrder(t *testing.T) *order.Order {
	t.Helper()

	tableID := kernel.NewUUID()
	o, err := order.NewOrder(
		kernel.NewUUID(), "ORD-0042", kernel.NewUUID(),
		order.DeliveryTypeDineIn, &tableID, order.DeliveryDetails{}, 1000,
	)
	require.NoError(t, err)

	item, err := order.NewItem(
		kernel.NewUUID(), "Margherita", 1, kernel.NewMoney(1250), nil, nil, "",
	)
	require.NoError(t, err)
	require.NoError(t, o.AddItem(item))

	return o
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func itemSpecs() []commands.ItemSpec {
	return []commands.ItemSpec{{
		ProductID:      kernel.NewUUID(),
		Name:           "Margherita",
		Quantity:       2,
		UnitPriceCents: 1250,
		Modifiers:      []string{"extra cheese"},
	}}
}
