package commands_test

import (
	"errors"
	"testing"

	"pos/internal/core/application/usecases/commands"
	"pos/internal/core/domain/events"
	"pos/internal/core/domain/model/actor"
	"pos/internal/core/domain/model/order"
	"pos/internal/core/domain/services"
	"pos/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRequestCancellationCommandHandler_DirectCancel(t *testing.T) {
	ctx := t.Context()
	aggregate := storedOrder(t)

	cmd, err := commands.NewRequestCancellationCommand(
		aggregate.ID(), actor.RoleCashier, "kitchen overloaded",
	)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, events.OrderStatusChanged{
		OrderID:     aggregate.ID().String(),
		OrderNumber: aggregate.Number(),
		Status:      order.StatusCancelled.String(),
	}).Return(nil).Once()

	h := commands.NewRequestCancellationCommandHandler(
		factory, services.NewTransitionAuthorizer(staffOracle()), publisher, discardLogger(),
	)
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, order.StatusCancelled, aggregate.Status())
	publisher.AssertExpectations(t)
}

func TestRequestCancellationCommandHandler_HandshakePath(t *testing.T) {
	ctx := t.Context()
	aggregate := storedOrder(t)
	require.NoError(t, aggregate.TransitionTo(order.StatusPreparing))

	cmd, err := commands.NewRequestCancellationCommand(
		aggregate.ID(), actor.RoleWaiter, "guest changed mind",
	)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, events.CancellationRequested{
		OrderID:     aggregate.ID().String(),
		OrderNumber: aggregate.Number(),
		Reason:      "guest changed mind",
	}).Return(nil).Once()

	h := commands.NewRequestCancellationCommandHandler(
		factory, services.NewTransitionAuthorizer(staffOracle()), publisher, discardLogger(),
	)
	require.NoError(t, h.Handle(ctx, cmd))

	// Status untouched; only the request is pending.
	require.Equal(t, order.StatusPreparing, aggregate.Status())
	require.True(t, aggregate.Cancellation().IsPending())
	publisher.AssertExpectations(t)
}

func TestRequestCancellationCommandHandler_SecondRequestConflicts(t *testing.T) {
	ctx := t.Context()
	aggregate := storedOrder(t)
	require.NoError(t, aggregate.RequestCancellation("first request"))

	cmd, err := commands.NewRequestCancellationCommand(
		aggregate.ID(), actor.RoleWaiter, "second request",
	)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	h := commands.NewRequestCancellationCommandHandler(
		factory, services.NewTransitionAuthorizer(staffOracle()), publisher, discardLogger(),
	)
	err = h.Handle(ctx, cmd)

	var conflict *errs.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "first request", aggregate.Cancellation().Reason())
	repo.AssertNotCalled(t, "Update")
	publisher.AssertNotCalled(t, "Publish")
}

func TestRequestCancellationCommandHandler_DirectCancelWhilePendingConflicts(t *testing.T) {
	ctx := t.Context()
	aggregate := storedOrder(t)
	require.NoError(t, aggregate.RequestCancellation("waiter request"))

	cmd, err := commands.NewRequestCancellationCommand(
		aggregate.ID(), actor.RoleManager, "manager override",
	)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	publisher := new(MockEventPublisher)

	h := commands.NewRequestCancellationCommandHandler(
		factory, services.NewTransitionAuthorizer(staffOracle()), publisher, discardLogger(),
	)
	err = h.Handle(ctx, cmd)

	// The pending request must be resolved through the handshake instead.
	var conflict *errs.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, order.StatusPending, aggregate.Status())
	require.True(t, aggregate.Cancellation().IsPending())
	publisher.AssertNotCalled(t, "Publish")
}

func TestRequestCancellationCommandHandler_NoGrantForbidden(t *testing.T) {
	ctx := t.Context()
	aggregate := storedOrder(t)

	cmd, err := commands.NewRequestCancellationCommand(
		aggregate.ID(), actor.RoleKitchen, "too busy",
	)
	require.NoError(t, err)

	factory := new(MockOrderUoWFactory)

	h := commands.NewRequestCancellationCommandHandler(
		factory, services.NewTransitionAuthorizer(staffOracle()), nil, discardLogger(),
	)
	err = h.Handle(ctx, cmd)

	var forbidden *errs.ForbiddenError
	require.ErrorAs(t, err, &forbidden)
	factory.AssertNotCalled(t, "Create")
}

func TestRequestCancellationCommandHandler_OracleFailurePropagates(t *testing.T) {
	ctx := t.Context()
	aggregate := storedOrder(t)

	cmd, err := commands.NewRequestCancellationCommand(
		aggregate.ID(), actor.RoleManager, "any reason",
	)
	require.NoError(t, err)

	oracle := grantsOracle{err: errors.New("oracle unavailable")}
	factory := new(MockOrderUoWFactory)

	h := commands.NewRequestCancellationCommandHandler(
		factory, services.NewTransitionAuthorizer(oracle), nil, discardLogger(),
	)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	var forbidden *errs.ForbiddenError
	require.False(t, errors.As(err, &forbidden))
	factory.AssertNotCalled(t, "Create")
}
