package commands

import (
	"context"
	"log/slog"

	"pos/internal/core/domain/events"
	"pos/internal/core/domain/services"
	"pos/internal/core/ports"
)

// ChangeOrderStatusCommandHandler handles lifecycle transition requests.
// The guard order is fixed: capability first (Forbidden without a store
// read), then the transition graph and the pending-cancellation rule inside
// the aggregate, under a row lock so concurrent requests on the same order
// serialize and exactly one wins.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	authorizer services.TransitionAuthorizer
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates a handler for transition requests.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	authorizer services.TransitionAuthorizer,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the transition command.
// On success the new status is announced as order:status. Guard failures
// leave the stored order untouched.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.authorizer.Authorize(ctx, cmd.ActorRole(), cmd.Target()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.TransitionTo(cmd.Target()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishBestEffort(ctx, h.publisher, h.logger, events.OrderStatusChanged{
		OrderID:     aggregate.ID().String(),
		OrderNumber: aggregate.Number(),
		Status:      aggregate.Status().String(),
	})

	return nil
}
