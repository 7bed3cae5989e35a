package commands

import (
	"context"
	"log/slog"

	"pos/internal/core/domain/model/actor"
	"pos/internal/core/domain/services"
)

// AppendItemsCommandHandler handles order line amendments.
// Loads the aggregate under a row lock, merges the new lines through the
// aggregate's identity rules and persists the result. Amendments publish no
// event of their own; connected boards pick the change up on the next poll.
type AppendItemsCommandHandler struct {
	uowFactory OrderUoWFactory
	authorizer services.TransitionAuthorizer
	logger     *slog.Logger
}

// NewAppendItemsCommandHandler creates a handler for line amendments.
func NewAppendItemsCommandHandler(
	uowFactory OrderUoWFactory,
	authorizer services.TransitionAuthorizer,
	logger *slog.Logger,
) AppendItemsCommandHandler {
	return AppendItemsCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
		logger:     logger,
	}
}

// Handle processes the amendment command.
// Returns Forbidden before any store access when the role lacks order:update,
// and surfaces the aggregate's frozen-lines rule for orders past confirmed.
func (h AppendItemsCommandHandler) Handle(ctx context.Context, cmd AppendItemsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.authorizer.AuthorizeCapability(ctx, cmd.ActorRole(), actor.CapUpdateOrder); err != nil {
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

	for _, spec := range cmd.Items() {
		item, itemErr := spec.toItem()
		if itemErr != nil {
			return itemErr
		}
		if addErr := aggregate.AddItem(item); addErr != nil {
			return addErr
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
