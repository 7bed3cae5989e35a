package commands

import (
	"context"
	"errors"
	"log/slog"

	"pos/internal/core/domain/events"
	"pos/internal/core/domain/model/actor"
	"pos/internal/core/domain/services"
	"pos/internal/core/ports"
	"pos/internal/pkg/errs"
)

// RequestCancellationCommandHandler resolves a cancellation request against
// the actor's grants. Holders of order:cancel skip the handshake and cancel
// the order directly. Holders of only order:update open a pending request;
// the aggregate allows at most one at a time, and while one is pending even
// a direct cancel conflicts until the request is resolved. Actors with
// neither grant are forbidden before any store access.
type RequestCancellationCommandHandler struct {
	uowFactory OrderUoWFactory
	authorizer services.TransitionAuthorizer
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewRequestCancellationCommandHandler creates a handler for cancellation
// requests.
func NewRequestCancellationCommandHandler(
	uowFactory OrderUoWFactory,
	authorizer services.TransitionAuthorizer,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) RequestCancellationCommandHandler {
	return RequestCancellationCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the cancellation command.
// The direct path publishes order:status with the cancelled status; the
// handshake path publishes order:cancellation_requested while the order's
// status stays untouched.
func (h RequestCancellationCommandHandler) Handle(ctx context.Context, cmd RequestCancellationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	direct, err := h.resolvePath(ctx, cmd.ActorRole())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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

	if direct {
		err = aggregate.Cancel()
	} else {
		err = aggregate.RequestCancellation(cmd.Reason())
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if direct {
		publishBestEffort(ctx, h.publisher, h.logger, events.OrderStatusChanged{
			OrderID:     aggregate.ID().String(),
			OrderNumber: aggregate.Number(),
			Status:      aggregate.Status().String(),
		})
	} else {
		publishBestEffort(ctx, h.publisher, h.logger, events.CancellationRequested{
			OrderID:     aggregate.ID().String(),
			OrderNumber: aggregate.Number(),
			Reason:      cmd.Reason(),
		})
	}

	return nil
}

// resolvePath picks the direct-cancel path or the handshake path from the
// actor's grants. An oracle failure propagates as-is; it is not a Forbidden.
func (h RequestCancellationCommandHandler) resolvePath(ctx context.Context, role actor.Role) (bool, error) {
	errCancel := h.authorizer.AuthorizeCapability(ctx, role, actor.CapCancelOrder)
	if errCancel == nil {
		return true, nil
	}

	var forbidden *errs.ForbiddenError
	if !errors.As(errCancel, &forbidden) {
		return false, errCancel
	}

	if errUpdate := h.authorizer.AuthorizeCapability(ctx, role, actor.CapUpdateOrder); errUpdate != nil {
		return false, errUpdate
	}

	return false, nil
}
