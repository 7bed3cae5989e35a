package commands

import (
	"context"
	"log/slog"

	"pos/internal/core/domain/events"
	"pos/internal/core/domain/model/actor"
	"pos/internal/core/domain/services"
	"pos/internal/core/ports"
)

// ResolveCancellationCommandHandler applies a manager's decision to a
// pending cancellation request. Requires the order:cancel capability.
// Approval cancels the order; denial records the note and leaves the status
// exactly where it was. Resolving a request that is no longer pending is a
// benign conflict from the aggregate.
type ResolveCancellationCommandHandler struct {
	uowFactory OrderUoWFactory
	authorizer services.TransitionAuthorizer
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewResolveCancellationCommandHandler creates a handler for request
// resolutions.
func NewResolveCancellationCommandHandler(
	uowFactory OrderUoWFactory,
	authorizer services.TransitionAuthorizer,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ResolveCancellationCommandHandler {
	return ResolveCancellationCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the resolution command.
// Approvals publish order:cancellation_approved; denials publish
// order:cancellation_denied carrying the note.
func (h ResolveCancellationCommandHandler) Handle(ctx context.Context, cmd ResolveCancellationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.authorizer.AuthorizeCapability(ctx, cmd.ActorRole(), actor.CapCancelOrder); err != nil {
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

	if cmd.Approve() {
		err = aggregate.ApproveCancellation()
	} else {
		err = aggregate.DenyCancellation(cmd.Note())
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

	if cmd.Approve() {
		publishBestEffort(ctx, h.publisher, h.logger, events.CancellationApproved{
			OrderID:     aggregate.ID().String(),
			OrderNumber: aggregate.Number(),
		})
	} else {
		publishBestEffort(ctx, h.publisher, h.logger, events.CancellationDenied{
			OrderID:      aggregate.ID().String(),
			OrderNumber:  aggregate.Number(),
			DeniedReason: cmd.Note(),
		})
	}

	return nil
}
