package commands

import (
	"context"
	"log/slog"
	"strings"

	"pos/internal/core/domain/events"
	"pos/internal/core/domain/model/actor"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/core/domain/services"
	"pos/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for opening orders.
// Checks the order:update capability before touching the store, persists the
// new aggregate in pending status, and announces it on the event bus.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, authorizer, publisher, logger)
//	cmd, _ := NewCreateOrderCommand(...)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	authorizer services.TransitionAuthorizer
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	authorizer services.TransitionAuthorizer,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the order creation command.
// The capability check runs first so a forbidden caller never reaches the
// store. After commit the full order snapshot is published as order:created.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.authorizer.AuthorizeCapability(ctx, cmd.ActorRole(), actor.CapUpdateOrder); err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		deriveOrderNumber(cmd.OrderID()),
		cmd.BranchID(),
		cmd.DeliveryType(),
		cmd.TableID(),
		cmd.Delivery(),
		cmd.TaxRateBps(),
	)
	if err != nil {
		return err
	}

	for _, spec := range cmd.Items() {
		item, itemErr := spec.toItem()
		if itemErr != nil {
			return itemErr
		}
		if addErr := newOrder.AddItem(item); addErr != nil {
			return addErr
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishBestEffort(ctx, h.publisher, h.logger, events.OrderCreated{
		Order: events.SnapshotFromOrder(newOrder),
	})

	return nil
}

// deriveOrderNumber builds the human-readable ticket number shown on the
// board and receipts. It is derived from the order ID so retried create
// requests with the same ID produce the same number.
func deriveOrderNumber(id kernel.UUID) string {
	compact := strings.ReplaceAll(id.String(), "-", "")
	return "ORD-" + strings.ToUpper(compact[:8])
}
