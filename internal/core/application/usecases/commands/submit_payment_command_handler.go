package commands

import (
	"context"
	"log/slog"

	"pos/internal/core/domain/model/actor"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/core/domain/services"
)

// SubmitPaymentCommandHandler records payments against orders.
// Requires the order:take-payment capability. The payment is appended as
// completed; gateway settlement happens out of band and failed gateway
// payments are never submitted through this command.
type SubmitPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	authorizer services.TransitionAuthorizer
	logger     *slog.Logger
}

// NewSubmitPaymentCommandHandler creates a handler for payment recording.
func NewSubmitPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	authorizer services.TransitionAuthorizer,
	logger *slog.Logger,
) SubmitPaymentCommandHandler {
	return SubmitPaymentCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
		logger:     logger,
	}
}

// Handle processes the payment command.
// Cancelled orders reject payments with a benign conflict. Overpayment is
// recorded as-is; settlement is a derived predicate, not a stored flag.
func (h SubmitPaymentCommandHandler) Handle(ctx context.Context, cmd SubmitPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.authorizer.AuthorizeCapability(ctx, cmd.ActorRole(), actor.CapTakePayment); err != nil {
		return err
	}

	payment, err := order.NewPayment(
		kernel.NewUUID(),
		kernel.NewMoney(cmd.AmountCents()),
		cmd.Method(),
		order.PaymentStatusCompleted,
	)
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

	if err = aggregate.AddPayment(payment); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
