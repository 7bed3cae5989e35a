package commands

import (
	"errors"

	"pos/internal/core/domain/model/actor"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/pkg/errs"
	"pos/internal/pkg/guard"
)

var ErrSubmitPaymentCommandIsNotConstructed = errors.New(
	"SubmitPaymentCommand must be created via NewSubmitPaymentCommand constructor",
)

// SubmitPaymentCommand represents a request to record a payment against an
// order. Payments are append-only: the recorded amount is never clamped to
// the amount due, and settlement is derived from the completed total.
type SubmitPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	actorRole   actor.Role
	amountCents int64
	method      order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewSubmitPaymentCommand creates a command to record a payment.
// The amount must be positive; zero and negative payments are rejected here
// before any store access.
func NewSubmitPaymentCommand(
	orderID kernel.UUID,
	actorRole actor.Role,
	amountCents int64,
	method order.PaymentMethod,
) (SubmitPaymentCommand, error) {
	cmd := SubmitPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorRole(actorRole),
		cmd.setAmount(amountCents),
		cmd.setMethod(method),
	); err != nil {
		return SubmitPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitPaymentCommand) Validate() error {
	return c.guard.Validate(ErrSubmitPaymentCommandIsNotConstructed)
}

// OrderID returns the order the payment applies to.
func (c SubmitPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorRole returns the role recording the payment.
func (c SubmitPaymentCommand) ActorRole() actor.Role {
	return c.actorRole
}

// AmountCents returns the payment amount in cents.
func (c SubmitPaymentCommand) AmountCents() int64 {
	return c.amountCents
}

// Method returns the payment method.
func (c SubmitPaymentCommand) Method() order.PaymentMethod {
	return c.method
}

func (c *SubmitPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitPaymentCommand) setActorRole(role actor.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.actorRole = role
	return nil
}

func (c *SubmitPaymentCommand) setAmount(amountCents int64) error {
	if amountCents <= 0 {
		return errs.NewValueIsOutOfRangeError("payment amount", amountCents, 1, nil)
	}

	c.amountCents = amountCents
	return nil
}

func (c *SubmitPaymentCommand) setMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}

	c.method = method
	return nil
}
