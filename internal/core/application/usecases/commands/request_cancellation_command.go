package commands

import (
	"errors"

	"pos/internal/core/domain/model/actor"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
	"pos/internal/pkg/guard"
)

var ErrRequestCancellationCommandIsNotConstructed = errors.New(
	"RequestCancellationCommand must be created via NewRequestCancellationCommand constructor",
)

// RequestCancellationCommand represents a request to cancel an order.
// How it resolves depends on the actor's grants: holders of order:cancel
// cancel immediately, holders of only order:update open a pending request
// that a manager resolves later, and actors with neither are forbidden.
//
// Example:
//
//	cmd, err := NewRequestCancellationCommand(orderID, actor.RoleWaiter, "guest left")
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type RequestCancellationCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actorRole actor.Role
	reason    string

	guard guard.ConstructorGuard
}

// NewRequestCancellationCommand creates a command to cancel an order or open
// a cancellation request. The reason is mandatory in both paths.
func NewRequestCancellationCommand(
	orderID kernel.UUID,
	actorRole actor.Role,
	reason string,
) (RequestCancellationCommand, error) {
	cmd := RequestCancellationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorRole(actorRole),
		cmd.setReason(reason),
	); err != nil {
		return RequestCancellationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestCancellationCommand) Validate() error {
	return c.guard.Validate(ErrRequestCancellationCommandIsNotConstructed)
}

// OrderID returns the order to cancel.
func (c RequestCancellationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorRole returns the role requesting cancellation.
func (c RequestCancellationCommand) ActorRole() actor.Role {
	return c.actorRole
}

// Reason returns the stated cancellation reason.
func (c RequestCancellationCommand) Reason() string {
	return c.reason
}

func (c *RequestCancellationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RequestCancellationCommand) setActorRole(role actor.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.actorRole = role
	return nil
}

func (c *RequestCancellationCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("cancellation reason")
	}

	c.reason = reason
	return nil
}
