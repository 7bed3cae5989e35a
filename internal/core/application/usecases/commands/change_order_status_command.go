package commands

import (
	"errors"

	"pos/internal/core/domain/model/actor"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand represents a request to move an order along its
// lifecycle: confirming, starting preparation, marking ready, delivering,
// or cancelling directly. The target must be reachable from the current
// status and the actor must hold the capability bound to the target.
//
// Example:
//
//	cmd, err := NewChangeOrderStatusCommand(orderID, actor.RoleKitchen, order.StatusReady)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actorRole actor.Role
	target    order.Status

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to request a lifecycle
// transition. Validates the order ID, the role and the target status.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	actorRole actor.Role,
	target order.Status,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorRole(actorRole),
		cmd.setTarget(target),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorRole returns the role requesting the transition.
func (c ChangeOrderStatusCommand) ActorRole() actor.Role {
	return c.actorRole
}

// Target returns the requested target status.
func (c ChangeOrderStatusCommand) Target() order.Status {
	return c.target
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setActorRole(role actor.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.actorRole = role
	return nil
}

func (c *ChangeOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
