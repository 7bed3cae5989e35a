package commands

import (
	"errors"

	"pos/internal/core/domain/model/actor"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/guard"
)

var ErrAppendItemsCommandIsNotConstructed = errors.New(
	"AppendItemsCommand must be created via NewAppendItemsCommand constructor",
)

// AppendItemsCommand represents a request to add lines to an existing order.
// Lines identical to an existing one (same product, modifier set, removal
// set and note) merge into that line instead of duplicating it. Amendments
// are only allowed while the order is still pending or confirmed.
type AppendItemsCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actorRole actor.Role
	items     []ItemSpec

	guard guard.ConstructorGuard
}

// NewAppendItemsCommand creates a command to amend an order's lines.
// Requires a valid order ID, a valid role and at least one line.
func NewAppendItemsCommand(
	orderID kernel.UUID,
	actorRole actor.Role,
	items []ItemSpec,
) (AppendItemsCommand, error) {
	cmd := AppendItemsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorRole(actorRole),
		cmd.setItems(items),
	); err != nil {
		return AppendItemsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AppendItemsCommand) Validate() error {
	return c.guard.Validate(ErrAppendItemsCommandIsNotConstructed)
}

// OrderID returns the order being amended.
func (c AppendItemsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorRole returns the role of the amending actor.
func (c AppendItemsCommand) ActorRole() actor.Role {
	return c.actorRole
}

// Items returns the lines to append.
func (c AppendItemsCommand) Items() []ItemSpec {
	return c.items
}

func (c *AppendItemsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AppendItemsCommand) setActorRole(role actor.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.actorRole = role
	return nil
}

func (c *AppendItemsCommand) setItems(items []ItemSpec) error {
	if len(items) == 0 {
		return ErrAtLeastOneItemIsRequired
	}

	c.items = items
	return nil
}
