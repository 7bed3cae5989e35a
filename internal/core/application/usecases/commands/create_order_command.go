package commands

import (
	"errors"

	"pos/internal/core/domain/model/actor"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrAtLeastOneItemIsRequired = errors.New("at least one item is required")
)

// CreateOrderCommand represents a request to open a new order at a branch.
// Carries the initial line items, the fulfillment mode (dine-in, takeaway
// or delivery) and the role of the actor submitting the order.
//
// Example:
//
//	tableID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(), branchID, actor.RoleWaiter,
//	    order.DeliveryTypeDineIn, &tableID, order.DeliveryDetails{},
//	    1000, items,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	branchID     kernel.UUID
	actorRole    actor.Role
	deliveryType order.DeliveryType
	tableID      *kernel.UUID
	delivery     order.DeliveryDetails
	taxRateBps   int64
	items        []ItemSpec

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to open a new order.
// Validates identifiers, the actor role, the fulfillment mode and that the
// order carries at least one line. Table and contact consistency rules are
// enforced again by the aggregate constructor.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	branchID kernel.UUID,
	actorRole actor.Role,
	deliveryType order.DeliveryType,
	tableID *kernel.UUID,
	delivery order.DeliveryDetails,
	taxRateBps int64,
	items []ItemSpec,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBranchID(branchID),
		cmd.setActorRole(actorRole),
		cmd.setDeliveryType(deliveryType),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.tableID = tableID
	cmd.delivery = delivery
	cmd.taxRateBps = taxRateBps

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BranchID returns the branch the order belongs to.
func (c CreateOrderCommand) BranchID() kernel.UUID {
	return c.branchID
}

// ActorRole returns the role of the actor submitting the order.
func (c CreateOrderCommand) ActorRole() actor.Role {
	return c.actorRole
}

// DeliveryType returns the fulfillment mode of the order.
func (c CreateOrderCommand) DeliveryType() order.DeliveryType {
	return c.deliveryType
}

// TableID returns the table for dine-in orders, nil otherwise.
func (c CreateOrderCommand) TableID() *kernel.UUID {
	return c.tableID
}

// Delivery returns the contact details for delivery orders.
func (c CreateOrderCommand) Delivery() order.DeliveryDetails {
	return c.delivery
}

// TaxRateBps returns the branch tax rate in basis points.
func (c CreateOrderCommand) TaxRateBps() int64 {
	return c.taxRateBps
}

// Items returns the initial order lines.
func (c CreateOrderCommand) Items() []ItemSpec {
	return c.items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return err
	}

	c.branchID = branchID
	return nil
}

func (c *CreateOrderCommand) setActorRole(role actor.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.actorRole = role
	return nil
}

func (c *CreateOrderCommand) setDeliveryType(deliveryType order.DeliveryType) error {
	if err := deliveryType.Validate(); err != nil {
		return err
	}

	c.deliveryType = deliveryType
	return nil
}

func (c *CreateOrderCommand) setItems(items []ItemSpec) error {
	if len(items) == 0 {
		return ErrAtLeastOneItemIsRequired
	}

	c.items = items
	return nil
}
