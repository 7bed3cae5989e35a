package commands

import (
	"errors"

	"pos/internal/core/domain/model/actor"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
	"pos/internal/pkg/guard"
)

var ErrResolveCancellationCommandIsNotConstructed = errors.New(
	"ResolveCancellationCommand must be created via NewResolveCancellationCommand constructor",
)

// ResolveCancellationCommand represents a manager's decision on a pending
// cancellation request: approve it (cancelling the order) or deny it with a
// note for the original requester.
type ResolveCancellationCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actorRole actor.Role
	approve   bool
	note      string

	guard guard.ConstructorGuard
}

// NewResolveCancellationCommand creates a command to resolve a pending
// cancellation request. A denial requires a note; approvals may omit it.
func NewResolveCancellationCommand(
	orderID kernel.UUID,
	actorRole actor.Role,
	approve bool,
	note string,
) (ResolveCancellationCommand, error) {
	cmd := ResolveCancellationCommand{
		guard:   guard.NewConstructorGuard(),
		approve: approve,
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorRole(actorRole),
		cmd.setNote(approve, note),
	); err != nil {
		return ResolveCancellationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveCancellationCommand) Validate() error {
	return c.guard.Validate(ErrResolveCancellationCommandIsNotConstructed)
}

// OrderID returns the order whose request is being resolved.
func (c ResolveCancellationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorRole returns the resolving actor's role.
func (c ResolveCancellationCommand) ActorRole() actor.Role {
	return c.actorRole
}

// Approve reports whether the request is approved.
func (c ResolveCancellationCommand) Approve() bool {
	return c.approve
}

// Note returns the denial note, empty for approvals.
func (c ResolveCancellationCommand) Note() string {
	return c.note
}

func (c *ResolveCancellationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ResolveCancellationCommand) setActorRole(role actor.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.actorRole = role
	return nil
}

func (c *ResolveCancellationCommand) setNote(approve bool, note string) error {
	if !approve && note == "" {
		return errs.NewValueIsRequiredError("denial note")
	}

	c.note = note
	return nil
}
