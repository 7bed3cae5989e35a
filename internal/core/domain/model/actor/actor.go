package actor

import (
	"errors"
	"fmt"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
)

var (
	// ErrActorIsNotConstructed is returned when an Actor instance was not
	// created through the NewActor factory method.
	ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")
)

// Role is the closed set of roles a connected client may hold.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleWaiter takes orders at tables and may request cancellations.
	RoleWaiter

	// RoleCashier accepts orders, settles payments and resolves
	// cancellation requests.
	RoleCashier

	// RoleManager holds every capability a cashier holds.
	RoleManager

	// RoleKitchen advances orders through preparation.
	RoleKitchen

	// RoleTableBoard is a read-only display of the order board.
	RoleTableBoard
)

// getRoleStrings returns a map of Role values to their string representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "Unknown",
		RoleWaiter:     "Waiter",
		RoleCashier:    "Cashier",
		RoleManager:    "Manager",
		RoleKitchen:    "Kitchen",
		RoleTableBoard: "TableBoard",
	}
}

// getValidRoleStrings returns only valid Role values, keyed by their
// string representation for parsing.
func getValidRoleStrings() map[string]Role {
	return map[string]Role{
		"Waiter":     RoleWaiter,
		"Cashier":    RoleCashier,
		"Manager":    RoleManager,
		"Kitchen":    RoleKitchen,
		"TableBoard": RoleTableBoard,
	}
}

// String returns the human-readable name of the role.
// Implements fmt.Stringer and is safe on any Role value.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks if the Role value is valid.
// RoleUnknown (0) and any other values are invalid.
func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok || r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// RoleFromString parses a role from its string representation.
// Returns an error for unrecognized names, including the empty string.
func RoleFromString(s string) (Role, error) {
	if role, ok := getValidRoleStrings()[s]; ok {
		return role, nil
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role is invalid",
		fmt.Errorf("%q is not a valid role", s))
}

// Capability is a named permission checked by the permission oracle before
// an order operation is allowed to run.
type Capability string

const (
	// CapUpdateOrder allows creating orders, amending their lines, and
	// opening a cancellation request.
	CapUpdateOrder Capability = "order:update"

	// CapAcceptOrder allows confirming an order and advancing it into
	// preparation.
	CapAcceptOrder Capability = "order:accept"

	// CapAdvanceOrder allows moving a prepared order to ready and delivered.
	CapAdvanceOrder Capability = "order:advance"

	// CapTakePayment allows recording payments against an order.
	CapTakePayment Capability = "order:take-payment"

	// CapCancelOrder allows cancelling an order directly and resolving
	// pending cancellation requests. Deliberately scarce.
	CapCancelOrder Capability = "order:cancel"
)

// String returns the capability's wire name.
func (c Capability) String() string {
	return string(c)
}

// Actor represents a connected role-bearing client of the system.
// Actors are value-like: they carry identity and role, never order state.
type Actor struct {
	id   kernel.UUID
	name string
	role Role

	isConstructed bool
}

// NewActor creates a validated Actor.
//
// Parameters:
//   - id: unique identifier for the connected client (must be valid)
//   - name: display name shown on boards and in event toasts
//   - role: the actor's role (must be a valid Role)
//
// Returns an error if any parameter is invalid.
func NewActor(id kernel.UUID, name string, role Role) (Actor, error) {
	if err := errors.Join(
		validateID(id),
		validateName(name),
		role.Validate(),
	); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:            id,
		name:          name,
		role:          role,
		isConstructed: true,
	}, nil
}

// Validate ensures the Actor instance was constructed via NewActor.
func (a Actor) Validate() error {
	if !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}

// ID returns the actor's unique identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Name returns the actor's display name.
func (a Actor) Name() string {
	return a.name
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// IsEqual compares two actors by identifier.
func (a Actor) IsEqual(other Actor) bool {
	return a.id.IsEqual(other.id)
}

func validateID(id kernel.UUID) error {
	return id.Validate()
}

func validateName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("actor name")
	}
	return nil
}
