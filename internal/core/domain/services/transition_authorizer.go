package services

import (
	"context"

	"pos/internal/core/domain/model/actor"
	"pos/internal/core/domain/model/order"
	"pos/internal/core/ports"
	"pos/internal/pkg/errs"
)

// TransitionAuthorizer is a domain service that decides which lifecycle
// transition an actor may request. It combines the two guards every
// transition must pass, in a fixed order:
//
//  1. Capability: the permission oracle must grant the capability bound to
//     the target status. A missing grant is Forbidden and is resolved
//     before the order is even loaded, so guard failures never mutate the
//     store.
//  2. Graph: the edge from the order's current status to the target must
//     exist in the lifecycle graph; otherwise InvalidTransition.
//
// The pending-cancellation guard lives on the aggregate itself, because it
// depends on order state rather than the actor.
//
// Example usage:
//
//	authorizer := services.NewTransitionAuthorizer(oracle)
//	if err := authorizer.Authorize(ctx, role, order.StatusPreparing); err != nil {
//	    // Forbidden: the actor cannot request this transition
//	    return err
//	}
//	if err := o.TransitionTo(order.StatusPreparing); err != nil {
//	    // InvalidTransition or pending-cancellation conflict
//	    return err
//	}
type TransitionAuthorizer struct {
	oracle ports.PermissionOracle
}

// NewTransitionAuthorizer creates a TransitionAuthorizer backed by the
// given permission oracle.
func NewTransitionAuthorizer(oracle ports.PermissionOracle) TransitionAuthorizer {
	return TransitionAuthorizer{oracle: oracle}
}

// Authorize checks that the role holds the capability bound to the target
// status. Returns ForbiddenError when the grant is missing.
func (a TransitionAuthorizer) Authorize(ctx context.Context, role actor.Role, target order.Status) error {
	capability := order.RequiredCapability(target)

	allowed, err := a.oracle.Allows(ctx, role, capability)
	if err != nil {
		return err
	}
	if !allowed {
		return errs.NewForbiddenError(capability.String())
	}

	return nil
}

// AuthorizeCapability checks an arbitrary capability grant, used by
// operations that are not status transitions (amending lines, taking
// payments, opening cancellation requests).
func (a TransitionAuthorizer) AuthorizeCapability(
	ctx context.Context,
	role actor.Role,
	capability actor.Capability,
) error {
	allowed, err := a.oracle.Allows(ctx, role, capability)
	if err != nil {
		return err
	}
	if !allowed {
		return errs.NewForbiddenError(capability.String())
	}

	return nil
}
