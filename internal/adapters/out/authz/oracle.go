// Package authz holds the static role-to-capability grants. The grant
// table is the deployment's policy; command handlers never hardcode role
// checks and consult the oracle instead.
package authz

import (
	"context"

	"pos/internal/core/domain/model/actor"
)

// StaticOracle answers capability checks from an in-memory grant table.
// It implements ports.PermissionOracle.
type StaticOracle struct {
	grants map[actor.Role]map[actor.Capability]bool
}

// NewStaticOracle creates an oracle with the default restaurant policy:
// waiters compose and request, kitchen accepts and advances, cashiers and
// managers hold the scarce cancel grant that resolves cancellation requests.
func NewStaticOracle() *StaticOracle {
	return NewStaticOracleWithGrants(map[actor.Role][]actor.Capability{
		actor.RoleWaiter: {
			actor.CapUpdateOrder,
		},
		actor.RoleKitchen: {
			actor.CapAcceptOrder,
			actor.CapAdvanceOrder,
		},
		actor.RoleCashier: {
			actor.CapAcceptOrder,
			actor.CapTakePayment,
			actor.CapCancelOrder,
		},
		actor.RoleManager: {
			actor.CapUpdateOrder,
			actor.CapAcceptOrder,
			actor.CapAdvanceOrder,
			actor.CapTakePayment,
			actor.CapCancelOrder,
		},
		// RoleTableBoard is read-only: no grants.
	})
}

// NewStaticOracleWithGrants creates an oracle from an explicit grant table.
func NewStaticOracleWithGrants(table map[actor.Role][]actor.Capability) *StaticOracle {
	grants := make(map[actor.Role]map[actor.Capability]bool, len(table))
	for role, capabilities := range table {
		grants[role] = make(map[actor.Capability]bool, len(capabilities))
		for _, capability := range capabilities {
			grants[role][capability] = true
		}
	}
	return &StaticOracle{grants: grants}
}

// Allows reports whether the role holds the capability. Unknown roles hold
// nothing.
func (o *StaticOracle) Allows(_ context.Context, role actor.Role, capability actor.Capability) (bool, error) {
	return o.grants[role][capability], nil
}
