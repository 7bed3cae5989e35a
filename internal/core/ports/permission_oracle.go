package ports

import (
	"context"

	"pos/internal/core/domain/model/actor"
)

// PermissionOracle answers whether a role holds a named capability.
// Capability grants live outside this service; command handlers consult the
// oracle before every guarded operation and surface a missing grant as
// Forbidden, without touching the order store.
type PermissionOracle interface {
	// Allows reports whether the role holds the capability.
	Allows(ctx context.Context, role actor.Role, capability actor.Capability) (bool, error)
}
