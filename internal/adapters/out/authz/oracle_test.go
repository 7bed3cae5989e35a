package authz_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos/internal/adapters/out/authz"
	"pos/internal/core/domain/model/actor"
)

func TestStaticOracle_DefaultPolicy(t *testing.T) {
	oracle := authz.NewStaticOracle()
	ctx := context.Background()

	tests := []struct {
		name       string
		role       actor.Role
		capability actor.Capability
		allowed    bool
	}{
		{"waiter composes orders", actor.RoleWaiter, actor.CapUpdateOrder, true},
		{"waiter cannot cancel directly", actor.RoleWaiter, actor.CapCancelOrder, false},
		{"waiter cannot accept", actor.RoleWaiter, actor.CapAcceptOrder, false},
		{"kitchen accepts", actor.RoleKitchen, actor.CapAcceptOrder, true},
		{"kitchen advances", actor.RoleKitchen, actor.CapAdvanceOrder, true},
		{"kitchen cannot take payment", actor.RoleKitchen, actor.CapTakePayment, false},
		{"cashier takes payment", actor.RoleCashier, actor.CapTakePayment, true},
		{"cashier cancels directly", actor.RoleCashier, actor.CapCancelOrder, true},
		{"cashier accepts", actor.RoleCashier, actor.CapAcceptOrder, true},
		{"cashier cannot compose orders", actor.RoleCashier, actor.CapUpdateOrder, false},
		{"manager cancels directly", actor.RoleManager, actor.CapCancelOrder, true},
		{"manager takes payment", actor.RoleManager, actor.CapTakePayment, true},
		{"table board holds nothing", actor.RoleTableBoard, actor.CapUpdateOrder, false},
		{"unknown role holds nothing", actor.RoleUnknown, actor.CapUpdateOrder, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := oracle.Allows(ctx, tt.role, tt.capability)

			require.NoError(t, err)
			assert.Equal(t, tt.allowed, allowed)
		})
	}
}

func TestStaticOracleWithGrants_CustomPolicy(t *testing.T) {
	oracle := authz.NewStaticOracleWithGrants(map[actor.Role][]actor.Capability{
		actor.RoleWaiter: {actor.CapCancelOrder},
	})

	allowed, err := oracle.Allows(context.Background(), actor.RoleWaiter, actor.CapCancelOrder)

	require.NoError(t, err)
	assert.True(t, allowed)
}
