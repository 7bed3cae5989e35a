package order_test

import (
	"testing"

	"pos/internal/core/domain/model/actor"
	"pos/internal/core/domain/model/order"
	"pos/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Pending", order.StatusPending.String())
	assert.Equal(t, "Confirmed", order.StatusConfirmed.String())
	assert.Equal(t, "Preparing", order.StatusPreparing.String())
	assert.Equal(t, "Ready", order.StatusReady.String())
	assert.Equal(t, "Delivered", order.StatusDelivered.String())
	assert.Equal(t, "Cancelled", order.StatusCancelled.String())
	assert.Equal(t, "Unknown", order.StatusUnknown.String())
	assert.Equal(t, "Unknown", order.Status(42).String())
}

func TestStatus_Validate(t *testing.T) {
	t.Run("valid statuses", func(t *testing.T) {
		for _, s := range []order.Status{
			order.StatusPending, order.StatusConfirmed, order.StatusPreparing,
			order.StatusReady, order.StatusDelivered, order.StatusCancelled,
		} {
			require.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("invalid statuses", func(t *testing.T) {
		require.Error(t, order.StatusUnknown.Validate())
		require.Error(t, order.Status(42).Validate())
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("round trips valid statuses", func(t *testing.T) {
		for _, s := range []order.Status{
			order.StatusPending, order.StatusConfirmed, order.StatusPreparing,
			order.StatusReady, order.StatusDelivered, order.StatusCancelled,
		} {
			parsed, err := order.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := order.StatusFromString("Settled")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_TransitionTo(t *testing.T) {
	type edge struct {
		from, to order.Status
	}

	allowed := []edge{
		{order.StatusPending, order.StatusConfirmed},
		{order.StatusPending, order.StatusPreparing},
		{order.StatusPending, order.StatusCancelled},
		{order.StatusConfirmed, order.StatusPreparing},
		{order.StatusConfirmed, order.StatusCancelled},
		{order.StatusPreparing, order.StatusReady},
		{order.StatusPreparing, order.StatusCancelled},
		{order.StatusReady, order.StatusDelivered},
		{order.StatusReady, order.StatusCancelled},
	}

	isAllowed := func(e edge) bool {
		for _, a := range allowed {
			if a == e {
				return true
			}
		}
		return false
	}

	all := []order.Status{
		order.StatusPending, order.StatusConfirmed, order.StatusPreparing,
		order.StatusReady, order.StatusDelivered, order.StatusCancelled,
	}

	t.Run("allowed edges transition", func(t *testing.T) {
		for _, e := range allowed {
			got, err := e.from.TransitionTo(e.to)
			require.NoError(t, err, "%s -> %s", e.from, e.to)
			assert.Equal(t, e.to, got)
		}
	})

	t.Run("every other edge fails with invalid transition", func(t *testing.T) {
		for _, from := range all {
			for _, to := range all {
				if isAllowed(edge{from, to}) {
					continue
				}
				_, err := from.TransitionTo(to)
				require.Error(t, err, "%s -> %s", from, to)
				require.ErrorIs(t, err, errs.ErrInvalidTransition)
			}
		}
	})

	t.Run("terminal statuses have no outgoing edges", func(t *testing.T) {
		assert.True(t, order.StatusDelivered.IsTerminal())
		assert.True(t, order.StatusCancelled.IsTerminal())
		for _, to := range all {
			require.Error(t, order.StatusDelivered.CanTransitionTo(to))
			require.Error(t, order.StatusCancelled.CanTransitionTo(to))
		}
	})

	t.Run("no backwards movement", func(t *testing.T) {
		_, err := order.StatusReady.TransitionTo(order.StatusPreparing)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)

		_, err = order.StatusDelivered.TransitionTo(order.StatusReady)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestRequiredCapability(t *testing.T) {
	assert.Equal(t, actor.CapAcceptOrder, order.RequiredCapability(order.StatusConfirmed))
	assert.Equal(t, actor.CapAcceptOrder, order.RequiredCapability(order.StatusPreparing))
	assert.Equal(t, actor.CapAdvanceOrder, order.RequiredCapability(order.StatusReady))
	assert.Equal(t, actor.CapAdvanceOrder, order.RequiredCapability(order.StatusDelivered))
	assert.Equal(t, actor.CapCancelOrder, order.RequiredCapability(order.StatusCancelled))
}

func TestActiveStatuses(t *testing.T) {
	active := order.ActiveStatuses()

	assert.Contains(t, active, order.StatusDelivered)
	assert.NotContains(t, active, order.StatusCancelled)
	assert.NotContains(t, active, order.StatusUnknown)
}
