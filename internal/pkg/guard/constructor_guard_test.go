package guard_test

import (
	"errors"
	"testing"

	"pos/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("command must be created via its constructor")

	t.Run("constructed guard passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		assert.NoError(t, g.Validate(errNotConstructed))
	})

	t.Run("zero-value guard returns the provided error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, errNotConstructed, g.Validate(errNotConstructed))
	})

	t.Run("zero-value guard falls back to the default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
	})

	t.Run("constructed guard ignores a nil validation error", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		assert.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Embedding(t *testing.T) {
	errNotConstructed := errors.New("payment must be created via NewPayment")

	type payment struct {
		amount int64
		guard  guard.ConstructorGuard
	}

	newPayment := func(amount int64) payment {
		return payment{amount: amount, guard: guard.NewConstructorGuard()}
	}

	t.Run("detects direct struct initialization", func(t *testing.T) {
		direct := payment{amount: 100}

		require.Error(t, direct.guard.Validate(errNotConstructed))
	})

	t.Run("accepts objects built by their constructor", func(t *testing.T) {
		p := newPayment(100)

		assert.NoError(t, p.guard.Validate(errNotConstructed))
	})

	t.Run("guard survives copying by value", func(t *testing.T) {
		p := newPayment(100)
		p2 := p

		assert.NoError(t, p2.guard.Validate(errNotConstructed))
	})
}
