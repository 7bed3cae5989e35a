package kernel_test

import (
	"testing"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("add and sub", func(t *testing.T) {
		a := kernel.NewMoney(1250)
		b := kernel.NewMoney(750)

		assert.Equal(t, int64(2000), a.Add(b).Cents())
		assert.Equal(t, int64(500), a.Sub(b).Cents())
	})

	t.Run("multiply by quantity", func(t *testing.T) {
		price := kernel.NewMoney(399)

		assert.Equal(t, int64(1197), price.Multiply(3).Cents())
		assert.Equal(t, int64(0), price.Multiply(0).Cents())
	})

	t.Run("apply rate in basis points", func(t *testing.T) {
		subtotal := kernel.NewMoney(10000)

		// 8.25% tax
		assert.Equal(t, int64(825), subtotal.ApplyRate(825).Cents())
		// truncation toward zero
		assert.Equal(t, int64(8), kernel.NewMoney(99).ApplyRate(825).Cents())
	})
}

func TestMoney_Comparisons(t *testing.T) {
	a := kernel.NewMoney(1000)
	b := kernel.NewMoney(999)

	assert.True(t, a.GreaterThanOrEqual(b))
	assert.True(t, a.GreaterThanOrEqual(a))
	assert.False(t, b.GreaterThanOrEqual(a))
	assert.True(t, a.IsEqual(kernel.NewMoney(1000)))
	assert.False(t, a.IsEqual(b))
}

func TestMoney_Validate(t *testing.T) {
	t.Run("non-negative amounts are valid", func(t *testing.T) {
		require.NoError(t, kernel.NewMoney(0).Validate())
		require.NoError(t, kernel.NewMoney(100).Validate())
	})

	t.Run("negative amounts are invalid", func(t *testing.T) {
		err := kernel.NewMoney(-1).Validate()
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "12.50", kernel.NewMoney(1250).String())
	assert.Equal(t, "0.05", kernel.NewMoney(5).String())
	assert.Equal(t, "-3.07", kernel.NewMoney(-307).String())
	assert.Equal(t, "0.00", kernel.Money{}.String())
}

func TestMoney_ZeroValue(t *testing.T) {
	var m kernel.Money

	assert.True(t, m.IsZero())
	assert.False(t, m.IsNegative())
	require.NoError(t, m.Validate())
}
