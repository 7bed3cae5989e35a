package kernel

import (
	"fmt"

	"pos/internal/pkg/errs"
)

// Money is a value object representing a monetary amount in minor units
// (cents). Amounts are integral to avoid floating-point drift when summing
// order lines and payments.
//
// Money is immutable: arithmetic methods return new values. The zero value
// is a valid zero amount, which keeps aggregate totals simple to initialize.
//
// Example usage:
//
//	price := kernel.NewMoney(1250)          // 12.50
//	total := price.Multiply(3)              // 37.50
//	if total.GreaterThanOrEqual(paid) {
//	    // outstanding balance remains
//	}
type Money struct {
	cents int64
}

// NewMoney creates a Money value from an amount in minor units.
// Negative amounts are allowed at construction so that intermediate
// arithmetic (e.g. refund calculations) can be represented; aggregates
// enforce their own non-negativity rules where required.
func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Sub returns the difference of two amounts.
func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

// Multiply returns the amount scaled by a whole quantity.
func (m Money) Multiply(quantity int) Money {
	return Money{cents: m.cents * int64(quantity)}
}

// ApplyRate returns the amount scaled by a rate expressed in basis points
// (1/100 of a percent). Used to derive tax totals from subtotals.
// The result is truncated toward zero.
func (m Money) ApplyRate(basisPoints int64) Money {
	return Money{cents: m.cents * basisPoints / 10000}
}

// GreaterThanOrEqual reports whether m >= other.
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.cents >= other.cents
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.cents < 0
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsEqual compares two amounts for equality.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// Validate checks that the amount is not negative. Aggregates call this on
// values received from external sources (API requests, persistence).
func (m Money) Validate() error {
	if m.cents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%d is negative", m.cents))
	}
	return nil
}

// String returns the amount formatted with two decimal places, e.g. "12.50".
// Intended for logs and error messages, not for rendering.
func (m Money) String() string {
	sign := ""
	cents := m.cents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
