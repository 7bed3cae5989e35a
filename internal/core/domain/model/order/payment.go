package order

import (
	"fmt"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
)

// PaymentMethod is the closed set of accepted payment methods.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined method.
	PaymentMethodUnknown PaymentMethod = iota

	// PaymentMethodCash is payment in cash at the register.
	PaymentMethodCash

	// PaymentMethodCard is a card payment through the terminal.
	PaymentMethodCard

	// PaymentMethodTransfer is a bank transfer settled out of band.
	PaymentMethodTransfer
)

// String returns the human-readable name of the payment method.
func (m PaymentMethod) String() string {
	switch m {
	case PaymentMethodCash:
		return "Cash"
	case PaymentMethodCard:
		return "Card"
	case PaymentMethodTransfer:
		return "Transfer"
	default:
		return "Unknown"
	}
}

// Validate checks if the PaymentMethod value is valid.
func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment method is invalid",
			fmt.Errorf("%d is not a valid payment method", m))
	}
}

// PaymentMethodFromString parses a payment method from its string representation.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	switch s {
	case "Cash":
		return PaymentMethodCash, nil
	case "Card":
		return PaymentMethodCard, nil
	case "Transfer":
		return PaymentMethodTransfer, nil
	default:
		return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause("payment method is invalid",
			fmt.Errorf("%q is not a valid payment method", s))
	}
}

// PaymentStatus is the lifecycle state of a single payment.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentStatusPending is a payment submitted but not yet confirmed
	// by the gateway.
	PaymentStatusPending

	// PaymentStatusCompleted is a confirmed payment. Only completed
	// payments count toward settlement.
	PaymentStatusCompleted

	// PaymentStatusFailed is a payment the gateway rejected.
	PaymentStatusFailed
)

// String returns the human-readable name of the payment status.
func (s PaymentStatus) String() string {
	switch s {
	case PaymentStatusPending:
		return "Pending"
	case PaymentStatusCompleted:
		return "Completed"
	case PaymentStatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", s))
	}
}

// Payment is a single payment recorded against an order. Payments are
// append-only from the orchestrator's point of view: the aggregate never
// mutates or deletes a payment, it only reads the ledger to compute the
// outstanding balance.
//
// Transient overpayment during concurrent submission is tolerated and
// reconciled by staff, never silently clamped.
type Payment struct {
	id     kernel.UUID
	amount kernel.Money
	method PaymentMethod
	status PaymentStatus

	isConstructed bool
}

// NewPayment creates a validated payment record.
func NewPayment(id kernel.UUID, amount kernel.Money, method PaymentMethod, status PaymentStatus) (Payment, error) {
	if err := id.Validate(); err != nil {
		return Payment{}, err
	}
	if err := amount.Validate(); err != nil {
		return Payment{}, err
	}
	if amount.IsZero() {
		return Payment{}, errs.NewValueIsInvalidError("payment amount must be positive")
	}
	if err := method.Validate(); err != nil {
		return Payment{}, err
	}
	if err := status.Validate(); err != nil {
		return Payment{}, err
	}

	return Payment{
		id:            id,
		amount:        amount,
		method:        method,
		status:        status,
		isConstructed: true,
	}, nil
}

// Validate ensures the Payment was constructed via NewPayment.
func (p Payment) Validate() error {
	if !p.isConstructed {
		return errs.NewValueIsRequiredError("Payment must be created via NewPayment constructor")
	}
	return nil
}

// ID returns the payment's unique identifier.
func (p Payment) ID() kernel.UUID {
	return p.id
}

// Amount returns the payment amount.
func (p Payment) Amount() kernel.Money {
	return p.amount
}

// Method returns the payment method.
func (p Payment) Method() PaymentMethod {
	return p.method
}

// Status returns the payment status.
func (p Payment) Status() PaymentStatus {
	return p.status
}

// IsCompleted reports whether the payment counts toward settlement.
func (p Payment) IsCompleted() bool {
	return p.status == PaymentStatusCompleted
}
