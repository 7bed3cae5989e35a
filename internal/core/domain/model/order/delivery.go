package order

import (
	"errors"
	"fmt"

	"pos/internal/pkg/errs"
)

// DeliveryType is the closed set of ways an order reaches the guest.
type DeliveryType int

const (
	// DeliveryTypeUnknown represents an invalid or undefined type.
	DeliveryTypeUnknown DeliveryType = iota

	// DeliveryTypeDineIn is served at a table; requires a table.
	DeliveryTypeDineIn

	// DeliveryTypeTakeaway is picked up at the counter.
	DeliveryTypeTakeaway

	// DeliveryTypeDelivery is couriered out; requires contact details.
	DeliveryTypeDelivery
)

// String returns the human-readable name of the delivery type.
func (t DeliveryType) String() string {
	switch t {
	case DeliveryTypeDineIn:
		return "DineIn"
	case DeliveryTypeTakeaway:
		return "Takeaway"
	case DeliveryTypeDelivery:
		return "Delivery"
	default:
		return "Unknown"
	}
}

// Validate checks if the DeliveryType value is valid.
func (t DeliveryType) Validate() error {
	switch t {
	case DeliveryTypeDineIn, DeliveryTypeTakeaway, DeliveryTypeDelivery:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("delivery type is invalid",
			fmt.Errorf("%d is not a valid delivery type", t))
	}
}

// DeliveryTypeFromString parses a delivery type from its string representation.
func DeliveryTypeFromString(s string) (DeliveryType, error) {
	switch s {
	case "DineIn":
		return DeliveryTypeDineIn, nil
	case "Takeaway":
		return DeliveryTypeTakeaway, nil
	case "Delivery":
		return DeliveryTypeDelivery, nil
	default:
		return DeliveryTypeUnknown, errs.NewValueIsInvalidErrorWithCause("delivery type is invalid",
			fmt.Errorf("%q is not a valid delivery type", s))
	}
}

// DeliveryDetails holds the contact fields for a couriered order. For
// dine-in and takeaway orders the zero value is used.
type DeliveryDetails struct {
	ContactName  string
	ContactPhone string
	Address      string
}

// Validate ensures delivery contact fields are complete. Only called for
// DeliveryTypeDelivery orders.
func (d DeliveryDetails) Validate() error {
	return errors.Join(
		requireField("contact name", d.ContactName),
		requireField("contact phone", d.ContactPhone),
		requireField("delivery address", d.Address),
	)
}

// IsZero reports whether no contact fields are set.
func (d DeliveryDetails) IsZero() bool {
	return d == DeliveryDetails{}
}

func requireField(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
