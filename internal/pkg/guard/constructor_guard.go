// Package guard provides a defensive construction pattern shared by commands
// and other objects that must only be created through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by ConstructorGuard.Validate()
// when a nil error is passed as the validation error. This ensures that validation
// always fails with a meaningful message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures objects are only created through their designated
// constructor functions. A zero-value guard fails validation, so any struct
// embedding a guard can detect direct struct initialization.
//
// Example usage:
//
//	type CreateOrderCommand struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewCreateOrderCommand(orderID kernel.UUID) (CreateOrderCommand, error) {
//	    return CreateOrderCommand{
//	        orderID: orderID,
//	        guard:   guard.NewConstructorGuard(),
//	    }, nil
//	}
//
//	func (c CreateOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly constructed.
// This should be called in the constructor of the guarded object.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was properly constructed.
//
// If the object was created as a zero value, the provided validation error is
// returned. If validationError is nil, ErrDefaultConstructorGuard is returned
// instead.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}

	if validationError == nil {
		return ErrDefaultConstructorGuard
	}

	return validationError
}
