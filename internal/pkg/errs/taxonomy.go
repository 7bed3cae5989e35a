package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the order-lifecycle failure taxonomy.
var (
	// ErrForbidden indicates the acting role lacks the capability bound to
	// the attempted operation. Never retried automatically.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidTransition indicates an order status change that is not an
	// edge of the lifecycle graph.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrConflict indicates the operation lost a race against concurrent
	// state (duplicate cancellation request, already-resolved request,
	// stale aggregate version). Treated as a benign no-op by callers.
	ErrConflict = errors.New("conflict")

	// ErrInsufficientStock indicates an order submission was rejected
	// because an ingredient ran out.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ForbiddenError carries the capability that was required and missing.
type ForbiddenError struct {
	Capability string
	Cause      error
}

// NewForbiddenError creates a ForbiddenError for the named capability.
func NewForbiddenError(capability string) *ForbiddenError {
	return &ForbiddenError{Capability: capability}
}

// NewForbiddenErrorWithCause creates a ForbiddenError wrapping a cause.
func NewForbiddenErrorWithCause(capability string, cause error) *ForbiddenError {
	return &ForbiddenError{Capability: capability, Cause: cause}
}

func (e *ForbiddenError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrForbidden, e.Capability, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrForbidden, e.Capability))
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// InvalidTransitionError carries the rejected status edge.
type InvalidTransitionError struct {
	From string
	To   string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the edge from -> to.
func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ConflictError describes a benign lost race.
type ConflictError struct {
	ParamName string
	Cause     error
}

// NewConflictError creates a ConflictError without a cause.
func NewConflictError(paramName string) *ConflictError {
	return &ConflictError{ParamName: paramName}
}

// NewConflictErrorWithCause creates a ConflictError wrapping a cause.
func NewConflictErrorWithCause(paramName string, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrConflict, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrConflict, e.ParamName))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// InsufficientStockError carries the structured shortage detail published by
// the order store. Ingredient/IngredientType may be empty when the store
// could only report an opaque message; callers must tolerate both shapes.
type InsufficientStockError struct {
	Ingredient     string
	IngredientType string
	Available      int
	Message        string
}

// NewInsufficientStockError creates a structured InsufficientStockError.
func NewInsufficientStockError(ingredient, ingredientType string, available int) *InsufficientStockError {
	return &InsufficientStockError{
		Ingredient:     ingredient,
		IngredientType: ingredientType,
		Available:      available,
	}
}

// NewInsufficientStockErrorFromMessage creates an opaque InsufficientStockError
// when no structured detail is available.
func NewInsufficientStockErrorFromMessage(message string) *InsufficientStockError {
	return &InsufficientStockError{Message: message}
}

// HasDetail reports whether the error carries structured ingredient detail.
func (e *InsufficientStockError) HasDetail() bool {
	return e.Ingredient != ""
}

func (e *InsufficientStockError) Error() string {
	if e.HasDetail() {
		return sanitize(fmt.Sprintf("%s: %s (%s), available: %d",
			ErrInsufficientStock, e.Ingredient, e.IngredientType, e.Available))
	}
	if e.Message != "" {
		return sanitize(fmt.Sprintf("%s: %s", ErrInsufficientStock, e.Message))
	}
	return ErrInsufficientStock.Error()
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
