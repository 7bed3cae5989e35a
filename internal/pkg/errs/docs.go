// Package errs provides standardized error types for the point-of-sale application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes general-purpose validation errors:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - Other specialized error types for specific validation failures
//
// and the order-lifecycle failure taxonomy:
//   - ForbiddenError: The acting role lacks the required capability
//   - InvalidTransitionError: A status change outside the lifecycle graph
//   - ConflictError: A benign lost race (duplicate or stale request)
//   - InsufficientStockError: A submission rejected for lack of ingredients
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// This standardized approach to error handling improves error reporting,
// makes error handling more consistent, and enables better error classification
// and handling throughout the application.
package errs
