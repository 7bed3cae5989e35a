// Package order provides domain entities and business logic for order
// lifecycle management in the point-of-sale system. It implements the Order
// aggregate root with a status state machine, an append-only payment ledger,
// and the cancellation negotiation sub-state.
//
// The package includes:
//   - Order: The aggregate root owning items, payments and cancellation state
//   - Status: A state machine enforcing the kitchen workflow
//   - Item: An order line with modifier-aware identity
//   - Payment: An append-only payment record
//   - Cancellation: The request/approve/deny negotiation sub-state
//
// Key business rules:
//   - Status follows Pending -> Confirmed -> Preparing -> Ready -> Delivered,
//     with Cancelled reachable from any non-terminal status
//   - No status transition is permitted while a cancellation request is
//     pending, other than the resolution transitions themselves
//   - At most one cancellation request may be pending at a time
//   - Totals satisfy total == subtotal + taxTotal at all times
//   - Settlement (delivered and paid in full) is derived from the payment
//     ledger, never stored
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
