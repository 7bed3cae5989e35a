// Package actor provides the domain model for connected clients of the
// point-of-sale system: waiters, cashiers, managers, kitchen displays and
// table boards.
//
// The package includes:
//   - Actor: An identified, role-bearing client issuing order commands
//   - Role: The closed set of roles an actor may hold
//   - Capability: Named permissions checked before an order operation runs
//
// Capabilities are deliberately scarce: only cashiers and managers hold the
// direct cancel capability, while any waiter can request an update. The
// mapping from role to capability is owned by the permission oracle adapter;
// this package only defines the vocabulary.
package actor
