// Package services provides domain services that orchestrate business rules
// across aggregates and external collaborators in the point-of-sale system.
//
// The package includes:
//   - TransitionAuthorizer: Combines the permission-oracle capability check
//     with the order lifecycle graph to decide which transition an actor
//     may request
//
// Domain services hold logic that does not naturally belong to a single
// aggregate root, following Domain-Driven Design principles.
package services
