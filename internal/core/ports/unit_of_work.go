package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command so concurrent
// handlers never share transactional state.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary for a single business operation.
// Callers control the lifecycle explicitly: Begin, then Commit or Rollback.
type UnitOfWork interface {
	// Begin opens a database transaction.
	Begin(ctx context.Context) error

	// Commit finishes the active transaction. Fails when no transaction
	// is active.
	Commit(ctx context.Context) error

	// Rollback discards the active transaction. Fails when no transaction
	// is active.
	Rollback(ctx context.Context) error

	// OrderRepository returns a repository bound to the transaction opened
	// by Begin.
	OrderRepository() OrderRepository
}
