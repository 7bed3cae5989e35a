package ports

import (
	"context"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The store is the single mutator of truth: concurrent transition attempts
// on the same order serialize here, and Update enforces the aggregate's
// optimistic-concurrency version.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Fails with a version conflict when the stored version no longer
	// matches the aggregate's version.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Within a unit-of-work transaction the row is locked for update, so
	// concurrent read-modify-write cycles on the same order serialize.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its human-readable order number.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// GetAllActive retrieves the orders of a branch whose status is in the
	// given set. Used by the active-board queries and the projection
	// refresh poll.
	GetAllActive(ctx context.Context, branchID kernel.UUID, statuses []order.Status) ([]*order.Order, error)
}
