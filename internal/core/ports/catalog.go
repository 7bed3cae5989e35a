package ports

import "context"

// Product is one entry of the menu catalog as the composition session sees
// it: enough to price a line and offer modifiers, nothing more.
type Product struct {
	ID              string
	Name            string
	PriceCents      int64
	Modifiers       []string
	BaseIngredients []string
}

// Catalog exposes the menu/recipe subsystem to the composition session.
// The session pins a snapshot at load time so prices do not shift under a
// half-built cart.
type Catalog interface {
	// Snapshot returns the branch's sellable products.
	Snapshot(ctx context.Context, branchID string) ([]Product, error)
}
