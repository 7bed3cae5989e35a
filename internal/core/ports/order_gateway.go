package ports

import (
	"context"

	"pos/internal/core/domain/events"
)

// CreateOrderRequest is the actor-side shape for submitting a new order.
type CreateOrderRequest struct {
	BranchID     string
	DeliveryType string
	TableID      *string
	ContactName  string
	ContactPhone string
	Address      string
	Items        []events.ItemSnapshot
}

// OrderGateway is the actor-side view of the order store's REST surface.
// Every method is an asynchronous round trip; errors carry the failure
// taxonomy (Forbidden, InvalidTransition, Conflict, InsufficientStock) so
// the projection and session layers can react without parsing messages.
type OrderGateway interface {
	// FetchActive retrieves the branch's active orders filtered by status set.
	FetchActive(ctx context.Context, branchID string, statuses []string) ([]events.OrderSnapshot, error)

	// CreateOrder submits a new order and returns the stored snapshot.
	CreateOrder(ctx context.Context, req CreateOrderRequest) (events.OrderSnapshot, error)

	// AppendItems adds lines to an existing, still-amendable order.
	AppendItems(ctx context.Context, orderID string, items []events.ItemSnapshot) (events.OrderSnapshot, error)

	// PatchStatus requests a lifecycle transition.
	PatchStatus(ctx context.Context, orderID string, status string) error

	// SubmitPayment records a payment against the order.
	SubmitPayment(ctx context.Context, orderID string, amountCents int64, method string) error

	// RequestCancellation opens (or, for direct-cancel holders, immediately
	// applies) a cancellation.
	RequestCancellation(ctx context.Context, orderID string, reason string) error

	// ResolveCancellation approves or denies a pending request.
	ResolveCancellation(ctx context.Context, orderID string, approve bool, note string) error
}
