// Package events defines the closed set of order notifications published on
// the event bus after every successful write. Actors consume them to keep
// their local projections fresh without polling.
//
// The bus is at-least-once with no cross-topic ordering guarantee, so every
// payload carries enough state to be applied idempotently: consumers replace
// fields absolutely rather than incrementing them.
package events

import (
	"time"

	"pos/internal/core/domain/model/order"
)

// Topics, one per event type. Used as routing keys on the bus.
const (
	TopicOrderCreated          = "order:created"
	TopicOrderStatus           = "order:status"
	TopicCancellationRequested = "order:cancellation_requested"
	TopicCancellationDenied    = "order:cancellation_denied"
	TopicCancellationApproved  = "order:cancellation_approved"
)

// Event is a single order notification.
type Event interface {
	// Topic returns the routing key the event is published under.
	Topic() string

	// AggregateID returns the order the event concerns.
	AggregateID() string
}

// ItemSnapshot is the wire shape of one order line.
type ItemSnapshot struct {
	ProductID          string   `json:"product_id"`
	Name               string   `json:"name"`
	Quantity           int      `json:"quantity"`
	UnitPriceCents     int64    `json:"unit_price_cents"`
	Modifiers          []string `json:"modifiers,omitempty"`
	RemovedIngredients []string `json:"removed_ingredients,omitempty"`
	Note               string   `json:"note,omitempty"`
}

// OrderSnapshot is the full wire shape of an order, shared by the creation
// event, the REST read endpoints and the client-side projection.
type OrderSnapshot struct {
	ID                       string         `json:"id"`
	Number                   string         `json:"number"`
	BranchID                 string         `json:"branch_id"`
	Status                   string         `json:"status"`
	DeliveryType             string         `json:"delivery_type"`
	TableID                  *string        `json:"table_id,omitempty"`
	Items                    []ItemSnapshot `json:"items"`
	SubtotalCents            int64          `json:"subtotal_cents"`
	TaxTotalCents            int64          `json:"tax_total_cents"`
	TotalCents               int64          `json:"total_cents"`
	PaidCents                int64          `json:"paid_cents"`
	Settled                  bool           `json:"settled"`
	CancellationStatus       string         `json:"cancellation_status"`
	CancellationReason       string         `json:"cancellation_reason,omitempty"`
	CancellationDeniedReason string         `json:"cancellation_denied_reason,omitempty"`
	CreatedAt                time.Time      `json:"created_at"`
	UpdatedAt                time.Time      `json:"updated_at"`
}

// SnapshotFromOrder projects an order aggregate into its wire shape.
func SnapshotFromOrder(o *order.Order) OrderSnapshot {
	items := make([]ItemSnapshot, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemSnapshot{
			ProductID:          item.ProductID().String(),
			Name:               item.Name(),
			Quantity:           item.Quantity(),
			UnitPriceCents:     item.UnitPrice().Cents(),
			Modifiers:          item.Modifiers(),
			RemovedIngredients: item.RemovedIngredients(),
			Note:               item.Note(),
		})
	}

	var tableID *string
	if id := o.TableID(); id != nil {
		s := id.String()
		tableID = &s
	}

	return OrderSnapshot{
		ID:                       o.ID().String(),
		Number:                   o.Number(),
		BranchID:                 o.BranchID().String(),
		Status:                   o.Status().String(),
		DeliveryType:             o.DeliveryType().String(),
		TableID:                  tableID,
		Items:                    items,
		SubtotalCents:            o.Subtotal().Cents(),
		TaxTotalCents:            o.TaxTotal().Cents(),
		TotalCents:               o.Total().Cents(),
		PaidCents:                o.PaidTotal().Cents(),
		Settled:                  o.IsSettled(),
		CancellationStatus:       o.Cancellation().Status().String(),
		CancellationReason:       o.Cancellation().Reason(),
		CancellationDeniedReason: o.Cancellation().DeniedReason(),
		CreatedAt:                o.CreatedAt(),
		UpdatedAt:                o.UpdatedAt(),
	}
}

// OrderCreated carries the full snapshot of a newly created order.
type OrderCreated struct {
	Order OrderSnapshot `json:"order"`
}

func (e OrderCreated) Topic() string       { return TopicOrderCreated }
func (e OrderCreated) AggregateID() string { return e.Order.ID }

// OrderStatusChanged announces a lifecycle transition.
type OrderStatusChanged struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
}

func (e OrderStatusChanged) Topic() string       { return TopicOrderStatus }
func (e OrderStatusChanged) AggregateID() string { return e.OrderID }

// CancellationRequested announces an open cancellation request so every
// connected actor sees the pending badge immediately.
type CancellationRequested struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Reason      string `json:"reason"`
}

func (e CancellationRequested) Topic() string       { return TopicCancellationRequested }
func (e CancellationRequested) AggregateID() string { return e.OrderID }

// CancellationDenied announces a denied request, carrying the resolver's
// note for display to the original requester.
type CancellationDenied struct {
	OrderID      string `json:"order_id"`
	OrderNumber  string `json:"order_number"`
	DeniedReason string `json:"denied_reason"`
}

func (e CancellationDenied) Topic() string       { return TopicCancellationDenied }
func (e CancellationDenied) AggregateID() string { return e.OrderID }

// CancellationApproved announces that a pending request was approved and
// the order is cancelled.
type CancellationApproved struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
}

func (e CancellationApproved) Topic() string       { return TopicCancellationApproved }
func (e CancellationApproved) AggregateID() string { return e.OrderID }
