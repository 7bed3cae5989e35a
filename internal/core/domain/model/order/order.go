package order

import (
	"errors"
	"fmt"
	"time"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order represents a restaurant order in the system. It is the aggregate root
// that manages the order lifecycle from creation through kitchen preparation,
// delivery and payment, including the cancellation negotiation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty order number
//   - total == subtotal + taxTotal at all times
//   - Items are exclusively owned; item quantity is always >= 1
//   - Payments are append-only; the aggregate never mutates the ledger
//   - Status transitions follow the lifecycle graph in Status
//   - No status transition while a cancellation request is pending, other
//     than the resolution transitions
//   - At most one cancellation request is pending at a time
//
// Settlement (delivered and paid in full) is a derived predicate, never a
// stored status, so the payment ledger remains the single source of truth
// for "is this paid".
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// number is the human-readable order number shown on tickets and boards
	number string

	// branchID identifies the branch the order belongs to
	branchID kernel.UUID

	// deliveryType says how the order reaches the guest
	deliveryType DeliveryType

	// tableID is the table for dine-in orders (nil otherwise)
	tableID *kernel.UUID

	// delivery holds contact fields for couriered orders
	delivery DeliveryDetails

	// items is the ordered sequence of lines, exclusively owned
	items []Item

	// payments is the append-only payment ledger
	payments []Payment

	// taxRateBps is the branch tax rate in basis points, captured at creation
	taxRateBps int64

	// subtotal, taxTotal and total are derived from items on every change
	subtotal kernel.Money
	taxTotal kernel.Money
	total    kernel.Money

	// status is the current state in the order lifecycle
	status Status

	// cancellation is the negotiation sub-state
	cancellation Cancellation

	// version supports optimistic concurrency at the persistence layer
	version int

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a new Order in Pending status with validation. This is the
// only way to create a fresh order, ensuring all business invariants hold.
//
// Parameters:
//   - id: unique identifier (must be valid)
//   - number: human-readable order number (must be non-empty)
//   - branchID: owning branch (must be valid)
//   - deliveryType: dine-in, takeaway or delivery
//   - tableID: required for dine-in, must be nil otherwise
//   - delivery: contact fields, required for delivery orders
//   - taxRateBps: branch tax rate in basis points (must not be negative)
//
// The order starts with no items; lines are added through AddItem before or
// after persistence while the order is still amendable.
func NewOrder(
	id kernel.UUID,
	number string,
	branchID kernel.UUID,
	deliveryType DeliveryType,
	tableID *kernel.UUID,
	delivery DeliveryDetails,
	taxRateBps int64,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        StatusPending,
		taxRateBps:    taxRateBps,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setBranchID(branchID),
		o.setDeliveryType(deliveryType, tableID, delivery),
		o.setTaxRate(taxRateBps),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without re-running
// creation-time rules. Field consistency is still validated so corrupted
// rows surface as errors instead of invalid aggregates.
func RestoreOrder(
	id kernel.UUID,
	number string,
	branchID kernel.UUID,
	deliveryType DeliveryType,
	tableID *kernel.UUID,
	delivery DeliveryDetails,
	items []Item,
	payments []Payment,
	taxRateBps int64,
	status Status,
	cancellation Cancellation,
	version int,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		items:         append([]Item(nil), items...),
		payments:      append([]Payment(nil), payments...),
		status:        status,
		cancellation:  cancellation,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setBranchID(branchID),
		o.setDeliveryType(deliveryType, tableID, delivery),
		o.setTaxRate(taxRateBps),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	o.recomputeTotals()
	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// BranchID returns the owning branch's identifier.
func (o *Order) BranchID() kernel.UUID {
	return o.branchID
}

// DeliveryType returns how the order reaches the guest.
func (o *Order) DeliveryType() DeliveryType {
	return o.deliveryType
}

// TableID returns the table for dine-in orders, nil otherwise.
func (o *Order) TableID() *kernel.UUID {
	return o.tableID
}

// Delivery returns the contact fields for couriered orders.
func (o *Order) Delivery() DeliveryDetails {
	return o.delivery
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Payments returns a copy of the append-only payment ledger.
func (o *Order) Payments() []Payment {
	return append([]Payment(nil), o.payments...)
}

// TaxRateBps returns the tax rate captured at creation, in basis points.
func (o *Order) TaxRateBps() int64 {
	return o.taxRateBps
}

// Subtotal returns the sum of all line totals.
func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// TaxTotal returns the tax derived from the subtotal.
func (o *Order) TaxTotal() kernel.Money {
	return o.taxTotal
}

// Total returns subtotal plus tax.
func (o *Order) Total() kernel.Money {
	return o.total
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Cancellation returns the negotiation sub-state.
func (o *Order) Cancellation() Cancellation {
	return o.cancellation
}

// Version returns the optimistic-concurrency version.
func (o *Order) Version() int {
	return o.version
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last-modification timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// AddItem merges a line into the order. A line with the same identity
// (product, modifier set, removal set, note) increments the existing
// quantity instead of creating a duplicate row.
//
// Lines may only change while the order is Pending or Confirmed.
func (o *Order) AddItem(item Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if err := o.ensureAmendable(); err != nil {
		return err
	}

	key := item.Key()
	for i, existing := range o.items {
		if existing.Key() == key {
			o.items[i] = existing.withQuantity(existing.Quantity() + item.Quantity())
			o.recomputeTotals()
			o.touch()
			return nil
		}
	}

	o.items = append(o.items, item)
	o.recomputeTotals()
	o.touch()
	return nil
}

// DecrementItem lowers the quantity of the line with the given identity key
// by one; reaching zero removes the line entirely rather than persisting a
// zero-quantity row.
func (o *Order) DecrementItem(key string) error {
	if err := o.ensureAmendable(); err != nil {
		return err
	}

	for i, existing := range o.items {
		if existing.Key() != key {
			continue
		}

		if existing.Quantity() > 1 {
			o.items[i] = existing.withQuantity(existing.Quantity() - 1)
		} else {
			o.items = append(o.items[:i], o.items[i+1:]...)
		}
		o.recomputeTotals()
		o.touch()
		return nil
	}

	return errs.NewObjectNotFoundError("order item", key)
}

// TransitionTo moves the order along a legal lifecycle edge.
//
// Fails with:
//   - ConflictError while a cancellation request is pending (the resolution
//     methods are the only way out of that state)
//   - InvalidTransitionError when the edge is not in the lifecycle graph
//
// Neither failure mutates the order.
func (o *Order) TransitionTo(target Status) error {
	if o.cancellation.IsPending() {
		return errs.NewConflictErrorWithCause("status transition",
			fmt.Errorf("cancellation request is pending on order %s", o.number))
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// Cancel cancels the order directly, without any negotiation state. Used by
// actors holding the direct-cancel capability.
//
// While a cancellation request is pending, direct cancel is rejected as a
// conflict: the pending request must be resolved instead, so that the
// requester sees an answer rather than a silently vanished order.
func (o *Order) Cancel() error {
	return o.TransitionTo(StatusCancelled)
}

// RequestCancellation opens a cancellation request with the given reason.
// The order's visible status does not change.
//
// Fails with:
//   - InvalidTransitionError when the order is already terminal
//   - ConflictError when a request is already pending (the requester's
//     intent is already recorded; callers surface this as a no-op)
func (o *Order) RequestCancellation(reason string) error {
	if o.status.IsTerminal() {
		return errs.NewInvalidTransitionError(o.status.String(), StatusCancelled.String())
	}

	updated, err := o.cancellation.request(reason)
	if err != nil {
		return err
	}

	o.cancellation = updated
	o.touch()
	return nil
}

// ApproveCancellation resolves the pending request positively: the order
// becomes Cancelled and the pending state is cleared.
//
// Fails with ConflictError when no request is pending, which makes a double
// resolution idempotent from the caller's point of view.
func (o *Order) ApproveCancellation() error {
	updated, err := o.cancellation.approve()
	if err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(StatusCancelled)
	if err != nil {
		return err
	}

	o.cancellation = updated
	o.status = newStatus
	o.touch()
	return nil
}

// DenyCancellation resolves the pending request negatively. The order's
// operational status is left exactly as it was before the request; only the
// denial reason is recorded for display to the original requester.
//
// Fails with:
//   - ConflictError when no request is pending (double resolution)
//   - ValueIsRequiredError when the denial note is empty
func (o *Order) DenyCancellation(note string) error {
	updated, err := o.cancellation.deny(note)
	if err != nil {
		return err
	}

	o.cancellation = updated
	o.touch()
	return nil
}

// AddPayment appends a payment to the ledger. Cancelled orders accept no
// payments; delivered orders do, since settlement happens after handoff.
// The ledger is never clamped: a concurrent overpayment is recorded as-is
// and reconciled by staff.
func (o *Order) AddPayment(payment Payment) error {
	if err := payment.Validate(); err != nil {
		return err
	}
	if o.status == StatusCancelled {
		return errs.NewConflictErrorWithCause("payment",
			fmt.Errorf("order %s is cancelled", o.number))
	}

	o.payments = append(o.payments, payment)
	o.touch()
	return nil
}

// PaidTotal returns the sum of completed payments.
func (o *Order) PaidTotal() kernel.Money {
	paid := kernel.Money{}
	for _, p := range o.payments {
		if p.IsCompleted() {
			paid = paid.Add(p.Amount())
		}
	}
	return paid
}

// IsSettled reports the derived terminal condition: delivered and paid in
// full. Settled orders leave the active boards but keep their Delivered
// status; settlement is computed here, never persisted.
func (o *Order) IsSettled() bool {
	return o.status == StatusDelivered && o.PaidTotal().GreaterThanOrEqual(o.total)
}

func (o *Order) ensureAmendable() error {
	if o.cancellation.IsPending() {
		return errs.NewConflictErrorWithCause("order amendment",
			fmt.Errorf("cancellation request is pending on order %s", o.number))
	}
	for _, s := range MutableStatuses() {
		if o.status == s {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("order amendment",
		fmt.Errorf("lines are frozen in status %s", o.status))
}

func (o *Order) recomputeTotals() {
	subtotal := kernel.Money{}
	for _, item := range o.items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	o.subtotal = subtotal
	o.taxTotal = subtotal.ApplyRate(o.taxRateBps)
	o.total = o.subtotal.Add(o.taxTotal)
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

func (o *Order) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return err
	}
	o.branchID = branchID
	return nil
}

func (o *Order) setDeliveryType(deliveryType DeliveryType, tableID *kernel.UUID, delivery DeliveryDetails) error {
	if err := deliveryType.Validate(); err != nil {
		return err
	}

	switch deliveryType {
	case DeliveryTypeDineIn:
		if tableID == nil {
			return errs.NewValueIsRequiredError("table for dine-in order")
		}
		if err := tableID.Validate(); err != nil {
			return err
		}
	case DeliveryTypeDelivery:
		if err := delivery.Validate(); err != nil {
			return err
		}
	case DeliveryTypeTakeaway:
		// no extra requirements
	}

	o.deliveryType = deliveryType
	o.tableID = tableID
	o.delivery = delivery
	return nil
}

func (o *Order) setTaxRate(taxRateBps int64) error {
	if taxRateBps < 0 {
		return errs.NewValueIsInvalidErrorWithCause("tax rate",
			fmt.Errorf("%d basis points is negative", taxRateBps))
	}
	o.taxRateBps = taxRateBps
	return nil
}
