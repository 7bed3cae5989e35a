// Package projection maintains an actor's local view of the branch's active
// orders. The store is the single mutator of truth; this layer only mirrors
// it, optimistically for the actor's own writes and reactively for everyone
// else's via bus events and the periodic refresh poll.
package projection

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"pos/internal/core/domain/events"
	"pos/internal/core/domain/model/order"
	"pos/internal/core/ports"
	"pos/internal/pkg/errs"
)

// notificationFeedSize bounds the toast feed; older entries fall off.
const notificationFeedSize = 10

// Notification is one entry of the actor's toast feed.
type Notification struct {
	Topic       string
	OrderID     string
	OrderNumber string
	Detail      string
}

// entry is the projection's record for one order.
type entry struct {
	snapshot events.OrderSnapshot

	// revision increments on every applied change so views can cheaply
	// detect staleness.
	revision int

	// inFlight marks an optimistic mutation awaiting the store's verdict.
	// While set, incoming events are buffered instead of applied, so the
	// actor's own echo cannot clobber the optimistic state mid-request.
	inFlight bool
	rollback events.OrderSnapshot
	buffered []events.Event
}

// Projection is a per-actor in-memory order set keyed by order id.
//
// It is NOT safe for concurrent use: a single goroutine (the actor loop in
// this package) owns each instance, and commands and events are serialized
// through that loop. This mirrors the store's single-writer discipline
// without any cross-actor locking.
type Projection struct {
	branchID string
	gateway  ports.OrderGateway
	logger   *slog.Logger

	orders map[string]*entry
	feed   []Notification
}

// NewProjection creates an empty projection for one actor at one branch.
func NewProjection(branchID string, gateway ports.OrderGateway, logger *slog.Logger) *Projection {
	return &Projection{
		branchID: branchID,
		gateway:  gateway,
		logger:   logger,
		orders:   make(map[string]*entry),
		feed:     make([]Notification, 0, notificationFeedSize),
	}
}

// Get returns the current snapshot of one order.
func (p *Projection) Get(orderID string) (events.OrderSnapshot, bool) {
	e, ok := p.orders[orderID]
	if !ok {
		return events.OrderSnapshot{}, false
	}
	return e.snapshot, true
}

// Revision returns the local revision of one order, 0 when unknown.
func (p *Projection) Revision(orderID string) int {
	if e, ok := p.orders[orderID]; ok {
		return e.revision
	}
	return 0
}

// Orders returns every projected order, oldest first.
func (p *Projection) Orders() []events.OrderSnapshot {
	snapshots := make([]events.OrderSnapshot, 0, len(p.orders))
	for _, e := range p.orders {
		snapshots = append(snapshots, e.snapshot)
	}
	sort.Slice(snapshots, func(i, j int) bool {
		if snapshots[i].CreatedAt.Equal(snapshots[j].CreatedAt) {
			return snapshots[i].ID < snapshots[j].ID
		}
		return snapshots[i].CreatedAt.Before(snapshots[j].CreatedAt)
	})
	return snapshots
}

// Notifications returns the toast feed, oldest first.
func (p *Projection) Notifications() []Notification {
	return append([]Notification(nil), p.feed...)
}

// Stage applies an optimistic mutation: the exact pre-mutation snapshot is
// captured for rollback, the mutation is applied immediately, and the order
// is marked in-flight until Confirm or Fail.
//
// Fails with:
//   - ObjectNotFoundError when the order is not projected
//   - ConflictError when another mutation is already in flight
func (p *Projection) Stage(orderID string, mutate func(*events.OrderSnapshot)) error {
	e, ok := p.orders[orderID]
	if !ok {
		return errs.NewObjectNotFoundError("order", orderID)
	}
	if e.inFlight {
		return errs.NewConflictErrorWithCause("optimistic mutation",
			fmt.Errorf("a mutation is already in flight for order %s", e.snapshot.Number))
	}

	e.rollback = copySnapshot(e.snapshot)
	e.inFlight = true
	mutate(&e.snapshot)
	e.revision++

	return nil
}

// Confirm resolves an in-flight mutation positively: the optimistic state
// stands, the rollback slot is discarded, and any events buffered during
// the round trip are applied in arrival order.
func (p *Projection) Confirm(orderID string) {
	e, ok := p.orders[orderID]
	if !ok || !e.inFlight {
		return
	}

	e.inFlight = false
	e.rollback = events.OrderSnapshot{}
	p.drainBuffered(e)
}

// Fail resolves an in-flight mutation negatively: the exact pre-mutation
// snapshot is restored, then buffered events are applied in arrival order
// so concurrent truth is not lost with the failed write.
func (p *Projection) Fail(orderID string) {
	e, ok := p.orders[orderID]
	if !ok || !e.inFlight {
		return
	}

	e.inFlight = false
	e.snapshot = e.rollback
	e.rollback = events.OrderSnapshot{}
	e.revision++
	p.drainBuffered(e)
}

func (p *Projection) drainBuffered(e *entry) {
	buffered := e.buffered
	e.buffered = nil
	for _, event := range buffered {
		p.apply(event)
	}
}

// ApplyEvent folds one bus event into the projection. Events for orders
// with an in-flight mutation are buffered; everything else applies
// immediately. Applying the same event twice is harmless: every event
// carries absolute state, not deltas, so replay is idempotent.
func (p *Projection) ApplyEvent(event events.Event) {
	p.pushNotification(event)

	if e, ok := p.orders[event.AggregateID()]; ok && e.inFlight {
		e.buffered = append(e.buffered, event)
		return
	}

	p.apply(event)
}

func (p *Projection) apply(event events.Event) {
	switch evt := event.(type) {
	case events.OrderCreated:
		p.applyCreated(evt)
	case events.OrderStatusChanged:
		p.mutateIfKnown(evt.OrderID, func(s *events.OrderSnapshot) {
			s.Status = evt.Status
		})
	case events.CancellationRequested:
		p.mutateIfKnown(evt.OrderID, func(s *events.OrderSnapshot) {
			s.CancellationStatus = order.CancellationPending.String()
			s.CancellationReason = evt.Reason
		})
	case events.CancellationDenied:
		p.mutateIfKnown(evt.OrderID, func(s *events.OrderSnapshot) {
			s.CancellationStatus = order.CancellationDenied.String()
			s.CancellationDeniedReason = evt.DeniedReason
		})
	case events.CancellationApproved:
		p.mutateIfKnown(evt.OrderID, func(s *events.OrderSnapshot) {
			s.CancellationStatus = order.CancellationApproved.String()
			s.Status = order.StatusCancelled.String()
		})
	default:
		p.logger.Warn("unknown event type ignored", "topic", event.Topic())
	}
}

func (p *Projection) applyCreated(evt events.OrderCreated) {
	if evt.Order.BranchID != p.branchID {
		return
	}

	if e, ok := p.orders[evt.Order.ID]; ok {
		// Replay of an already-known creation: authoritative replace.
		e.snapshot = copySnapshot(evt.Order)
		e.revision++
		return
	}

	p.orders[evt.Order.ID] = &entry{snapshot: copySnapshot(evt.Order), revision: 1}
}

func (p *Projection) mutateIfKnown(orderID string, mutate func(*events.OrderSnapshot)) {
	e, ok := p.orders[orderID]
	if !ok {
		// Event for an order outside the projected scope; the next refresh
		// picks it up if it matters.
		return
	}
	mutate(&e.snapshot)
	e.revision++
}

func (p *Projection) pushNotification(event events.Event) {
	n := Notification{Topic: event.Topic(), OrderID: event.AggregateID()}

	switch evt := event.(type) {
	case events.OrderCreated:
		n.OrderNumber = evt.Order.Number
	case events.OrderStatusChanged:
		n.OrderNumber = evt.OrderNumber
		n.Detail = evt.Status
	case events.CancellationRequested:
		n.OrderNumber = evt.OrderNumber
		n.Detail = evt.Reason
	case events.CancellationDenied:
		n.OrderNumber = evt.OrderNumber
		n.Detail = evt.DeniedReason
	case events.CancellationApproved:
		n.OrderNumber = evt.OrderNumber
	}

	p.feed = append(p.feed, n)
	if len(p.feed) > notificationFeedSize {
		p.feed = p.feed[len(p.feed)-notificationFeedSize:]
	}
}

// Refresh replaces the projected set with the store's current truth via the
// gateway poll. Orders with an in-flight mutation keep their optimistic
// snapshot; the fetched state lands in their buffer as a synthetic creation
// event and applies on Confirm or Fail. Orders that vanished from the
// active set are dropped unless in flight.
func (p *Projection) Refresh(ctx context.Context) error {
	snapshots, err := p.gateway.FetchActive(ctx, p.branchID, nil)
	if err != nil {
		return err
	}

	fetched := make(map[string]struct{}, len(snapshots))
	for _, snapshot := range snapshots {
		fetched[snapshot.ID] = struct{}{}

		e, ok := p.orders[snapshot.ID]
		if !ok {
			p.orders[snapshot.ID] = &entry{snapshot: copySnapshot(snapshot), revision: 1}
			continue
		}
		if e.inFlight {
			e.buffered = append(e.buffered, events.OrderCreated{Order: copySnapshot(snapshot)})
			continue
		}
		e.snapshot = copySnapshot(snapshot)
		e.revision++
	}

	for id, e := range p.orders {
		if _, ok := fetched[id]; !ok && !e.inFlight {
			delete(p.orders, id)
		}
	}

	return nil
}

// copySnapshot deep-copies a snapshot so rollback slots and projected
// entries never share item slices with callers.
func copySnapshot(s events.OrderSnapshot) events.OrderSnapshot {
	c := s
	c.Items = make([]events.ItemSnapshot, len(s.Items))
	for i, item := range s.Items {
		copied := item
		copied.Modifiers = append([]string(nil), item.Modifiers...)
		copied.RemovedIngredients = append([]string(nil), item.RemovedIngredients...)
		c.Items[i] = copied
	}
	if s.TableID != nil {
		tableID := *s.TableID
		c.TableID = &tableID
	}
	return c
}
