package order

import (
	"fmt"

	"pos/internal/core/domain/model/actor"
	"pos/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with a closed transition table so that
// orders follow the kitchen workflow and never move backwards.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Preparing ──> Ready ──> Delivered
//	   │             │            │           │
//	   └─────────────┴────────────┴───────────┴──────> Cancelled
//
// Pending may also jump straight to Preparing when a cashier accepts an
// order without an explicit confirmation step. Delivered and Cancelled are
// terminal. "Settled" (delivered and paid in full) is a derived predicate
// on the aggregate, never a persisted status.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status when an order is first created.
	StatusPending

	// StatusConfirmed indicates the order has been acknowledged but the
	// kitchen has not started it yet.
	StatusConfirmed

	// StatusPreparing indicates the kitchen is working on the order.
	StatusPreparing

	// StatusReady indicates the order is plated and waiting for handoff.
	StatusReady

	// StatusDelivered indicates the order reached the guest.
	// Terminal for the operational workflow; settlement is computed from
	// payments on top of it.
	StatusDelivered

	// StatusCancelled indicates the order was cancelled.
	// Reachable from any non-terminal status. Terminal.
	StatusCancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "Unknown",
		StatusPending:   "Pending",
		StatusConfirmed: "Confirmed",
		StatusPreparing: "Preparing",
		StatusReady:     "Ready",
		StatusDelivered: "Delivered",
		StatusCancelled: "Cancelled",
	}
}

// getValidStatusStrings returns only valid Status values, keyed by their
// string representation for parsing.
func getValidStatusStrings() map[string]Status {
	return map[string]Status{
		"Pending":   StatusPending,
		"Confirmed": StatusConfirmed,
		"Preparing": StatusPreparing,
		"Ready":     StatusReady,
		"Delivered": StatusDelivered,
		"Cancelled": StatusCancelled,
	}
}

// getTransitionTable returns the closed set of allowed status edges.
// Cancellation edges are included here; the aggregate layers the
// pending-cancellation guard and capability checks on top.
func getTransitionTable() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:   {StatusConfirmed, StatusPreparing, StatusCancelled},
		StatusConfirmed: {StatusPreparing, StatusCancelled},
		StatusPreparing: {StatusReady, StatusCancelled},
		StatusReady:     {StatusDelivered, StatusCancelled},
		StatusDelivered: {},
		StatusCancelled: {},
	}
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// StatusFromString parses a status from its string representation.
func StatusFromString(str string) (Status, error) {
	if s, ok := getValidStatusStrings()[str]; ok {
		return s, nil
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", str))
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo checks whether target is a legal edge from s without
// performing the transition.
//
// Returns:
//   - nil if the edge exists in the lifecycle graph
//   - InvalidTransitionError otherwise
func (s Status) CanTransitionTo(target Status) error {
	for _, next := range getTransitionTable()[s] {
		if next == target {
			return nil
		}
	}
	return errs.NewInvalidTransitionError(s.String(), target.String())
}

// TransitionTo moves the status along a legal edge.
//
// Returns:
//   - (target, nil) on a valid transition
//   - (StatusUnknown, InvalidTransitionError) if the edge is not allowed
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := s.CanTransitionTo(target); err != nil {
		return StatusUnknown, err
	}
	return target, nil
}

// RequiredCapability returns the capability an actor must hold to request
// the transition from any status to the target. The binding is a closed
// table: accepting an order into preparation and advancing it through the
// kitchen are distinct capabilities, and cancelling is deliberately scarce.
func RequiredCapability(target Status) actor.Capability {
	switch target {
	case StatusCancelled:
		return actor.CapCancelOrder
	case StatusConfirmed, StatusPreparing:
		return actor.CapAcceptOrder
	case StatusReady, StatusDelivered:
		return actor.CapAdvanceOrder
	default:
		// No legal edge reaches Pending or Unknown; the transition table
		// rejects these before the capability is consulted.
		return actor.CapUpdateOrder
	}
}

// MutableStatuses returns the statuses in which an order's line items may
// still be amended. Once the kitchen starts preparing, lines are frozen.
func MutableStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed}
}

// ActiveStatuses returns the statuses shown on active boards. Delivered
// orders stay listed until settled, which the query layer derives from
// payments; Cancelled orders drop off immediately.
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusDelivered}
}
