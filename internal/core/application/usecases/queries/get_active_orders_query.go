// Package queries contains read operations in the CQRS architecture.
// Query handlers read the database directly, bypassing the aggregate and
// its unit of work, and return plain response shapes for the transport
// layer and the client-side projection.
package queries

import (
	"errors"
	"time"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves the working set of a branch: every order
// that is not cancelled, including delivered-but-unsettled ones. This is
// the payload the client projection hydrates from on startup and after a
// connection gap.
//
// Example:
//
//	query, err := NewGetActiveOrdersQuery(branchID, nil)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type GetActiveOrdersQuery struct { //nolint:recvcheck //using for validation
	branchID kernel.UUID
	statuses []order.Status

	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query for a branch's active orders.
// A nil status set means every active status, cancelled excluded.
func NewGetActiveOrdersQuery(branchID kernel.UUID, statuses []order.Status) (GetActiveOrdersQuery, error) {
	q := GetActiveOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setBranchID(branchID); err != nil {
		return GetActiveOrdersQuery{}, err
	}

	if len(statuses) == 0 {
		statuses = order.ActiveStatuses()
	}
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return GetActiveOrdersQuery{}, err
		}
	}
	q.statuses = statuses

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// BranchID returns the branch being queried.
func (q GetActiveOrdersQuery) BranchID() kernel.UUID {
	return q.branchID
}

// Statuses returns the status filter set.
func (q GetActiveOrdersQuery) Statuses() []order.Status {
	return q.statuses
}

func (q *GetActiveOrdersQuery) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return err
	}

	q.branchID = branchID
	return nil
}

// ItemResponse is the read shape of one order line.
type ItemResponse struct {
	ProductID          kernel.UUID
	Name               string
	Quantity           int
	UnitPriceCents     int64
	Modifiers          []string
	RemovedIngredients []string
	Note               string
}

// GetActiveOrdersQueryResponse is the read shape of one active order,
// totals and negotiation state included.
type GetActiveOrdersQueryResponse struct {
	ID                       kernel.UUID
	Number                   string
	BranchID                 kernel.UUID
	Status                   order.Status
	DeliveryType             order.DeliveryType
	TableID                  *kernel.UUID
	Items                    []ItemResponse
	SubtotalCents            int64
	TaxTotalCents            int64
	TotalCents               int64
	PaidCents                int64
	Settled                  bool
	CancellationStatus       order.CancellationStatus
	CancellationReason       string
	CancellationDeniedReason string
	CreatedAt                time.Time
	UpdatedAt                time.Time
}
