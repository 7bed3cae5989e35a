package queries

import (
	"errors"
	"time"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/pkg/guard"
)

var ErrGetOrdersBoardQueryIsNotConstructed = errors.New(
	"GetOrdersBoardQuery must be created via NewGetOrdersBoardQuery constructor",
)

// GetOrdersBoardQuery retrieves the table-board view of a branch: one
// lightweight card per active order, grouped by status. Cards carry no
// lines; the board only shows numbers, totals and the cancellation badge.
//
// Example:
//
//	query := NewGetOrdersBoardQuery(branchID)
//	board, err := handler.Handle(ctx, query)
//	for _, card := range board.Columns[order.StatusPreparing] {
//	    fmt.Println(card.Number)
//	}
type GetOrdersBoardQuery struct { //nolint:recvcheck //using for validation
	branchID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrdersBoardQuery creates a query for a branch's board view.
func NewGetOrdersBoardQuery(branchID kernel.UUID) (GetOrdersBoardQuery, error) {
	q := GetOrdersBoardQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := branchID.Validate(); err != nil {
		return GetOrdersBoardQuery{}, err
	}
	q.branchID = branchID

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersBoardQueryIsNotConstructed)
}

// BranchID returns the branch being queried.
func (q GetOrdersBoardQuery) BranchID() kernel.UUID {
	return q.branchID
}

// OrderCard is one entry on the board.
type OrderCard struct {
	ID                  kernel.UUID
	Number              string
	Status              order.Status
	TotalCents          int64
	CancellationPending bool
	CreatedAt           time.Time
}

// GetOrdersBoardQueryResponse groups the branch's active orders by status.
// Statuses without orders are present with empty columns so the board
// renders a stable layout.
type GetOrdersBoardQueryResponse struct {
	Columns map[order.Status][]OrderCard
}
