package queries

import (
	"context"
	"time"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersBoardQueryHandler builds the board view from the database.
// A single aggregated query avoids loading lines for every order just to
// show a total on a card.
type GetOrdersBoardQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersBoardQueryHandler creates a handler for board queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersBoardQueryHandler(db *gorm.DB) GetOrdersBoardQueryHandler {
	return GetOrdersBoardQueryHandler{db: db}
}

// Handle executes the board query. Every active status gets a column, empty
// ones included; cards within a column are ordered oldest first.
func (h GetOrdersBoardQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersBoardQuery,
) (GetOrdersBoardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrdersBoardQueryResponse{}, err
	}

	statusValues := make([]int, 0, len(order.ActiveStatuses()))
	columns := make(map[order.Status][]OrderCard, len(order.ActiveStatuses()))
	for _, s := range order.ActiveStatuses() {
		statusValues = append(statusValues, int(s))
		columns[s] = []OrderCard{}
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.number,
			o.status,
			o.tax_rate_bps,
			o.cancellation_status,
			o.created_at,
			COALESCE(SUM(i.unit_price_cents * i.quantity), 0) AS subtotal_cents
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.branch_id = ? AND o.status IN ?
		GROUP BY o.id, o.number, o.status, o.tax_rate_bps, o.cancellation_status, o.created_at
		ORDER BY o.created_at
	`, query.BranchID().Bytes(), statusValues).Rows()
	if err != nil {
		return GetOrdersBoardQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                 uuid.UUID
			number             string
			status             int
			taxRateBps         int64
			cancellationStatus int
			createdAt          time.Time
			subtotalCents      int64
		)

		if err = rows.Scan(
			&id, &number, &status, &taxRateBps, &cancellationStatus, &createdAt, &subtotalCents,
		); err != nil {
			return GetOrdersBoardQueryResponse{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetOrdersBoardQueryResponse{}, idErr
		}

		subtotal := kernel.NewMoney(subtotalCents)
		total := subtotal.Add(subtotal.ApplyRate(taxRateBps))

		card := OrderCard{
			ID:                  orderID,
			Number:              number,
			Status:              order.Status(status),
			TotalCents:          total.Cents(),
			CancellationPending: order.CancellationStatus(cancellationStatus) == order.CancellationPending,
			CreatedAt:           createdAt,
		}
		columns[card.Status] = append(columns[card.Status], card)
	}

	if err = rows.Err(); err != nil {
		return GetOrdersBoardQueryResponse{}, err
	}

	return GetOrdersBoardQueryResponse{Columns: columns}, nil
}
