package queries

import (
	"context"
	"errors"

	"pos/internal/adapters/out/postgres/orderrepo"
	"pos/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves one order with its lines and payments.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetActiveOrdersQueryResponse{}, err
	}

	var dto orderrepo.OrderDTO
	err := h.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		First(&dto, "id = ?", query.OrderID().Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GetActiveOrdersQueryResponse{},
				errs.NewObjectNotFoundErrorWithCause("order", query.OrderID().String(), err)
		}
		return GetActiveOrdersQueryResponse{}, err
	}

	return responseFromDTO(dto)
}
