package queries

import (
	"context"

	"pos/internal/adapters/out/postgres/orderrepo"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler retrieves a branch's active orders from the
// database. Reads the order tables directly; totals are computed from the
// stored lines the same way the aggregate computes them, so the read model
// never disagrees with the write model.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
// Requires a GORM database connection for query execution.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted oldest first, matching the
// board's display order.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statusValues := make([]int, 0, len(query.Statuses()))
	for _, s := range query.Statuses() {
		statusValues = append(statusValues, int(s))
	}

	var dtos []orderrepo.OrderDTO
	err := h.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		Where("branch_id = ? AND status IN ?", query.BranchID().Bytes(), statusValues).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	responses := make([]GetActiveOrdersQueryResponse, 0, len(dtos))
	for _, dto := range dtos {
		response, convErr := responseFromDTO(dto)
		if convErr != nil {
			return nil, convErr
		}
		responses = append(responses, response)
	}

	return responses, nil
}

func responseFromDTO(dto orderrepo.OrderDTO) (GetActiveOrdersQueryResponse, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return GetActiveOrdersQueryResponse{}, err
	}

	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return GetActiveOrdersQueryResponse{}, err
	}

	var tableID *kernel.UUID
	if dto.TableID != nil {
		tID, tableErr := kernel.UUIDFromBytes((*dto.TableID)[:])
		if tableErr != nil {
			return GetActiveOrdersQueryResponse{}, tableErr
		}
		tableID = &tID
	}

	deliveryType, err := order.DeliveryTypeFromString(dto.DeliveryType)
	if err != nil {
		return GetActiveOrdersQueryResponse{}, err
	}

	items := make([]ItemResponse, 0, len(dto.Items))
	subtotal := kernel.NewMoney(0)
	for _, itemDTO := range dto.Items {
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return GetActiveOrdersQueryResponse{}, itemErr
		}

		items = append(items, ItemResponse{
			ProductID:          productID,
			Name:               itemDTO.Name,
			Quantity:           itemDTO.Quantity,
			UnitPriceCents:     itemDTO.UnitPriceCents,
			Modifiers:          itemDTO.Modifiers,
			RemovedIngredients: itemDTO.RemovedIngredients,
			Note:               itemDTO.Note,
		})
		subtotal = subtotal.Add(kernel.NewMoney(itemDTO.UnitPriceCents).Multiply(itemDTO.Quantity))
	}

	taxTotal := subtotal.ApplyRate(dto.TaxRateBps)
	total := subtotal.Add(taxTotal)

	paid := kernel.NewMoney(0)
	for _, paymentDTO := range dto.Payments {
		if order.PaymentStatus(paymentDTO.Status) == order.PaymentStatusCompleted {
			paid = paid.Add(kernel.NewMoney(paymentDTO.AmountCents))
		}
	}

	status := order.Status(dto.Status)

	return GetActiveOrdersQueryResponse{
		ID:                       id,
		Number:                   dto.Number,
		BranchID:                 branchID,
		Status:                   status,
		DeliveryType:             deliveryType,
		TableID:                  tableID,
		Items:                    items,
		SubtotalCents:            subtotal.Cents(),
		TaxTotalCents:            taxTotal.Cents(),
		TotalCents:               total.Cents(),
		PaidCents:                paid.Cents(),
		Settled:                  status == order.StatusDelivered && paid.GreaterThanOrEqual(total),
		CancellationStatus:       order.CancellationStatus(dto.CancellationStatus),
		CancellationReason:       dto.CancellationReason,
		CancellationDeniedReason: dto.CancellationDeniedReason,
		CreatedAt:                dto.CreatedAt,
		UpdatedAt:                dto.UpdatedAt,
	}, nil
}
