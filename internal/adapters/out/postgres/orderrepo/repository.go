package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
//
// Concurrency is handled at two levels: Get locks the row FOR UPDATE when
// running inside a transaction, so concurrent read-modify-write cycles on
// the same order serialize, and Update carries a version predicate so a
// stale write that slipped past the lock still loses.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
	inTx    bool
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker, inTx bool) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
		inTx:    inTx,
	}
}

// Add saves a new order with its lines and payment ledger.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order. The parent row is updated only when the
// stored version matches the aggregate's version; otherwise the write is
// rejected as a conflict. Child rows are rewritten wholesale, which is
// correct because lines merge in the aggregate and the ledger only grows.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(map[string]any{
			"status":                     dto.Status,
			"cancellation_status":        dto.CancellationStatus,
			"cancellation_reason":        dto.CancellationReason,
			"cancellation_denied_reason": dto.CancellationDeniedReason,
			"version":                    aggregate.Version() + 1,
			"updated_at":                 dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictErrorWithCause("order update",
			fmt.Errorf("order %s was modified concurrently or does not exist", aggregate.Number()))
	}

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).Delete(&ItemDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Items) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.Items).Error; err != nil {
			return err
		}
	}

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).Delete(&PaymentDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Payments) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.Payments).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID. Inside a transaction the parent row is
// locked FOR UPDATE until commit.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments")
	if r.inTx {
		query = query.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "orders"}})
	}

	var dto OrderDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves an order by its human-readable number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	if number == "" {
		return nil, errs.NewValueIsRequiredError("order number")
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		First(&dto, "number = ?", number).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", number)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves the orders of a branch whose status is in the
// given set, oldest first.
func (r *GormOrderRepository) GetAllActive(
	ctx context.Context,
	branchID kernel.UUID,
	statuses []order.Status,
) ([]*order.Order, error) {
	if err := branchID.Validate(); err != nil {
		return nil, err
	}
	if len(statuses) == 0 {
		return []*order.Order{}, nil
	}

	statusValues := make([]int, 0, len(statuses))
	for _, s := range statuses {
		statusValues = append(statusValues, int(s))
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		Where("branch_id = ? AND status IN ?", branchID.Bytes(), statusValues).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}
