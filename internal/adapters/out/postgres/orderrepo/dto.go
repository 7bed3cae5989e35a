// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order aggregate, handling the conversion between domain entities and
// database representations.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed for the two hot paths: lookup by branch and status set for the
// active board, and lookup by the human-readable number.
type OrderDTO struct {
	ID                       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number                   string     `gorm:"uniqueIndex"`
	BranchID                 uuid.UUID  `gorm:"type:uuid;index:idx_orders_branch_status"`
	Status                   int        `gorm:"index:idx_orders_branch_status"`
	DeliveryType             string     `gorm:"type:varchar(16)"`
	TableID                  *uuid.UUID `gorm:"type:uuid"`
	ContactName              string
	ContactPhone             string
	Address                  string
	TaxRateBps               int64
	CancellationStatus       int
	CancellationReason       string
	CancellationDeniedReason string
	Version                  int
	CreatedAt                time.Time
	UpdatedAt                time.Time

	Items    []ItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payments []PaymentDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line. Lines have no domain identity of their
// own; the surrogate key exists only for the relational model, and lines are
// rewritten wholesale when the parent order is updated.
type ItemDTO struct {
	ID                 int64      `gorm:"primaryKey;autoIncrement"`
	OrderID            uuid.UUID  `gorm:"type:uuid;index"`
	ProductID          uuid.UUID  `gorm:"type:uuid"`
	Name               string
	Quantity           int
	UnitPriceCents     int64
	Modifiers          StringList `gorm:"type:text"`
	RemovedIngredients StringList `gorm:"type:text"`
	Note               string
}

// TableName specifies the database table name for order lines.
func (ItemDTO) TableName() string {
	return "order_items"
}

// PaymentDTO represents one entry of an order's payment ledger.
type PaymentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	AmountCents int64
	Method      int
	Status      int
}

// TableName specifies the database table name for payments.
func (PaymentDTO) TableName() string {
	return "order_payments"
}

// StringList stores a string slice as a JSON text column. Modifier and
// removal sets are small and only ever read back whole, so a join table
// would buy nothing.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}

	if len(raw) == 0 {
		*l = nil
		return nil
	}

	return json.Unmarshal(raw, (*[]string)(l))
}

// fromDomain converts an order domain aggregate to its database
// representation, children included.
func fromDomain(aggregate *order.Order) OrderDTO {
	var tableID *uuid.UUID
	if id := aggregate.TableID(); id != nil {
		raw := id.Bytes()
		tableID = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			OrderID:            aggregate.ID().Bytes(),
			ProductID:          item.ProductID().Bytes(),
			Name:               item.Name(),
			Quantity:           item.Quantity(),
			UnitPriceCents:     item.UnitPrice().Cents(),
			Modifiers:          item.Modifiers(),
			RemovedIngredients: item.RemovedIngredients(),
			Note:               item.Note(),
		})
	}

	payments := make([]PaymentDTO, 0, len(aggregate.Payments()))
	for _, payment := range aggregate.Payments() {
		payments = append(payments, PaymentDTO{
			ID:          payment.ID().Bytes(),
			OrderID:     aggregate.ID().Bytes(),
			AmountCents: payment.Amount().Cents(),
			Method:      int(payment.Method()),
			Status:      int(payment.Status()),
		})
	}

	delivery := aggregate.Delivery()

	return OrderDTO{
		ID:                       aggregate.ID().Bytes(),
		Number:                   aggregate.Number(),
		BranchID:                 aggregate.BranchID().Bytes(),
		Status:                   int(aggregate.Status()),
		DeliveryType:             aggregate.DeliveryType().String(),
		TableID:                  tableID,
		ContactName:              delivery.ContactName,
		ContactPhone:             delivery.ContactPhone,
		Address:                  delivery.Address,
		TaxRateBps:               aggregate.TaxRateBps(),
		CancellationStatus:       int(aggregate.Cancellation().Status()),
		CancellationReason:       aggregate.Cancellation().Reason(),
		CancellationDeniedReason: aggregate.Cancellation().DeniedReason(),
		Version:                  aggregate.Version(),
		CreatedAt:                aggregate.CreatedAt(),
		UpdatedAt:                aggregate.UpdatedAt(),
		Items:                    items,
		Payments:                 payments,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate, lines and ledger included, using
// RestoreOrder so creation-time rules are not re-run against stored rows.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}

	var tableID *kernel.UUID
	if dto.TableID != nil {
		tID, tableErr := kernel.UUIDFromBytes((*dto.TableID)[:])
		if tableErr != nil {
			return nil, tableErr
		}
		tableID = &tID
	}

	deliveryType, err := order.DeliveryTypeFromString(dto.DeliveryType)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewItem(
			productID,
			itemDTO.Name,
			itemDTO.Quantity,
			kernel.NewMoney(itemDTO.UnitPriceCents),
			itemDTO.Modifiers,
			itemDTO.RemovedIngredients,
			itemDTO.Note,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	payments := make([]order.Payment, 0, len(dto.Payments))
	for _, paymentDTO := range dto.Payments {
		paymentID, payErr := kernel.UUIDFromBytes(paymentDTO.ID[:])
		if payErr != nil {
			return nil, payErr
		}

		payment, payErr := order.NewPayment(
			paymentID,
			kernel.NewMoney(paymentDTO.AmountCents),
			order.PaymentMethod(paymentDTO.Method),
			order.PaymentStatus(paymentDTO.Status),
		)
		if payErr != nil {
			return nil, payErr
		}
		payments = append(payments, payment)
	}

	cancellation, err := order.NewCancellation(
		order.CancellationStatus(dto.CancellationStatus),
		dto.CancellationReason,
		dto.CancellationDeniedReason,
	)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		branchID,
		deliveryType,
		tableID,
		order.DeliveryDetails{
			ContactName:  dto.ContactName,
			ContactPhone: dto.ContactPhone,
			Address:      dto.Address,
		},
		items,
		payments,
		dto.TaxRateBps,
		order.Status(dto.Status),
		cancellation,
		dto.Version,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
