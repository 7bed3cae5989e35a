package commands

import (
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
)

// ItemSpec describes one order line as submitted by the caller. It is a
// plain transport shape; all line rules (positive quantity, price, line
// identity) are enforced by order.NewItem when the line is materialized.
type ItemSpec struct {
	ProductID          kernel.UUID
	Name               string
	Quantity           int
	UnitPriceCents     int64
	Modifiers          []string
	RemovedIngredients []string
	Note               string
}

func (s ItemSpec) toItem() (order.Item, error) {
	return order.NewItem(
		s.ProductID,
		s.Name,
		s.Quantity,
		kernel.NewMoney(s.UnitPriceCents),
		s.Modifiers,
		s.RemovedIngredients,
		s.Note,
	)
}
