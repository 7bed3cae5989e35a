package order

import (
	"fmt"
	"sort"
	"strings"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
)

// Item is an order line: a catalog product with its chosen modifiers,
// removed base ingredients and a free-text note. Items are exclusively
// owned by their Order.
//
// Two lines are the same line when their Key() matches: same product,
// same modifier set, same removal set, same note. Adding a matching line
// increments quantity instead of duplicating the row. Quantity is always
// at least 1 while the item exists; decrementing to zero removes it.
type Item struct {
	productID          kernel.UUID
	name               string
	quantity           int
	unitPrice          kernel.Money
	modifiers          []string
	removedIngredients []string
	note               string

	isConstructed bool
}

// NewItem creates a validated order line with quantity 1 implied by the
// caller passing quantity explicitly. Modifier and removal sets are copied
// and sorted so that line identity is order-independent.
func NewItem(
	productID kernel.UUID,
	name string,
	quantity int,
	unitPrice kernel.Money,
	modifiers []string,
	removedIngredients []string,
	note string,
) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if quantity < 1 {
		return Item{}, errs.NewValueIsOutOfRangeError("item quantity", quantity, 1, nil)
	}
	if err := unitPrice.Validate(); err != nil {
		return Item{}, err
	}

	return Item{
		productID:          productID,
		name:               name,
		quantity:           quantity,
		unitPrice:          unitPrice,
		modifiers:          sortedCopy(modifiers),
		removedIngredients: sortedCopy(removedIngredients),
		note:               note,
		isConstructed:      true,
	}, nil
}

// Validate ensures the Item was constructed via NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return errs.NewValueIsRequiredError("Item must be created via NewItem constructor")
	}
	return nil
}

// ProductID returns the catalog product the line refers to.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product display name captured at ordering time.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the line quantity, always >= 1.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price of a single unit.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Modifiers returns the sorted modifier identifiers. The slice is a copy.
func (i Item) Modifiers() []string {
	return append([]string(nil), i.modifiers...)
}

// RemovedIngredients returns the sorted removed base ingredients. The slice is a copy.
func (i Item) RemovedIngredients() []string {
	return append([]string(nil), i.removedIngredients...)
}

// Note returns the free-text note attached to the line.
func (i Item) Note() string {
	return i.note
}

// LineTotal returns quantity times unit price.
func (i Item) LineTotal() kernel.Money {
	return i.unitPrice.Multiply(i.quantity)
}

// Key returns the line identity: product id plus the sorted modifier set,
// the sorted removal set, and the note text. Orders use it to merge
// equivalent lines instead of duplicating them. Components are
// length-prefixed, so free-text notes and modifier names cannot forge the
// boundary of another component.
func (i Item) Key() string {
	return keyJoin(
		i.productID.String(),
		keyJoin(i.modifiers...),
		keyJoin(i.removedIngredients...),
		i.note,
	)
}

func keyJoin(parts ...string) string {
	var b strings.Builder
	for _, part := range parts {
		fmt.Fprintf(&b, "%d:%s", len(part), part)
	}
	return b.String()
}

// withQuantity returns a copy of the item carrying the given quantity.
// Callers guarantee quantity >= 1; zero-quantity lines are removed by the
// aggregate, never constructed.
func (i Item) withQuantity(quantity int) Item {
	copied := i
	copied.quantity = quantity
	return copied
}

func sortedCopy(values []string) []string {
	copied := append([]string(nil), values...)
	sort.Strings(copied)
	return copied
}
