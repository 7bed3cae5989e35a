// Package session drives the order composition flow on the actor side: an
// explicit state machine from catalog loading through line building to
// submission. The session holds a draft cart locally; nothing touches the
// network until Submit, and local guards keep doomed submissions local.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"pos/internal/core/domain/events"
	"pos/internal/core/domain/model/actor"
	"pos/internal/core/ports"
	"pos/internal/pkg/errs"
)

// State is one step of the composition flow.
type State int

const (
	StateLoading State = iota
	StateBrowsing
	StateCustomizingItem
	StateReviewing
	StateCapturingDeliveryInfo
	StateSubmitting
	StateSucceeded
	StateFailed
)

// String returns the human-readable name of the state.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateBrowsing:
		return "Browsing"
	case StateCustomizingItem:
		return "CustomizingItem"
	case StateReviewing:
		return "Reviewing"
	case StateCapturingDeliveryInfo:
		return "CapturingDeliveryInfo"
	case StateSubmitting:
		return "Submitting"
	case StateSucceeded:
		return "Succeeded"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// DeliveryInfo carries the fulfillment choice captured before submission.
type DeliveryInfo struct {
	DeliveryType string
	TableID      *string
	ContactName  string
	ContactPhone string
	Address      string
}

// draft is the line currently being customized.
type draft struct {
	product   ports.Product
	quantity  int
	modifiers map[string]bool
	removals  map[string]bool
	note      string
}

// Session is one actor's order composition flow. Like the projection, a
// session is owned by a single goroutine and is not safe for concurrent
// use.
type Session struct {
	branchID  string
	actorRole actor.Role
	catalog   ports.Catalog
	gateway   ports.OrderGateway
	oracle    ports.PermissionOracle
	logger    *slog.Logger

	state    State
	products []ports.Product
	current  *draft
	lines    []events.ItemSnapshot
	delivery DeliveryInfo

	// editing holds the order being amended; nil for new orders. In edit
	// mode the seeded lines are the baseline and Submit sends only the
	// delta.
	editing  *events.OrderSnapshot
	baseline map[string]int

	result  events.OrderSnapshot
	failure error
}

// NewSession starts a composition flow for a new order.
func NewSession(
	branchID string,
	actorRole actor.Role,
	catalog ports.Catalog,
	gateway ports.OrderGateway,
	oracle ports.PermissionOracle,
	logger *slog.Logger,
) *Session {
	return &Session{
		branchID:  branchID,
		actorRole: actorRole,
		catalog:   catalog,
		gateway:   gateway,
		oracle:    oracle,
		logger:    logger,
		state:     StateLoading,
	}
}

// NewEditSession starts a composition flow seeded from an existing order's
// lines. Submit appends the delta to that order instead of creating a new
// one.
func NewEditSession(
	branchID string,
	actorRole actor.Role,
	catalog ports.Catalog,
	gateway ports.OrderGateway,
	oracle ports.PermissionOracle,
	logger *slog.Logger,
	existing events.OrderSnapshot,
) *Session {
	s := NewSession(branchID, actorRole, catalog, gateway, oracle, logger)

	s.editing = &existing
	s.baseline = make(map[string]int, len(existing.Items))
	for _, item := range existing.Items {
		line := normalizeLine(item)
		s.lines = append(s.lines, line)
		s.baseline[LineKey(line)] = line.Quantity
	}

	return s
}

// State returns the current step of the flow.
func (s *Session) State() State {
	return s.state
}

// Products returns the pinned catalog snapshot.
func (s *Session) Products() []ports.Product {
	return s.products
}

// Lines returns the current cart.
func (s *Session) Lines() []events.ItemSnapshot {
	return append([]events.ItemSnapshot(nil), s.lines...)
}

// SubtotalCents returns the cart subtotal. Tax and total are the store's
// business; the session never pretends to know them.
func (s *Session) SubtotalCents() int64 {
	var subtotal int64
	for _, line := range s.lines {
		subtotal += line.UnitPriceCents * int64(line.Quantity)
	}
	return subtotal
}

// Result returns the stored snapshot after a successful submission.
func (s *Session) Result() events.OrderSnapshot {
	return s.result
}

// Failure returns the submission error after entering Failed.
func (s *Session) Failure() error {
	return s.failure
}

// FailureMessage renders the submission failure for display. Structured
// stock failures name the ingredient, its type and the remaining quantity;
// anything else falls back to the error text.
func (s *Session) FailureMessage() string {
	if s.failure == nil {
		return ""
	}

	var stock *errs.InsufficientStockError
	if errors.As(s.failure, &stock) {
		if stock.HasDetail() {
			return fmt.Sprintf("out of stock: %s (%s), %d left",
				stock.Ingredient, stock.IngredientType, stock.Available)
		}
		if stock.Message != "" {
			return stock.Message
		}
	}

	return s.failure.Error()
}

// Load pins the catalog snapshot and opens browsing. A catalog failure is
// terminal for the session; the caller starts a fresh one to retry.
func (s *Session) Load(ctx context.Context) error {
	if s.state != StateLoading {
		return s.wrongState("Load", StateLoading)
	}

	products, err := s.catalog.Snapshot(ctx, s.branchID)
	if err != nil {
		s.fail(err)
		return err
	}

	s.products = products
	s.state = StateBrowsing
	return nil
}

// StartCustomizing opens the customization step for one product.
func (s *Session) StartCustomizing(productID string) error {
	if s.state != StateBrowsing {
		return s.wrongState("StartCustomizing", StateBrowsing)
	}

	for _, product := range s.products {
		if product.ID == productID {
			s.current = &draft{
				product:   product,
				quantity:  1,
				modifiers: make(map[string]bool),
				removals:  make(map[string]bool),
			}
			s.state = StateCustomizingItem
			return nil
		}
	}

	return errs.NewObjectNotFoundError("product", productID)
}

// ToggleModifier flips one of the product's offered modifiers.
func (s *Session) ToggleModifier(name string) error {
	if s.state != StateCustomizingItem {
		return s.wrongState("ToggleModifier", StateCustomizingItem)
	}
	if !contains(s.current.product.Modifiers, name) {
		return errs.NewValueIsInvalidError("modifier " + name)
	}

	s.current.modifiers[name] = !s.current.modifiers[name]
	return nil
}

// ToggleRemoval flips the removal of one of the product's base ingredients.
func (s *Session) ToggleRemoval(name string) error {
	if s.state != StateCustomizingItem {
		return s.wrongState("ToggleRemoval", StateCustomizingItem)
	}
	if !contains(s.current.product.BaseIngredients, name) {
		return errs.NewValueIsInvalidError("ingredient " + name)
	}

	s.current.removals[name] = !s.current.removals[name]
	return nil
}

// SetQuantity sets the draft line quantity.
func (s *Session) SetQuantity(quantity int) error {
	if s.state != StateCustomizingItem {
		return s.wrongState("SetQuantity", StateCustomizingItem)
	}
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, nil)
	}

	s.current.quantity = quantity
	return nil
}

// SetNote attaches free-form kitchen instructions to the draft line.
func (s *Session) SetNote(note string) error {
	if s.state != StateCustomizingItem {
		return s.wrongState("SetNote", StateCustomizingItem)
	}

	s.current.note = note
	return nil
}

// ConfirmItem folds the draft into the cart and returns to browsing.
// A line with the same product, modifier set, removal set and note merges
// into the existing line instead of duplicating it.
func (s *Session) ConfirmItem() error {
	if s.state != StateCustomizingItem {
		return s.wrongState("ConfirmItem", StateCustomizingItem)
	}

	line := normalizeLine(events.ItemSnapshot{
		ProductID:          s.current.product.ID,
		Name:               s.current.product.Name,
		Quantity:           s.current.quantity,
		UnitPriceCents:     s.current.product.PriceCents,
		Modifiers:          enabledKeys(s.current.modifiers),
		RemovedIngredients: enabledKeys(s.current.removals),
		Note:               s.current.note,
	})

	key := LineKey(line)
	merged := false
	for i := range s.lines {
		if LineKey(s.lines[i]) == key {
			s.lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, line)
	}

	s.current = nil
	s.state = StateBrowsing
	return nil
}

// CancelItem discards the draft and returns to browsing.
func (s *Session) CancelItem() error {
	if s.state != StateCustomizingItem {
		return s.wrongState("CancelItem", StateCustomizingItem)
	}

	s.current = nil
	s.state = StateBrowsing
	return nil
}

// DecrementLine lowers a cart line's quantity by one; the line disappears
// when it reaches zero.
func (s *Session) DecrementLine(key string) error {
	if s.state != StateBrowsing && s.state != StateReviewing {
		return s.wrongState("DecrementLine", StateBrowsing)
	}

	for i := range s.lines {
		if LineKey(s.lines[i]) != key {
			continue
		}

		s.lines[i].Quantity--
		if s.lines[i].Quantity == 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		}
		return nil
	}

	return errs.NewObjectNotFoundError("cart line", key)
}

// Review moves to the review step. Requires at least one line.
func (s *Session) Review() error {
	if s.state != StateBrowsing {
		return s.wrongState("Review", StateBrowsing)
	}
	if len(s.lines) == 0 {
		return errs.NewValueIsRequiredError("order lines")
	}

	s.state = StateReviewing
	return nil
}

// BackToBrowsing returns from review to browsing.
func (s *Session) BackToBrowsing() error {
	if s.state != StateReviewing {
		return s.wrongState("BackToBrowsing", StateReviewing)
	}

	s.state = StateBrowsing
	return nil
}

// ProceedToDelivery moves from review to the delivery capture step. Edit
// sessions skip this step: the order's fulfillment is already fixed.
func (s *Session) ProceedToDelivery() error {
	if s.state != StateReviewing {
		return s.wrongState("ProceedToDelivery", StateReviewing)
	}
	if s.editing != nil {
		return errs.NewConflictError("delivery capture")
	}

	s.state = StateCapturingDeliveryInfo
	return nil
}

// SetDeliveryInfo records the fulfillment choice. Dine-in requires a
// table; delivery requires contact details.
func (s *Session) SetDeliveryInfo(info DeliveryInfo) error {
	if s.state != StateCapturingDeliveryInfo {
		return s.wrongState("SetDeliveryInfo", StateCapturingDeliveryInfo)
	}

	switch info.DeliveryType {
	case "DineIn":
		if info.TableID == nil {
			return errs.NewValueIsRequiredError("table")
		}
	case "Delivery":
		if info.ContactName == "" || info.ContactPhone == "" || info.Address == "" {
			return errs.NewValueIsRequiredError("delivery contact details")
		}
	case "Takeaway":
		// nothing extra
	default:
		return errs.NewValueIsInvalidError("delivery type " + info.DeliveryType)
	}

	s.delivery = info
	return nil
}

// Submit pushes the cart to the store. Local guards run first: the cart
// must not be empty and the actor must hold order:update. A missing grant
// fails locally as Forbidden, without a network call.
//
// On success the session ends in Succeeded with the stored snapshot in
// Result. On failure it ends in Failed with the taxonomy error in Failure.
func (s *Session) Submit(ctx context.Context) error {
	if err := s.ensureSubmittable(ctx); err != nil {
		return err
	}

	s.state = StateSubmitting

	var (
		stored events.OrderSnapshot
		err    error
	)
	if s.editing != nil {
		stored, err = s.submitDelta(ctx)
	} else {
		stored, err = s.gateway.CreateOrder(ctx, ports.CreateOrderRequest{
			BranchID:     s.branchID,
			DeliveryType: s.delivery.DeliveryType,
			TableID:      s.delivery.TableID,
			ContactName:  s.delivery.ContactName,
			ContactPhone: s.delivery.ContactPhone,
			Address:      s.delivery.Address,
			Items:        s.lines,
		})
	}
	if err != nil {
		s.fail(err)
		return err
	}

	s.result = stored
	s.state = StateSucceeded
	return nil
}

func (s *Session) ensureSubmittable(ctx context.Context) error {
	expected := StateCapturingDeliveryInfo
	if s.editing != nil {
		expected = StateReviewing
	}
	if s.state != expected {
		return s.wrongState("Submit", expected)
	}

	if len(s.lines) == 0 {
		return errs.NewValueIsRequiredError("order lines")
	}
	if s.editing == nil && s.delivery.DeliveryType == "" {
		return errs.NewValueIsRequiredError("delivery info")
	}

	allowed, err := s.oracle.Allows(ctx, s.actorRole, actor.CapUpdateOrder)
	if err != nil {
		return err
	}
	if !allowed {
		return errs.NewForbiddenError(actor.CapUpdateOrder.String())
	}

	return nil
}

// submitDelta appends only the lines added since the session was seeded.
func (s *Session) submitDelta(ctx context.Context) (events.OrderSnapshot, error) {
	delta := make([]events.ItemSnapshot, 0, len(s.lines))
	for _, line := range s.lines {
		added := line.Quantity - s.baseline[LineKey(line)]
		if added > 0 {
			appended := line
			appended.Quantity = added
			delta = append(delta, appended)
		}
	}

	if len(delta) == 0 {
		return events.OrderSnapshot{}, errs.NewValueIsRequiredError("order changes")
	}

	return s.gateway.AppendItems(ctx, s.editing.ID, delta)
}

func (s *Session) fail(err error) {
	s.failure = err
	s.state = StateFailed
	s.logger.Warn("composition session failed", "error", err)
}

func (s *Session) wrongState(operation string, expected State) error {
	return errs.NewValueIsInvalidErrorWithCause(operation,
		fmt.Errorf("session is %s, expected %s", s.state, expected))
}

// LineKey builds the identity of a cart line: same product, same modifier
// set, same removal set, same note. Sets are order-independent. Components
// are length-prefixed, so a note or modifier name cannot collide with the
// boundary of another component. Callers pass the key to DecrementLine to
// name the line they want to shrink.
func LineKey(line events.ItemSnapshot) string {
	line = normalizeLine(line)
	return keyJoin(
		line.ProductID,
		keyJoin(line.Modifiers...),
		keyJoin(line.RemovedIngredients...),
		line.Note,
	)
}

func keyJoin(parts ...string) string {
	var b strings.Builder
	for _, part := range parts {
		fmt.Fprintf(&b, "%d:%s", len(part), part)
	}
	return b.String()
}

// normalizeLine sorts the modifier and removal sets so LineKey is stable.
func normalizeLine(line events.ItemSnapshot) events.ItemSnapshot {
	line.Modifiers = sortedCopy(line.Modifiers)
	line.RemovedIngredients = sortedCopy(line.RemovedIngredients)
	return line
}

func sortedCopy(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	copied := append([]string(nil), values...)
	sort.Strings(copied)
	return copied
}

func enabledKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key, enabled := range set {
		if enabled {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
