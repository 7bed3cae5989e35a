package session_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos/internal/core/application/session"
	"pos/internal/core/domain/events"
	"pos/internal/core/domain/model/actor"
	"pos/internal/core/ports"
	"pos/internal/pkg/errs"
)

type catalogStub struct {
	products []ports.Product
	err      error
}

func (c *catalogStub) Snapshot(_ context.Context, _ string) ([]ports.Product, error) {
	return c.products, c.err
}

type gatewayStub struct {
	created  *ports.CreateOrderRequest
	appended []events.ItemSnapshot
	appendID string
	stored   events.OrderSnapshot
	err      error
}

func (g *gatewayStub) FetchActive(_ context.Context, _ string, _ []string) ([]events.OrderSnapshot, error) {
	return nil, nil
}

func (g *gatewayStub) CreateOrder(_ context.Context, req ports.CreateOrderRequest) (events.OrderSnapshot, error) {
	g.created = &req
	return g.stored, g.err
}

func (g *gatewayStub) AppendItems(_ context.Context, orderID string, items []events.ItemSnapshot) (events.OrderSnapshot, error) {
	g.appendID = orderID
	g.appended = items
	return g.stored, g.err
}

func (g *gatewayStub) PatchStatus(_ context.Context, _ string, _ string) error { return nil }

func (g *gatewayStub) SubmitPayment(_ context.Context, _ string, _ int64, _ string) error {
	return nil
}

func (g *gatewayStub) RequestCancellation(_ context.Context, _ string, _ string) error { return nil }

func (g *gatewayStub) ResolveCancellation(_ context.Context, _ string, _ bool, _ string) error {
	return nil
}

type oracleStub struct {
	allowed bool
	err     error
	asked   int
}

func (o *oracleStub) Allows(_ context.Context, _ actor.Role, _ actor.Capability) (bool, error) {
	o.asked++
	return o.allowed, o.err
}

func margherita() ports.Product {
	return ports.Product{
		ID:              "prod-margherita",
		Name:            "Margherita",
		PriceCents:      1250,
		Modifiers:       []string{"extra cheese", "basil"},
		BaseIngredients: []string{"mozzarella", "tomato sauce"},
	}
}

func pepperoni() ports.Product {
	return ports.Product{
		ID:         "prod-pepperoni",
		Name:       "Pepperoni",
		PriceCents: 1450,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func browsingSession(t *testing.T, gateway *gatewayStub, oracle *oracleStub) *session.Session {
	t.Helper()

	catalog := &catalogStub{products: []ports.Product{margherita(), pepperoni()}}
	s := session.NewSession("branch-1", actor.RoleWaiter, catalog, gateway, oracle, discardLogger())
	require.NoError(t, s.Load(context.Background()))
	require.Equal(t, session.StateBrowsing, s.State())

	return s
}

func addLine(t *testing.T, s *session.Session, productID string, modifiers ...string) {
	t.Helper()

	require.NoError(t, s.StartCustomizing(productID))
	for _, modifier := range modifiers {
		require.NoError(t, s.ToggleModifier(modifier))
	}
	require.NoError(t, s.ConfirmItem())
}

func TestSession_LoadFailureIsTerminal(t *testing.T) {
	catalog := &catalogStub{err: errors.New("menu service down")}
	s := session.NewSession("branch-1", actor.RoleWaiter, catalog, &gatewayStub{}, &oracleStub{}, discardLogger())

	err := s.Load(context.Background())

	require.Error(t, err)
	assert.Equal(t, session.StateFailed, s.State())
	assert.Equal(t, err, s.Failure())
}

func TestSession_ConfirmItemMergesIdenticalLines(t *testing.T) {
	s := browsingSession(t, &gatewayStub{}, &oracleStub{})

	addLine(t, s, "prod-margherita", "extra cheese")
	addLine(t, s, "prod-margherita", "extra cheese")

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, int64(2500), s.SubtotalCents())
}

func TestSession_DifferentModifiersStayOnSeparateLines(t *testing.T) {
	s := browsingSession(t, &gatewayStub{}, &oracleStub{})

	addLine(t, s, "prod-margherita", "extra cheese")
	addLine(t, s, "prod-margherita")

	assert.Len(t, s.Lines(), 2)
}

func TestSession_MergeIgnoresModifierOrder(t *testing.T) {
	s := browsingSession(t, &gatewayStub{}, &oracleStub{})

	addLine(t, s, "prod-margherita", "extra cheese", "basil")
	addLine(t, s, "prod-margherita", "basil", "extra cheese")

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestSession_DecrementRemovesLineAtZero(t *testing.T) {
	s := browsingSession(t, &gatewayStub{}, &oracleStub{})
	addLine(t, s, "prod-margherita")

	key := session.LineKey(events.ItemSnapshot{ProductID: "prod-margherita"})
	require.NoError(t, s.DecrementLine(key))

	assert.Empty(t, s.Lines())
	assert.ErrorIs(t, s.DecrementLine(key), errs.ErrObjectNotFound)
}

func TestSession_LineKeyKeepsSeparatorTextDistinct(t *testing.T) {
	withCommaModifier := session.LineKey(events.ItemSnapshot{
		ProductID: "prod-margherita",
		Modifiers: []string{"chili, extra hot"},
	})
	withTwoModifiers := session.LineKey(events.ItemSnapshot{
		ProductID: "prod-margherita",
		Modifiers: []string{"chili", "extra hot"},
	})
	assert.NotEqual(t, withCommaModifier, withTwoModifiers)

	withPunctuatedNote := session.LineKey(events.ItemSnapshot{
		ProductID: "prod-margherita",
		Note:      "onion|half",
	})
	withRemovalAndNote := session.LineKey(events.ItemSnapshot{
		ProductID:          "prod-margherita",
		RemovedIngredients: []string{"onion"},
		Note:               "half",
	})
	assert.NotEqual(t, withPunctuatedNote, withRemovalAndNote)
}

func TestSession_CustomizingUnknownProductFails(t *testing.T) {
	s := browsingSession(t, &gatewayStub{}, &oracleStub{})

	err := s.StartCustomizing("prod-unknown")

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Equal(t, session.StateBrowsing, s.State())
}

func TestSession_ToggleModifierRejectsUnofferedModifier(t *testing.T) {
	s := browsingSession(t, &gatewayStub{}, &oracleStub{})
	require.NoError(t, s.StartCustomizing("prod-margherita"))

	assert.ErrorIs(t, s.ToggleModifier("truffle oil"), errs.ErrValueIsInvalid)
	assert.ErrorIs(t, s.ToggleRemoval("pineapple"), errs.ErrValueIsInvalid)
}

func TestSession_CancelItemDiscardsDraft(t *testing.T) {
	s := browsingSession(t, &gatewayStub{}, &oracleStub{})

	require.NoError(t, s.StartCustomizing("prod-margherita"))
	require.NoError(t, s.SetQuantity(3))
	require.NoError(t, s.CancelItem())

	assert.Equal(t, session.StateBrowsing, s.State())
	assert.Empty(t, s.Lines())
}

func TestSession_ReviewRequiresLines(t *testing.T) {
	s := browsingSession(t, &gatewayStub{}, &oracleStub{})

	assert.ErrorIs(t, s.Review(), errs.ErrValueIsRequired)
}

func TestSession_SubmitSendsCartToStore(t *testing.T) {
	gateway := &gatewayStub{stored: events.OrderSnapshot{ID: "order-1", Number: "ORD-0001"}}
	oracle := &oracleStub{allowed: true}
	s := browsingSession(t, gateway, oracle)
	addLine(t, s, "prod-margherita", "extra cheese")

	require.NoError(t, s.Review())
	require.NoError(t, s.ProceedToDelivery())
	table := "table-7"
	require.NoError(t, s.SetDeliveryInfo(session.DeliveryInfo{DeliveryType: "DineIn", TableID: &table}))
	require.NoError(t, s.Submit(context.Background()))

	assert.Equal(t, session.StateSucceeded, s.State())
	assert.Equal(t, "ORD-0001", s.Result().Number)
	require.NotNil(t, gateway.created)
	assert.Equal(t, "branch-1", gateway.created.BranchID)
	assert.Equal(t, "DineIn", gateway.created.DeliveryType)
	require.Len(t, gateway.created.Items, 1)
	assert.Equal(t, []string{"extra cheese"}, gateway.created.Items[0].Modifiers)
}

func TestSession_SubmitWithoutGrantFailsLocally(t *testing.T) {
	gateway := &gatewayStub{}
	oracle := &oracleStub{allowed: false}
	s := browsingSession(t, gateway, oracle)
	addLine(t, s, "prod-margherita")

	require.NoError(t, s.Review())
	require.NoError(t, s.ProceedToDelivery())
	require.NoError(t, s.SetDeliveryInfo(session.DeliveryInfo{DeliveryType: "Takeaway"}))

	err := s.Submit(context.Background())

	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Nil(t, gateway.created, "guard failure must not reach the store")
	assert.Equal(t, session.StateCapturingDeliveryInfo, s.State())
}

func TestSession_SubmitFailureEntersFailed(t *testing.T) {
	gateway := &gatewayStub{err: errs.NewInsufficientStockError("mozzarella", "cheese", 0)}
	s := browsingSession(t, gateway, &oracleStub{allowed: true})
	addLine(t, s, "prod-margherita")

	require.NoError(t, s.Review())
	require.NoError(t, s.ProceedToDelivery())
	require.NoError(t, s.SetDeliveryInfo(session.DeliveryInfo{DeliveryType: "Takeaway"}))

	err := s.Submit(context.Background())

	require.ErrorIs(t, err, errs.ErrInsufficientStock)
	assert.Equal(t, session.StateFailed, s.State())
	assert.Equal(t, "out of stock: mozzarella (cheese), 0 left", s.FailureMessage())
}

func TestSession_FailureMessageFallsBackToOpaqueText(t *testing.T) {
	gateway := &gatewayStub{err: errs.NewInsufficientStockErrorFromMessage("ingredient shortage")}
	s := browsingSession(t, gateway, &oracleStub{allowed: true})
	addLine(t, s, "prod-margherita")

	require.NoError(t, s.Review())
	require.NoError(t, s.ProceedToDelivery())
	require.NoError(t, s.SetDeliveryInfo(session.DeliveryInfo{DeliveryType: "Takeaway"}))
	require.Error(t, s.Submit(context.Background()))

	assert.Equal(t, "ingredient shortage", s.FailureMessage())
}

func TestSession_DineInRequiresTable(t *testing.T) {
	s := browsingSession(t, &gatewayStub{}, &oracleStub{allowed: true})
	addLine(t, s, "prod-margherita")
	require.NoError(t, s.Review())
	require.NoError(t, s.ProceedToDelivery())

	assert.ErrorIs(t,
		s.SetDeliveryInfo(session.DeliveryInfo{DeliveryType: "DineIn"}),
		errs.ErrValueIsRequired)
	assert.ErrorIs(t,
		s.SetDeliveryInfo(session.DeliveryInfo{DeliveryType: "Delivery", ContactName: "Ann"}),
		errs.ErrValueIsRequired)
}

func TestSession_OperationsOutOfOrderFail(t *testing.T) {
	s := browsingSession(t, &gatewayStub{}, &oracleStub{})

	assert.ErrorIs(t, s.ConfirmItem(), errs.ErrValueIsInvalid)
	assert.ErrorIs(t, s.Load(context.Background()), errs.ErrValueIsInvalid)
	assert.ErrorIs(t, s.Submit(context.Background()), errs.ErrValueIsInvalid)
}

func editSession(t *testing.T, gateway *gatewayStub, oracle *oracleStub) *session.Session {
	t.Helper()

	existing := events.OrderSnapshot{
		ID:     "order-42",
		Number: "ORD-0042",
		Status: "Pending",
		Items: []events.ItemSnapshot{
			{ProductID: "prod-margherita", Name: "Margherita", Quantity: 1, UnitPriceCents: 1250},
		},
	}
	catalog := &catalogStub{products: []ports.Product{margherita(), pepperoni()}}
	s := session.NewEditSession("branch-1", actor.RoleWaiter, catalog, gateway, oracle, discardLogger(), existing)
	require.NoError(t, s.Load(context.Background()))

	return s
}

func TestSession_EditModeSeedsExistingLines(t *testing.T) {
	s := editSession(t, &gatewayStub{}, &oracleStub{})

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "Margherita", lines[0].Name)
}

func TestSession_EditModeSubmitsOnlyTheDelta(t *testing.T) {
	gateway := &gatewayStub{stored: events.OrderSnapshot{ID: "order-42"}}
	s := editSession(t, gateway, &oracleStub{allowed: true})

	addLine(t, s, "prod-margherita")
	addLine(t, s, "prod-pepperoni")
	require.NoError(t, s.Review())
	require.NoError(t, s.Submit(context.Background()))

	assert.Equal(t, session.StateSucceeded, s.State())
	assert.Equal(t, "order-42", gateway.appendID)
	require.Len(t, gateway.appended, 2)
	assert.Equal(t, "prod-margherita", gateway.appended[0].ProductID)
	assert.Equal(t, 1, gateway.appended[0].Quantity, "seeded quantity is not resent")
	assert.Equal(t, "prod-pepperoni", gateway.appended[1].ProductID)
}

func TestSession_EditModeWithoutChangesRefusesSubmit(t *testing.T) {
	gateway := &gatewayStub{}
	s := editSession(t, gateway, &oracleStub{allowed: true})

	require.NoError(t, s.Review())

	err := s.Submit(context.Background())

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Empty(t, gateway.appendID)
}

func TestSession_EditModeSkipsDeliveryCapture(t *testing.T) {
	s := editSession(t, &gatewayStub{}, &oracleStub{})

	require.NoError(t, s.Review())

	assert.ErrorIs(t, s.ProceedToDelivery(), errs.ErrConflict)
}
