package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"pos/internal/core/application/usecases/commands"
	"pos/internal/core/application/usecases/queries"
	"pos/internal/core/domain/model/actor"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/generated/servers"
	"pos/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Server implements the generated ServerInterface. It parses transport
// shapes into commands and queries and translates the error taxonomy onto
// HTTP status codes; no business rules live here.
type Server struct {
	// Command handlers
	createOrderHandler         commands.CreateOrderCommandHandler
	appendItemsHandler         commands.AppendItemsCommandHandler
	changeOrderStatusHandler   commands.ChangeOrderStatusCommandHandler
	submitPaymentHandler       commands.SubmitPaymentCommandHandler
	requestCancellationHandler commands.RequestCancellationCommandHandler
	resolveCancellationHandler commands.ResolveCancellationCommandHandler

	// Query handlers
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
	getOrdersBoardHandler  queries.GetOrdersBoardQueryHandler
	getOrderHandler        queries.GetOrderQueryHandler

	// taxRateBps applies when order creation does not name a rate.
	taxRateBps int64
	logger     *slog.Logger
}

// NewServer creates the HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	appendItemsHandler commands.AppendItemsCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	submitPaymentHandler commands.SubmitPaymentCommandHandler,
	requestCancellationHandler commands.RequestCancellationCommandHandler,
	resolveCancellationHandler commands.ResolveCancellationCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getOrdersBoardHandler queries.GetOrdersBoardQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	taxRateBps int64,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		appendItemsHandler:         appendItemsHandler,
		changeOrderStatusHandler:   changeOrderStatusHandler,
		submitPaymentHandler:       submitPaymentHandler,
		requestCancellationHandler: requestCancellationHandler,
		resolveCancellationHandler: resolveCancellationHandler,
		getActiveOrdersHandler:     getActiveOrdersHandler,
		getOrdersBoardHandler:      getOrdersBoardHandler,
		getOrderHandler:            getOrderHandler,
		taxRateBps:                 taxRateBps,
		logger:                     logger,
	}
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(ctx echo.Context, params servers.CreateOrderParams) error {
	role, err := actor.RoleFromString(params.XActorRole)
	if err != nil {
		return badRequest(ctx, "Invalid actor role: "+params.XActorRole)
	}

	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	branchID, err := kernel.UUIDFromBytes(body.BranchId[:])
	if err != nil {
		return badRequest(ctx, "Invalid branch id")
	}

	deliveryType, err := order.DeliveryTypeFromString(string(body.DeliveryType))
	if err != nil {
		return badRequest(ctx, "Invalid delivery type: "+string(body.DeliveryType))
	}

	var tableID *kernel.UUID
	if body.TableId != nil {
		tID, tableErr := kernel.UUIDFromBytes((*body.TableId)[:])
		if tableErr != nil {
			return badRequest(ctx, "Invalid table id")
		}
		tableID = &tID
	}

	taxRateBps := s.taxRateBps
	if body.TaxRateBps != nil {
		taxRateBps = *body.TaxRateBps
	}

	items, err := itemSpecsFromAPI(body.Items)
	if err != nil {
		return badRequest(ctx, "Invalid order items: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		branchID,
		role,
		deliveryType,
		tableID,
		order.DeliveryDetails{
			ContactName:  deref(body.ContactName),
			ContactPhone: deref(body.ContactPhone),
			Address:      deref(body.Address),
		},
		taxRateBps,
		items,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return s.respondWithOrder(ctx, orderID, http.StatusCreated)
}

// GetActiveOrders handles GET /orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context, params servers.GetActiveOrdersParams) error {
	branchID, err := kernel.UUIDFromBytes(params.BranchId[:])
	if err != nil {
		return badRequest(ctx, "Invalid branch id")
	}

	var statuses []order.Status
	if params.Statuses != nil && *params.Statuses != "" {
		for _, name := range strings.Split(*params.Statuses, ",") {
			status, parseErr := order.StatusFromString(strings.TrimSpace(name))
			if parseErr != nil {
				return badRequest(ctx, "Invalid status filter: "+name)
			}
			statuses = append(statuses, status)
		}
	}

	query, err := queries.NewGetActiveOrdersQuery(branchID, statuses)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]servers.Order, 0, len(orders))
	for _, o := range orders {
		response = append(response, apiOrderFromResponse(o))
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrdersBoard handles GET /orders/board.
func (s *Server) GetOrdersBoard(ctx echo.Context, params servers.GetOrdersBoardParams) error {
	branchID, err := kernel.UUIDFromBytes(params.BranchId[:])
	if err != nil {
		return badRequest(ctx, "Invalid branch id")
	}

	query, err := queries.NewGetOrdersBoardQuery(branchID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	board, err := s.getOrdersBoardHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	columns := make(map[string][]servers.OrderCard, len(board.Columns))
	for status, cards := range board.Columns {
		column := make([]servers.OrderCard, 0, len(cards))
		for _, card := range cards {
			column = append(column, servers.OrderCard{
				Id:                  card.ID.String(),
				Number:              card.Number,
				Status:              card.Status.String(),
				TotalCents:          card.TotalCents,
				CancellationPending: card.CancellationPending,
				CreatedAt:           card.CreatedAt,
			})
		}
		columns[status.String()] = column
	}

	return ctx.JSON(http.StatusOK, servers.Board{Columns: columns})
}

// AppendItems handles POST /orders/{orderId}/items.
func (s *Server) AppendItems(ctx echo.Context, orderId openapi_types.UUID, params servers.AppendItemsParams) error {
	role, err := actor.RoleFromString(params.XActorRole)
	if err != nil {
		return badRequest(ctx, "Invalid actor role: "+params.XActorRole)
	}

	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body servers.AppendItemsJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items, err := itemSpecsFromAPI(body.Items)
	if err != nil {
		return badRequest(ctx, "Invalid order items: "+err.Error())
	}

	cmd, err := commands.NewAppendItemsCommand(orderID, role, items)
	if err != nil {
		return badRequest(ctx, "Invalid amendment data: "+err.Error())
	}

	if err := s.appendItemsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return s.respondWithOrder(ctx, orderID, http.StatusOK)
}

// ChangeOrderStatus handles PATCH /orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context, orderId openapi_types.UUID, params servers.ChangeOrderStatusParams) error {
	role, err := actor.RoleFromString(params.XActorRole)
	if err != nil {
		return badRequest(ctx, "Invalid actor role: "+params.XActorRole)
	}

	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body servers.ChangeOrderStatusJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(body.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+body.Status)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, role, target)
	if err != nil {
		return badRequest(ctx, "Invalid transition data: "+err.Error())
	}

	if err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SubmitPayment handles POST /orders/{orderId}/payments.
func (s *Server) SubmitPayment(ctx echo.Context, orderId openapi_types.UUID, params servers.SubmitPaymentParams) error {
	role, err := actor.RoleFromString(params.XActorRole)
	if err != nil {
		return badRequest(ctx, "Invalid actor role: "+params.XActorRole)
	}

	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body servers.SubmitPaymentJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	method, err := order.PaymentMethodFromString(body.Method)
	if err != nil {
		return badRequest(ctx, "Invalid payment method: "+body.Method)
	}

	cmd, err := commands.NewSubmitPaymentCommand(orderID, role, body.AmountCents, method)
	if err != nil {
		return badRequest(ctx, "Invalid payment data: "+err.Error())
	}

	if err := s.submitPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RequestCancellation handles POST /orders/{orderId}/cancellation.
func (s *Server) RequestCancellation(ctx echo.Context, orderId openapi_types.UUID, params servers.RequestCancellationParams) error {
	role, err := actor.RoleFromString(params.XActorRole)
	if err != nil {
		return badRequest(ctx, "Invalid actor role: "+params.XActorRole)
	}

	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body servers.RequestCancellationJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRequestCancellationCommand(orderID, role, body.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid cancellation data: "+err.Error())
	}

	if err := s.requestCancellationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResolveCancellation handles POST /orders/{orderId}/cancellation/resolution.
func (s *Server) ResolveCancellation(ctx echo.Context, orderId openapi_types.UUID, params servers.ResolveCancellationParams) error {
	role, err := actor.RoleFromString(params.XActorRole)
	if err != nil {
		return badRequest(ctx, "Invalid actor role: "+params.XActorRole)
	}

	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body servers.ResolveCancellationJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewResolveCancellationCommand(orderID, role, body.Approve, deref(body.Note))
	if err != nil {
		return badRequest(ctx, "Invalid resolution data: "+err.Error())
	}

	if err := s.resolveCancellationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// respondWithOrder reads the stored order back and returns it as the
// response body, so callers always see the store's version of their write.
func (s *Server) respondWithOrder(ctx echo.Context, orderID kernel.UUID, code int) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	stored, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(code, apiOrderFromResponse(stored))
}

// writeError translates the error taxonomy onto HTTP status codes.
func (s *Server) writeError(ctx echo.Context, err error) error {
	var forbidden *errs.ForbiddenError
	if errors.As(err, &forbidden) {
		capability := forbidden.Capability
		return ctx.JSON(http.StatusForbidden, servers.Error{
			Code:    http.StatusForbidden,
			Message: err.Error(),
			Detail:  &servers.ErrorDetail{Capability: &capability},
		})
	}

	var transition *errs.InvalidTransitionError
	if errors.As(err, &transition) {
		from, to := transition.From, transition.To
		return ctx.JSON(http.StatusUnprocessableEntity, servers.Error{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
			Detail:  &servers.ErrorDetail{From: &from, To: &to},
		})
	}

	var stock *errs.InsufficientStockError
	if errors.As(err, &stock) {
		var detail *servers.ErrorDetail
		if stock.HasDetail() {
			ingredient, ingredientType, available := stock.Ingredient, stock.IngredientType, stock.Available
			detail = &servers.ErrorDetail{
				Ingredient:     &ingredient,
				IngredientType: &ingredientType,
				Available:      &available,
			}
		}
		return ctx.JSON(http.StatusConflict, servers.Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
			Detail:  detail,
		})
	}

	if errors.Is(err, errs.ErrConflict) {
		return ctx.JSON(http.StatusConflict, servers.Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	}

	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, servers.Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	}

	if errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsOutOfRange) {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	s.logger.Error("request failed", "error", err)
	return ctx.JSON(http.StatusInternalServerError, servers.Error{
		Code:    http.StatusInternalServerError,
		Message: "Internal server error",
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func itemSpecsFromAPI(apiItems []servers.NewItem) ([]commands.ItemSpec, error) {
	specs := make([]commands.ItemSpec, 0, len(apiItems))
	for _, apiItem := range apiItems {
		productID, err := kernel.UUIDFromBytes(apiItem.ProductId[:])
		if err != nil {
			return nil, err
		}

		specs = append(specs, commands.ItemSpec{
			ProductID:          productID,
			Name:               apiItem.Name,
			Quantity:           apiItem.Quantity,
			UnitPriceCents:     apiItem.UnitPriceCents,
			Modifiers:          deref(apiItem.Modifiers),
			RemovedIngredients: deref(apiItem.RemovedIngredients),
			Note:               deref(apiItem.Note),
		})
	}
	return specs, nil
}

func apiOrderFromResponse(response queries.GetActiveOrdersQueryResponse) servers.Order {
	items := make([]servers.Item, 0, len(response.Items))
	for _, item := range response.Items {
		apiItem := servers.Item{
			ProductId:      item.ProductID.String(),
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		}
		if len(item.Modifiers) > 0 {
			modifiers := item.Modifiers
			apiItem.Modifiers = &modifiers
		}
		if len(item.RemovedIngredients) > 0 {
			removed := item.RemovedIngredients
			apiItem.RemovedIngredients = &removed
		}
		if item.Note != "" {
			note := item.Note
			apiItem.Note = &note
		}
		items = append(items, apiItem)
	}

	apiOrder := servers.Order{
		Id:                 response.ID.String(),
		Number:             response.Number,
		BranchId:           response.BranchID.String(),
		Status:             response.Status.String(),
		DeliveryType:       response.DeliveryType.String(),
		Items:              items,
		SubtotalCents:      response.SubtotalCents,
		TaxTotalCents:      response.TaxTotalCents,
		TotalCents:         response.TotalCents,
		PaidCents:          response.PaidCents,
		Settled:            response.Settled,
		CancellationStatus: response.CancellationStatus.String(),
		CreatedAt:          response.CreatedAt,
		UpdatedAt:          response.UpdatedAt,
	}
	if response.TableID != nil {
		tableID := response.TableID.String()
		apiOrder.TableId = &tableID
	}
	if response.CancellationReason != "" {
		reason := response.CancellationReason
		apiOrder.CancellationReason = &reason
	}
	if response.CancellationDeniedReason != "" {
		denied := response.CancellationDeniedReason
		apiOrder.CancellationDeniedReason = &denied
	}

	return apiOrder
}

func deref[T any](value *T) T {
	if value == nil {
		var zero T
		return zero
	}
	return *value
}
