// Package httpclient is the actor-side client of the order store's REST
// API. Responses are decoded into the shared snapshot shapes and HTTP
// failure codes are mapped back onto the error taxonomy, so the session
// and projection layers never see transport details.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pos/internal/core/domain/events"
	"pos/internal/core/domain/model/actor"
	"pos/internal/core/ports"
	"pos/internal/pkg/errs"
)

const requestTimeout = 15 * time.Second

// Gateway implements ports.OrderGateway against the REST API.
type Gateway struct {
	baseURL   string
	actorRole actor.Role
	client    *http.Client
}

// NewGateway creates a gateway for one actor. The role travels on every
// request; the store's oracle check is authoritative, client-side guards
// only short-circuit.
func NewGateway(baseURL string, actorRole actor.Role) *Gateway {
	return &Gateway{
		baseURL:   strings.TrimRight(baseURL, "/"),
		actorRole: actorRole,
		client:    &http.Client{Timeout: requestTimeout},
	}
}

// errorBody is the store's error response shape.
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  *struct {
		Capability     string `json:"capability,omitempty"`
		From           string `json:"from,omitempty"`
		To             string `json:"to,omitempty"`
		Ingredient     string `json:"ingredient,omitempty"`
		IngredientType string `json:"ingredient_type,omitempty"`
		Available      int    `json:"available,omitempty"`
	} `json:"detail,omitempty"`
}

// FetchActive retrieves the branch's active orders, optionally filtered by
// status set.
func (g *Gateway) FetchActive(ctx context.Context, branchID string, statuses []string) ([]events.OrderSnapshot, error) {
	query := url.Values{"branch_id": {branchID}}
	if len(statuses) > 0 {
		query.Set("statuses", strings.Join(statuses, ","))
	}

	var snapshots []events.OrderSnapshot
	err := g.do(ctx, http.MethodGet, "/api/v1/orders/active?"+query.Encode(), nil, &snapshots)
	return snapshots, err
}

// CreateOrder submits a new order and returns the stored snapshot.
func (g *Gateway) CreateOrder(ctx context.Context, req ports.CreateOrderRequest) (events.OrderSnapshot, error) {
	body := map[string]any{
		"branch_id":     req.BranchID,
		"delivery_type": req.DeliveryType,
		"items":         req.Items,
	}
	if req.TableID != nil {
		body["table_id"] = *req.TableID
	}
	if req.DeliveryType == "Delivery" {
		body["contact_name"] = req.ContactName
		body["contact_phone"] = req.ContactPhone
		body["address"] = req.Address
	}

	var snapshot events.OrderSnapshot
	err := g.do(ctx, http.MethodPost, "/api/v1/orders", body, &snapshot)
	return snapshot, err
}

// AppendItems adds lines to an existing order.
func (g *Gateway) AppendItems(ctx context.Context, orderID string, items []events.ItemSnapshot) (events.OrderSnapshot, error) {
	var snapshot events.OrderSnapshot
	err := g.do(ctx, http.MethodPost,
		"/api/v1/orders/"+url.PathEscape(orderID)+"/items",
		map[string]any{"items": items}, &snapshot)
	return snapshot, err
}

// PatchStatus requests a lifecycle transition.
func (g *Gateway) PatchStatus(ctx context.Context, orderID string, status string) error {
	return g.do(ctx, http.MethodPatch,
		"/api/v1/orders/"+url.PathEscape(orderID)+"/status",
		map[string]any{"status": status}, nil)
}

// SubmitPayment records a payment against the order.
func (g *Gateway) SubmitPayment(ctx context.Context, orderID string, amountCents int64, method string) error {
	return g.do(ctx, http.MethodPost,
		"/api/v1/orders/"+url.PathEscape(orderID)+"/payments",
		map[string]any{"amount_cents": amountCents, "method": method}, nil)
}

// RequestCancellation opens (or, for direct-cancel holders, immediately
// applies) a cancellation.
func (g *Gateway) RequestCancellation(ctx context.Context, orderID string, reason string) error {
	return g.do(ctx, http.MethodPost,
		"/api/v1/orders/"+url.PathEscape(orderID)+"/cancellation",
		map[string]any{"reason": reason}, nil)
}

// ResolveCancellation approves or denies a pending request.
func (g *Gateway) ResolveCancellation(ctx context.Context, orderID string, approve bool, note string) error {
	return g.do(ctx, http.MethodPost,
		"/api/v1/orders/"+url.PathEscape(orderID)+"/cancellation/resolution",
		map[string]any{"approve": approve, "note": note}, nil)
}

func (g *Gateway) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Actor-Role", g.actorRole.String())

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

// decodeError maps an HTTP failure back onto the taxonomy. A body that
// does not parse still maps by status code, carrying the raw text.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		body = errorBody{Message: strings.TrimSpace(string(raw))}
	}
	if body.Message == "" {
		body.Message = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusForbidden:
		capability := body.Message
		if body.Detail != nil && body.Detail.Capability != "" {
			capability = body.Detail.Capability
		}
		return errs.NewForbiddenError(capability)

	case http.StatusUnprocessableEntity:
		if body.Detail != nil {
			return errs.NewInvalidTransitionError(body.Detail.From, body.Detail.To)
		}
		return errs.NewInvalidTransitionError("", "")

	case http.StatusConflict:
		if body.Detail != nil && body.Detail.Ingredient != "" {
			return errs.NewInsufficientStockError(
				body.Detail.Ingredient, body.Detail.IngredientType, body.Detail.Available)
		}
		if strings.Contains(strings.ToLower(body.Message), "stock") {
			return errs.NewInsufficientStockErrorFromMessage(body.Message)
		}
		return errs.NewConflictError(body.Message)

	case http.StatusNotFound:
		return errs.NewObjectNotFoundError("order", body.Message)

	default:
		return fmt.Errorf("order store returned %d: %s", resp.StatusCode, body.Message)
	}
}
