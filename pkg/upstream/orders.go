package upstream

import (
	"context"
	"net/http"
	"strings"

	pkgerrors "github.com/atelierline/storefront-gateway/pkg/errors"
)

// CreateOrder places an order on behalf of the authenticated user.
func (c *Client) CreateOrder(ctx context.Context, token string, payload OrderPayload) (*Order, error) {
	if strings.TrimSpace(token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "bearer token is required")
	}
	if len(payload.OrderItems) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order has no items")
	}
	var order Order
	if err := c.callData(ctx, http.MethodPost, "create_order", "/createOrder", token, payload, &order); err != nil {
		return nil, err
	}
	if order.OrderItems == nil {
		order.OrderItems = []OrderItem{}
	}
	return &order, nil
}

// ListOrders fetches the authenticated user's order history.
func (c *Client) ListOrders(ctx context.Context, token string) ([]Order, error) {
	if strings.TrimSpace(token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "bearer token is required")
	}
	var orders []Order
	if err := c.callData(ctx, http.MethodGet, "list_orders", "/getSingleOrder", token, nil, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []Order{}
	}
	for i := range orders {
		if orders[i].OrderItems == nil {
			orders[i].OrderItems = []OrderItem{}
		}
	}
	return orders, nil
}
