package orders

import (
	"context"
	"sort"
	"strings"

	"github.com/atelierline/storefront-gateway/pkg/enums"
	pkgerrors "github.com/atelierline/storefront-gateway/pkg/errors"
	"github.com/atelierline/storefront-gateway/pkg/upstream"
)

// Backend is the slice of the commerce client order history needs.
type Backend interface {
	ListOrders(ctx context.Context, token string) ([]upstream.Order, error)
}

// Order is a backend order with its status normalized to the known set.
type Order struct {
	ID          string               `json:"id"`
	Status      enums.OrderStatus    `json:"status"`
	Items       []upstream.OrderItem `json:"items"`
	TotalAmount float64              `json:"totalAmount"`
	CreatedAt   string               `json:"createdAt"`
}

// History is the user's orders plus per-status counts for the account page
// tabs.
type History struct {
	Orders []Order                   `json:"orders"`
	Counts map[enums.OrderStatus]int `json:"counts"`
}

// Service exposes the user's order history.
type Service interface {
	History(ctx context.Context, token string) (*History, error)
	Get(ctx context.Context, token, orderID string) (*Order, error)
}

type service struct {
	backend Backend
}

// NewService builds the orders service.
func NewService(backend Backend) (Service, error) {
	if backend == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders backend is required")
	}
	return &service{backend: backend}, nil
}

// History lists the user's orders newest first with statuses normalized.
func (s *service) History(ctx context.Context, token string) (*History, error) {
	raw, err := s.backend.ListOrders(ctx, token)
	if err != nil {
		return nil, err
	}

	history := &History{
		Orders: make([]Order, 0, len(raw)),
		Counts: map[enums.OrderStatus]int{},
	}
	for _, order := range raw {
		normalized := normalize(order)
		history.Orders = append(history.Orders, normalized)
		history.Counts[normalized.Status]++
	}
	sort.SliceStable(history.Orders, func(i, j int) bool {
		return history.Orders[i].CreatedAt > history.Orders[j].CreatedAt
	})
	return history, nil
}

// Get returns a single order from the user's history.
func (s *service) Get(ctx context.Context, token, orderID string) (*Order, error) {
	trimmed := strings.TrimSpace(orderID)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}

	raw, err := s.backend.ListOrders(ctx, token)
	if err != nil {
		return nil, err
	}
	for _, order := range raw {
		if order.ID == trimmed {
			normalized := normalize(order)
			return &normalized, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func normalize(order upstream.Order) Order {
	items := order.OrderItems
	if items == nil {
		items = []upstream.OrderItem{}
	}
	return Order{
		ID:          order.ID,
		Status:      enums.NormalizeOrderStatus(order.OrderStatus),
		Items:       items,
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
	}
}
