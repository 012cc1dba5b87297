package cart

import (
	"context"
	"strings"
	"time"

	pkgerrors "github.com/atelierline/storefront-gateway/pkg/errors"
	"github.com/atelierline/storefront-gateway/pkg/logger"
	"github.com/atelierline/storefront-gateway/pkg/upstream"
	"github.com/shopspring/decimal"
)

// Backend is the slice of the commerce client the cart needs.
type Backend interface {
	UserProfile(ctx context.Context, token string) (*upstream.Profile, error)
	AddToCart(ctx context.Context, token, productID string) error
	RemoveCartItem(ctx context.Context, token, productID string) error
}

// QuantityCache stores per-user quantity overrides. Membership stays with
// the backend; only quantities are client-authoritative between syncs.
type QuantityCache interface {
	GetQuantities(ctx context.Context, userID string) (map[string]int, error)
	SetQuantity(ctx context.Context, userID, productID string, qty int, ttl time.Duration) error
	DeleteQuantities(ctx context.Context, userID string, productIDs ...string) error
}

// Item is one reconciled cart line.
type Item struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Cart is the reconciled view returned to the storefront.
type Cart struct {
	Items    []Item          `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Service reconciles the backend cart with locally cached quantities.
type Service interface {
	Fetch(ctx context.Context, token string) (*Cart, error)
	Add(ctx context.Context, token, productID string) (*Cart, error)
	Remove(ctx context.Context, token, productID string) (*Cart, error)
	SetQuantity(ctx context.Context, token, productID string, qty int) (*Cart, error)
	Adjust(ctx context.Context, token, productID string, delta int) (*Cart, error)
}

type service struct {
	backend Backend
	cache   QuantityCache
	ttl     time.Duration
	logg    *logger.Logger
}

// NewService builds the cart service.
func NewService(backend Backend, cache QuantityCache, ttl time.Duration, logg *logger.Logger) (Service, error) {
	if backend == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart backend is required")
	}
	if cache == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "quantity cache is required")
	}
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &service{backend: backend, cache: cache, ttl: ttl, logg: logg}, nil
}

// ReconcileQuantities merges the cached quantity overrides with the backend's
// cart entries. For every entry: cached value if present, else the backend
// quantity when positive, else one.
func ReconcileQuantities(entries []upstream.CartEntry, cached map[string]int) map[string]int {
	quantities := make(map[string]int, len(entries))
	for _, entry := range entries {
		if qty, ok := cached[entry.ID]; ok && qty >= 1 {
			quantities[entry.ID] = qty
			continue
		}
		if entry.Quantity > 0 {
			quantities[entry.ID] = entry.Quantity
			continue
		}
		quantities[entry.ID] = 1
	}
	return quantities
}

// Fetch pulls the backend cart, reconciles quantities and prunes cache
// entries for products the backend no longer lists.
func (s *service) Fetch(ctx context.Context, token string) (*Cart, error) {
	profile, err := s.backend.UserProfile(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.reconcile(ctx, profile)
}

// Add attaches a product upstream and seeds its quantity override at one.
func (s *service) Add(ctx context.Context, token, productID string) (*Cart, error) {
	trimmed := strings.TrimSpace(productID)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if err := s.backend.AddToCart(ctx, token, trimmed); err != nil {
		return nil, err
	}
	profile, err := s.backend.UserProfile(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetQuantity(ctx, profile.ID, trimmed, 1, s.ttl); err != nil {
		s.warnCache(ctx, "cart.cache.seed_failed", trimmed, err)
	}
	return s.reconcile(ctx, profile)
}

// Remove detaches the product upstream; its quantity override is evicted only
// after the backend confirms.
func (s *service) Remove(ctx context.Context, token, productID string) (*Cart, error) {
	trimmed := strings.TrimSpace(productID)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if err := s.backend.RemoveCartItem(ctx, token, trimmed); err != nil {
		return nil, err
	}
	profile, err := s.backend.UserProfile(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.cache.DeleteQuantities(ctx, profile.ID, trimmed); err != nil {
		s.warnCache(ctx, "cart.cache.evict_failed", trimmed, err)
	}
	return s.reconcile(ctx, profile)
}

// SetQuantity overrides the quantity for a product already in the cart.
// Quantities below one are rejected; removal is an explicit operation.
func (s *service) SetQuantity(ctx context.Context, token, productID string, qty int) (*Cart, error) {
	trimmed := strings.TrimSpace(productID)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if qty < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	profile, err := s.backend.UserProfile(ctx, token)
	if err != nil {
		return nil, err
	}
	if !cartContains(profile.Cart, trimmed) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product is not in the cart")
	}
	if err := s.cache.SetQuantity(ctx, profile.ID, trimmed, qty, s.ttl); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnavailable, err, "store quantity override")
	}
	return s.reconcile(ctx, profile)
}

// Adjust changes a product's quantity by delta. Decrementing from one removes
// the item instead of leaving a zero or negative quantity.
func (s *service) Adjust(ctx context.Context, token, productID string, delta int) (*Cart, error) {
	trimmed := strings.TrimSpace(productID)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if delta == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delta must be non-zero")
	}

	profile, err := s.backend.UserProfile(ctx, token)
	if err != nil {
		return nil, err
	}
	if !cartContains(profile.Cart, trimmed) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product is not in the cart")
	}

	cached, err := s.cache.GetQuantities(ctx, profile.ID)
	if err != nil {
		s.warnCache(ctx, "cart.cache.read_failed", trimmed, err)
		cached = map[string]int{}
	}
	current := ReconcileQuantities(profile.Cart, cached)[trimmed]

	next := current + delta
	if next < 1 {
		return s.Remove(ctx, token, trimmed)
	}
	if err := s.cache.SetQuantity(ctx, profile.ID, trimmed, next, s.ttl); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnavailable, err, "store quantity override")
	}
	return s.reconcile(ctx, profile)
}

func (s *service) reconcile(ctx context.Context, profile *upstream.Profile) (*Cart, error) {
	cached, err := s.cache.GetQuantities(ctx, profile.ID)
	if err != nil {
		s.warnCache(ctx, "cart.cache.read_failed", "", err)
		cached = map[string]int{}
	}

	quantities := ReconcileQuantities(profile.Cart, cached)

	// Overrides for products no longer in the backend cart are stale.
	var stale []string
	for productID := range cached {
		if _, ok := quantities[productID]; !ok {
			stale = append(stale, productID)
		}
	}
	if len(stale) > 0 {
		if err := s.cache.DeleteQuantities(ctx, profile.ID, stale...); err != nil {
			s.warnCache(ctx, "cart.cache.prune_failed", "", err)
		}
	}

	cart := &Cart{Items: make([]Item, 0, len(profile.Cart)), Subtotal: decimal.Zero}
	for _, entry := range profile.Cart {
		qty := quantities[entry.ID]
		item := Item{
			ProductID: entry.ID,
			Title:     entry.Title,
			Price:     entry.Price,
			Quantity:  qty,
		}
		if len(entry.Images) > 0 {
			item.Image = entry.Images[0].URL
		}
		cart.Items = append(cart.Items, item)

		line := decimal.NewFromFloat(entry.Price).Mul(decimal.NewFromInt(int64(qty)))
		cart.Subtotal = cart.Subtotal.Add(line)
	}
	return cart, nil
}

func (s *service) warnCache(ctx context.Context, msg, productID string, err error) {
	if s.logg == nil {
		return
	}
	if productID != "" {
		ctx = s.logg.WithProductID(ctx, productID)
	}
	s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), msg)
}

func cartContains(entries []upstream.CartEntry, productID string) bool {
	for _, entry := range entries {
		if entry.ID == productID {
			return true
		}
	}
	return false
}
