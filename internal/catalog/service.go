package catalog

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/atelierline/storefront-gateway/pkg/errors"
	"github.com/atelierline/storefront-gateway/pkg/upstream"
)

// ProductSource is the slice of the backend client the catalog needs.
type ProductSource interface {
	ListProducts(ctx context.Context) ([]upstream.Product, error)
	GetProduct(ctx context.Context, productID string) (*upstream.Product, error)
}

// SnapshotCache persists the catalog snapshot across gateway instances.
type SnapshotCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CatalogKey() string
}

// Service serves catalog reads from a session-scoped snapshot so that
// search-as-you-type never hits the backend per keystroke.
type Service interface {
	Search(ctx context.Context, query string) ([]upstream.Product, error)
	ListByCategory(ctx context.Context, category, subCategory string) ([]upstream.Product, error)
	List(ctx context.Context) ([]upstream.Product, error)
	Get(ctx context.Context, productID string) (*upstream.Product, error)
	Detail(ctx context.Context, productID string, selected SelectedOptions) (*ProductDetail, error)
}

// ProductDetail bundles a product with its derived selection state.
type ProductDetail struct {
	Product      upstream.Product `json:"product"`
	Groups       []AttributeGroup `json:"groups"`
	Availability Availability     `json:"availability"`
}

type service struct {
	source   ProductSource
	snapshot SnapshotCache
	ttl      time.Duration

	mu        sync.Mutex
	products  []upstream.Product
	fetchedAt time.Time
}

// NewService builds the catalog service.
func NewService(source ProductSource, snapshot SnapshotCache, ttl time.Duration) (Service, error) {
	if source == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "product source is required")
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &service{source: source, snapshot: snapshot, ttl: ttl}, nil
}

// Search filters the cached catalog by case-insensitive substring match on
// the title. An empty query matches nothing but still warms the cache.
func (s *service) Search(ctx context.Context, query string) ([]upstream.Product, error) {
	products, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return []upstream.Product{}, nil
	}
	matches := []upstream.Product{}
	for _, product := range products {
		if strings.Contains(strings.ToLower(product.Title), needle) {
			matches = append(matches, product)
		}
	}
	return matches, nil
}

// ListByCategory filters the cached catalog by category and optional
// subcategory.
func (s *service) ListByCategory(ctx context.Context, category, subCategory string) ([]upstream.Product, error) {
	products, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	wantCategory := strings.ToLower(strings.TrimSpace(category))
	wantSub := strings.ToLower(strings.TrimSpace(subCategory))
	matches := []upstream.Product{}
	for _, product := range products {
		if wantCategory != "" && strings.ToLower(product.Category) != wantCategory {
			continue
		}
		if wantSub != "" && strings.ToLower(product.SubCategory) != wantSub {
			continue
		}
		matches = append(matches, product)
	}
	return matches, nil
}

// List returns the full cached catalog.
func (s *service) List(ctx context.Context) ([]upstream.Product, error) {
	return s.catalog(ctx)
}

// Get fetches a single product straight from the backend. Detail views want
// the freshest stock, not the search snapshot.
func (s *service) Get(ctx context.Context, productID string) (*upstream.Product, error) {
	return s.source.GetProduct(ctx, productID)
}

// Detail resolves the derived selection state for the product page.
func (s *service) Detail(ctx context.Context, productID string, selected SelectedOptions) (*ProductDetail, error) {
	product, err := s.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &ProductDetail{
		Product:      *product,
		Groups:       AttributeGroups(product),
		Availability: ResolveAvailability(product, selected),
	}, nil
}

func (s *service) catalog(ctx context.Context) ([]upstream.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.products != nil && time.Since(s.fetchedAt) < s.ttl {
		return s.products, nil
	}

	if cached, ok := s.loadSnapshot(ctx); ok {
		s.products = cached
		s.fetchedAt = time.Now()
		return s.products, nil
	}

	products, err := s.source.ListProducts(ctx)
	if err != nil {
		// A stale snapshot beats an empty search panel.
		if s.products != nil {
			return s.products, nil
		}
		return nil, err
	}

	s.products = products
	s.fetchedAt = time.Now()
	s.storeSnapshot(ctx, products)
	return s.products, nil
}

func (s *service) loadSnapshot(ctx context.Context) ([]upstream.Product, bool) {
	if s.snapshot == nil {
		return nil, false
	}
	raw, err := s.snapshot.Get(ctx, s.snapshot.CatalogKey())
	if err != nil || raw == "" {
		return nil, false
	}
	var products []upstream.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, false
	}
	return products, true
}

func (s *service) storeSnapshot(ctx context.Context, products []upstream.Product) {
	if s.snapshot == nil {
		return
	}
	encoded, err := json.Marshal(products)
	if err != nil {
		return
	}
	// Snapshot writes are best effort; the in-memory copy already serves.
	_ = s.snapshot.Set(ctx, s.snapshot.CatalogKey(), string(encoded), s.ttl)
}
