package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atelierline/storefront-gateway/pkg/upstream"
)

type stubSource struct {
	products  []upstream.Product
	listCalls int
	listErr   error
}

func (s *stubSource) ListProducts(ctx context.Context) ([]upstream.Product, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.products, nil
}

func (s *stubSource) GetProduct(ctx context.Context, productID string) (*upstream.Product, error) {
	for i := range s.products {
		if s.products[i].ID == productID {
			return &s.products[i], nil
		}
	}
	return nil, errors.New("not found")
}

func newSearchService(t *testing.T, source *stubSource) Service {
	t.Helper()
	svc, err := NewService(source, nil, time.Minute)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestSearchIsCaseInsensitiveAndIdempotent(t *testing.T) {
	source := &stubSource{products: []upstream.Product{
		{ID: "p1", Title: "Leather Bag"},
		{ID: "p2", Title: "Silk Scarf"},
	}}
	svc := newSearchService(t, source)

	upper, err := svc.Search(context.Background(), "Bag")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	lower, err := svc.Search(context.Background(), "bag")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(upper) != 1 || len(lower) != 1 || upper[0].ID != lower[0].ID {
		t.Fatalf("expected identical non-empty results, got %+v vs %+v", upper, lower)
	}
}

func TestSearchFetchesCatalogOnce(t *testing.T) {
	source := &stubSource{products: []upstream.Product{{ID: "p1", Title: "Leather Bag"}}}
	svc := newSearchService(t, source)

	for _, query := range []string{"l", "le", "lea", "leather"} {
		if _, err := svc.Search(context.Background(), query); err != nil {
			t.Fatalf("search %q: %v", query, err)
		}
	}
	if source.listCalls != 1 {
		t.Fatalf("expected a single catalog fetch, got %d", source.listCalls)
	}
}

func TestSearchEmptyQueryWarmsCacheReturnsNothing(t *testing.T) {
	source := &stubSource{products: []upstream.Product{{ID: "p1", Title: "Leather Bag"}}}
	svc := newSearchService(t, source)

	results, err := svc.Search(context.Background(), "  ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no matches for empty query, got %+v", results)
	}
	if source.listCalls != 1 {
		t.Fatalf("expected cache warmed, got %d fetches", source.listCalls)
	}
}

func TestSearchServesStaleSnapshotWhenRefreshFails(t *testing.T) {
	source := &stubSource{products: []upstream.Product{{ID: "p1", Title: "Leather Bag"}}}
	svc, err := NewService(source, nil, time.Nanosecond)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.Search(context.Background(), "bag"); err != nil {
		t.Fatalf("warm search: %v", err)
	}

	source.listErr = errors.New("backend down")
	time.Sleep(time.Millisecond)

	results, err := svc.Search(context.Background(), "bag")
	if err != nil {
		t.Fatalf("expected stale snapshot, got error %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected stale results, got %+v", results)
	}
}

func TestListByCategory(t *testing.T) {
	source := &stubSource{products: []upstream.Product{
		{ID: "p1", Title: "Leather Bag", Category: "bags", SubCategory: "totes"},
		{ID: "p2", Title: "Clutch", Category: "bags", SubCategory: "clutches"},
		{ID: "p3", Title: "Silk Scarf", Category: "accessories"},
	}}
	svc := newSearchService(t, source)

	bags, err := svc.ListByCategory(context.Background(), "Bags", "")
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(bags) != 2 {
		t.Fatalf("expected two bags, got %+v", bags)
	}

	totes, err := svc.ListByCategory(context.Background(), "bags", "totes")
	if err != nil {
		t.Fatalf("list by subcategory: %v", err)
	}
	if len(totes) != 1 || totes[0].ID != "p1" {
		t.Fatalf("expected only totes, got %+v", totes)
	}
}

func TestDetailResolvesSelection(t *testing.T) {
	product := sampleProduct()
	source := &stubSource{products: []upstream.Product{*product}}
	svc := newSearchService(t, source)

	detail, err := svc.Detail(context.Background(), "p1", SelectedOptions{"color": "blue", "size": "M"})
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.Availability.Variant == nil || detail.Availability.Variant.ID != "v-blue-m" {
		t.Fatalf("unexpected availability %+v", detail.Availability)
	}
	if len(detail.Groups) != 2 {
		t.Fatalf("expected attribute groups, got %+v", detail.Groups)
	}
	if len(detail.Product.Reviews) != 1 || detail.Product.Reviews[0].Rating != 5 {
		t.Fatalf("expected product reviews carried through, got %+v", detail.Product.Reviews)
	}
}
