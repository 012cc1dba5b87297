package content

import (
	"context"
	"errors"
	"testing"

	pkgerrors "github.com/atelierline/storefront-gateway/pkg/errors"
	"github.com/atelierline/storefront-gateway/pkg/upstream"
)

type stubContentBackend struct {
	settings    *upstream.Settings
	settingsErr error
	banners     []upstream.Banner
	bannersErr  error
	promos      []upstream.Promo
	promosErr   error
	reviews     []upstream.SiteReview
	reviewsErr  error
	trending    []upstream.Product
	trendingErr error
	blogs       []upstream.Blog
	blogsErr    error
	pages       []upstream.CMSPage
	comments    []string
}

func (s *stubContentBackend) GetSettings(ctx context.Context) (*upstream.Settings, error) {
	return s.settings, s.settingsErr
}

func (s *stubContentBackend) GetCMS(ctx context.Context) ([]upstream.CMSPage, error) {
	return s.pages, nil
}

func (s *stubContentBackend) ListBanners(ctx context.Context) ([]upstream.Banner, error) {
	return s.banners, s.bannersErr
}

func (s *stubContentBackend) ListPromos(ctx context.Context) ([]upstream.Promo, error) {
	return s.promos, s.promosErr
}

func (s *stubContentBackend) ListHomeReviews(ctx context.Context) ([]upstream.SiteReview, error) {
	return s.reviews, s.reviewsErr
}

func (s *stubContentBackend) ListTrending(ctx context.Context) ([]upstream.Product, error) {
	return s.trending, s.trendingErr
}

func (s *stubContentBackend) AddToTrending(ctx context.Context, token, productID string) error {
	return nil
}

func (s *stubContentBackend) RemoveFromTrending(ctx context.Context, token, productID string) error {
	return nil
}

func (s *stubContentBackend) ListBlogs(ctx context.Context) ([]upstream.Blog, error) {
	return s.blogs, s.blogsErr
}

func (s *stubContentBackend) GetBlog(ctx context.Context, blogID string) (*upstream.Blog, error) {
	for i := range s.blogs {
		if s.blogs[i].ID == blogID {
			return &s.blogs[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "blog not found")
}

func (s *stubContentBackend) CommentOnBlog(ctx context.Context, token, blogID, text string) error {
	s.comments = append(s.comments, text)
	return nil
}

func newTestService(t *testing.T, backend Backend) Service {
	t.Helper()
	svc, err := NewService(backend, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestHomeToleratesPartialFailure(t *testing.T) {
	backend := &stubContentBackend{
		settings:   &upstream.Settings{SiteTitle: "Atelier Line"},
		banners:    []upstream.Banner{{ID: "b1"}},
		promos:     []upstream.Promo{{ID: "promo1", Title: "Summer Sale"}},
		reviewsErr: errors.New("reviews down"),
		trending:   []upstream.Product{{ID: "p1"}},
		blogs:      []upstream.Blog{{ID: "blog1"}},
	}
	svc := newTestService(t, backend)

	home, err := svc.Home(context.Background())
	if err != nil {
		t.Fatalf("home: %v", err)
	}
	if home.Settings == nil || home.Settings.SiteTitle != "Atelier Line" {
		t.Fatalf("expected settings loaded, got %+v", home.Settings)
	}
	if len(home.Banners) != 1 || len(home.Trending) != 1 || len(home.Blogs) != 1 {
		t.Fatalf("expected loaded sections, got %+v", home)
	}
	if len(home.Promos) != 1 || home.Promos[0].Title != "Summer Sale" {
		t.Fatalf("expected promos loaded, got %+v", home.Promos)
	}
	if len(home.Reviews) != 0 {
		t.Fatalf("failed section must stay empty, got %+v", home.Reviews)
	}
}

func TestHomeFailsWhenEverySectionFails(t *testing.T) {
	down := errors.New("backend down")
	backend := &stubContentBackend{
		settingsErr: down,
		bannersErr:  down,
		promosErr:   down,
		reviewsErr:  down,
		trendingErr: down,
		blogsErr:    down,
	}
	svc := newTestService(t, backend)

	_, err := svc.Home(context.Background())
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeUpstream {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestPageLookupBySlug(t *testing.T) {
	backend := &stubContentBackend{pages: []upstream.CMSPage{
		{ID: "c1", Slug: "about-us", Title: "About"},
		{ID: "c2", Slug: "returns", Title: "Returns"},
	}}
	svc := newTestService(t, backend)

	page, err := svc.Page(context.Background(), "About-Us")
	if err != nil || page.ID != "c1" {
		t.Fatalf("expected case-insensitive slug match, got %+v %v", page, err)
	}

	_, err = svc.Page(context.Background(), "missing")
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPromosPassThrough(t *testing.T) {
	backend := &stubContentBackend{promos: []upstream.Promo{{ID: "promo1", Button: "SHOP NOW"}}}
	svc := newTestService(t, backend)

	promos, err := svc.Promos(context.Background())
	if err != nil || len(promos) != 1 || promos[0].Button != "SHOP NOW" {
		t.Fatalf("unexpected promos %+v %v", promos, err)
	}
}

func TestCommentValidation(t *testing.T) {
	backend := &stubContentBackend{blogs: []upstream.Blog{{ID: "blog1"}}}
	svc := newTestService(t, backend)

	err := svc.CommentOnBlog(context.Background(), "tok", "blog1", "  ")
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := svc.CommentOnBlog(context.Background(), "tok", "blog1", "great read"); err != nil {
		t.Fatalf("comment: %v", err)
	}
	if len(backend.comments) != 1 {
		t.Fatalf("expected comment forwarded, got %v", backend.comments)
	}
}
