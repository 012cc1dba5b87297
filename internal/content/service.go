package content

import (
	"context"
	"strings"
	"sync"

	pkgerrors "github.com/atelierline/storefront-gateway/pkg/errors"
	"github.com/atelierline/storefront-gateway/pkg/logger"
	"github.com/atelierline/storefront-gateway/pkg/upstream"
	"go.uber.org/multierr"
)

// Backend is the slice of the commerce client site content needs.
type Backend interface {
	GetSettings(ctx context.Context) (*upstream.Settings, error)
	GetCMS(ctx context.Context) ([]upstream.CMSPage, error)
	ListBanners(ctx context.Context) ([]upstream.Banner, error)
	ListPromos(ctx context.Context) ([]upstream.Promo, error)
	ListHomeReviews(ctx context.Context) ([]upstream.SiteReview, error)
	ListTrending(ctx context.Context) ([]upstream.Product, error)
	AddToTrending(ctx context.Context, token, productID string) error
	RemoveFromTrending(ctx context.Context, token, productID string) error
	ListBlogs(ctx context.Context) ([]upstream.Blog, error)
	GetBlog(ctx context.Context, blogID string) (*upstream.Blog, error)
	CommentOnBlog(ctx context.Context, token, blogID, text string) error
}

// Home is everything the landing page renders, fetched in one round trip.
type Home struct {
	Settings *upstream.Settings    `json:"settings,omitempty"`
	Banners  []upstream.Banner     `json:"banners"`
	Promos   []upstream.Promo      `json:"promos"`
	Reviews  []upstream.SiteReview `json:"reviews"`
	Trending []upstream.Product    `json:"trending"`
	Blogs    []upstream.Blog       `json:"blogs"`
}

// Service serves site content and the curated trending list.
type Service interface {
	Home(ctx context.Context) (*Home, error)
	Settings(ctx context.Context) (*upstream.Settings, error)
	Pages(ctx context.Context) ([]upstream.CMSPage, error)
	Page(ctx context.Context, slug string) (*upstream.CMSPage, error)

	Promos(ctx context.Context) ([]upstream.Promo, error)

	Blogs(ctx context.Context) ([]upstream.Blog, error)
	Blog(ctx context.Context, blogID string) (*upstream.Blog, error)
	CommentOnBlog(ctx context.Context, token, blogID, text string) error

	Trending(ctx context.Context) ([]upstream.Product, error)
	AddToTrending(ctx context.Context, token, productID string) error
	RemoveFromTrending(ctx context.Context, token, productID string) error
}

type service struct {
	backend Backend
	logg    *logger.Logger
}

// NewService builds the content service.
func NewService(backend Backend, logg *logger.Logger) (Service, error) {
	if backend == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "content backend is required")
	}
	return &service{backend: backend, logg: logg}, nil
}

// Home fans out to the content endpoints concurrently. Sections that fail are
// left empty; the call errors only when every section failed.
func (s *service) Home(ctx context.Context) (*Home, error) {
	home := &Home{
		Banners:  []upstream.Banner{},
		Promos:   []upstream.Promo{},
		Reviews:  []upstream.SiteReview{},
		Trending: []upstream.Product{},
		Blogs:    []upstream.Blog{},
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		combined error
		loaded   int
	)
	section := func(fetch func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := fetch()
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				combined = multierr.Append(combined, err)
				return
			}
			loaded++
		}()
	}

	section(func() error {
		settings, err := s.backend.GetSettings(ctx)
		if err != nil {
			return err
		}
		home.Settings = settings
		return nil
	})
	section(func() error {
		banners, err := s.backend.ListBanners(ctx)
		if err != nil {
			return err
		}
		home.Banners = banners
		return nil
	})
	section(func() error {
		promos, err := s.backend.ListPromos(ctx)
		if err != nil {
			return err
		}
		home.Promos = promos
		return nil
	})
	section(func() error {
		reviews, err := s.backend.ListHomeReviews(ctx)
		if err != nil {
			return err
		}
		home.Reviews = reviews
		return nil
	})
	section(func() error {
		trending, err := s.backend.ListTrending(ctx)
		if err != nil {
			return err
		}
		home.Trending = trending
		return nil
	})
	section(func() error {
		blogs, err := s.backend.ListBlogs(ctx)
		if err != nil {
			return err
		}
		home.Blogs = blogs
		return nil
	})
	wg.Wait()

	if combined != nil {
		if loaded == 0 {
			return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, combined, "home content unavailable")
		}
		if s.logg != nil {
			s.logg.Warn(ctx, "partial home content: "+combined.Error())
		}
	}
	return home, nil
}

func (s *service) Settings(ctx context.Context) (*upstream.Settings, error) {
	return s.backend.GetSettings(ctx)
}

func (s *service) Pages(ctx context.Context) ([]upstream.CMSPage, error) {
	return s.backend.GetCMS(ctx)
}

// Page finds a CMS page by slug, case-insensitively.
func (s *service) Page(ctx context.Context, slug string) (*upstream.CMSPage, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "page slug is required")
	}
	pages, err := s.backend.GetCMS(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pages {
		if strings.EqualFold(pages[i].Slug, trimmed) {
			return &pages[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "page not found")
}

func (s *service) Promos(ctx context.Context) ([]upstream.Promo, error) {
	return s.backend.ListPromos(ctx)
}

func (s *service) Blogs(ctx context.Context) ([]upstream.Blog, error) {
	return s.backend.ListBlogs(ctx)
}

func (s *service) Blog(ctx context.Context, blogID string) (*upstream.Blog, error) {
	if strings.TrimSpace(blogID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "blog id is required")
	}
	return s.backend.GetBlog(ctx, blogID)
}

func (s *service) CommentOnBlog(ctx context.Context, token, blogID, text string) error {
	if strings.TrimSpace(blogID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "blog id is required")
	}
	if strings.TrimSpace(text) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "comment text is required")
	}
	return s.backend.CommentOnBlog(ctx, token, blogID, text)
}

func (s *service) Trending(ctx context.Context) ([]upstream.Product, error) {
	return s.backend.ListTrending(ctx)
}

func (s *service) AddToTrending(ctx context.Context, token, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return s.backend.AddToTrending(ctx, token, productID)
}

func (s *service) RemoveFromTrending(ctx context.Context, token, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return s.backend.RemoveFromTrending(ctx, token, productID)
}
