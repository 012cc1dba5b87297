package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	pkgerrors "github.com/atelierline/storefront-gateway/pkg/errors"
)

// GetSettings fetches the site-wide settings document.
func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	var settings Settings
	if err := c.callData(ctx, http.MethodGet, "get_settings", "/admin/getsettinginfoforuser", "", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// GetCMS fetches the content-managed pages.
func (c *Client) GetCMS(ctx context.Context) ([]CMSPage, error) {
	var pages []CMSPage
	if err := c.callData(ctx, http.MethodGet, "get_cms", "/admin/getCMS", "", nil, &pages); err != nil {
		return nil, err
	}
	if pages == nil {
		pages = []CMSPage{}
	}
	return pages, nil
}

// ListBanners fetches the homepage banners.
func (c *Client) ListBanners(ctx context.Context) ([]Banner, error) {
	var banners []Banner
	if err := c.callData(ctx, http.MethodGet, "list_banners", "/admin/getAllBanner", "", nil, &banners); err != nil {
		return nil, err
	}
	if banners == nil {
		banners = []Banner{}
	}
	return banners, nil
}

// ListPromos fetches the promotional tiles. The backend wraps these in a
// promos field rather than the usual data envelope.
func (c *Client) ListPromos(ctx context.Context) ([]Promo, error) {
	var wrapper struct {
		Promos []Promo `json:"promos"`
	}
	if err := c.call(ctx, http.MethodGet, "list_promos", "/admin/getAllPromos", "", nil, &wrapper); err != nil {
		return nil, err
	}
	if wrapper.Promos == nil {
		wrapper.Promos = []Promo{}
	}
	return wrapper.Promos, nil
}

// ListHomeReviews fetches customer reviews shown on the home page.
func (c *Client) ListHomeReviews(ctx context.Context) ([]SiteReview, error) {
	var reviews []SiteReview
	if err := c.callData(ctx, http.MethodGet, "list_home_reviews", "/admin/getAllReviewsByuser", "", nil, &reviews); err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []SiteReview{}
	}
	return reviews, nil
}

// ListTrending fetches the curated trending products widget.
func (c *Client) ListTrending(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.callData(ctx, http.MethodGet, "list_trending", "/admin/getTrendingProducts", "", nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []Product{}
	}
	for i := range products {
		products[i].normalize()
	}
	return products, nil
}

// AddToTrending adds a product to the trending widget.
func (c *Client) AddToTrending(ctx context.Context, token, productID string) error {
	if err := requireTokenAndID(token, productID); err != nil {
		return err
	}
	payload := map[string]string{"productId": strings.TrimSpace(productID)}
	return c.call(ctx, http.MethodPost, "add_to_trending", "/admin/addToTrending", token, payload, nil)
}

// RemoveFromTrending removes a product from the trending widget.
func (c *Client) RemoveFromTrending(ctx context.Context, token, productID string) error {
	if err := requireTokenAndID(token, productID); err != nil {
		return err
	}
	path := "/admin/removeFromTrending/" + url.PathEscape(strings.TrimSpace(productID))
	return c.call(ctx, http.MethodDelete, "remove_from_trending", path, token, nil, nil)
}

// ListBlogs fetches every published blog post.
func (c *Client) ListBlogs(ctx context.Context) ([]Blog, error) {
	var blogs []Blog
	if err := c.callData(ctx, http.MethodGet, "list_blogs", "/getAllBlogs", "", nil, &blogs); err != nil {
		return nil, err
	}
	if blogs == nil {
		blogs = []Blog{}
	}
	for i := range blogs {
		if blogs[i].Comments == nil {
			blogs[i].Comments = []BlogComment{}
		}
	}
	return blogs, nil
}

// GetBlog fetches a single blog post by id.
func (c *Client) GetBlog(ctx context.Context, blogID string) (*Blog, error) {
	trimmed := strings.TrimSpace(blogID)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "blog id is required")
	}
	var blog Blog
	path := "/getSingleBlogById/" + url.PathEscape(trimmed)
	if err := c.callData(ctx, http.MethodGet, "get_blog", path, "", nil, &blog); err != nil {
		return nil, err
	}
	if blog.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "blog not found")
	}
	if blog.Comments == nil {
		blog.Comments = []BlogComment{}
	}
	return &blog, nil
}

// CommentOnBlog appends an authenticated comment to a blog post.
func (c *Client) CommentOnBlog(ctx context.Context, token, blogID, text string) error {
	if strings.TrimSpace(token) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "bearer token is required")
	}
	if strings.TrimSpace(blogID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "blog id is required")
	}
	if strings.TrimSpace(text) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "comment text is required")
	}
	payload := map[string]string{"text": strings.TrimSpace(text)}
	path := "/commentOnBlog/" + url.PathEscape(strings.TrimSpace(blogID))
	return c.call(ctx, http.MethodPost, "comment_on_blog", path, token, payload, nil)
}
