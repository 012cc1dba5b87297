package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atelierline/storefront-gateway/internal/accounts"
	"github.com/atelierline/storefront-gateway/internal/cart"
	"github.com/atelierline/storefront-gateway/internal/catalog"
	"github.com/atelierline/storefront-gateway/internal/checkout"
	"github.com/atelierline/storefront-gateway/internal/content"
	"github.com/atelierline/storefront-gateway/internal/orders"
	"github.com/atelierline/storefront-gateway/pkg/config"
	"github.com/atelierline/storefront-gateway/pkg/upstream"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubCatalog struct{}

func (stubCatalog) Search(ctx context.Context, query string) ([]upstream.Product, error) {
	return []upstream.Product{}, nil
}

func (stubCatalog) ListByCategory(ctx context.Context, category, subCategory string) ([]upstream.Product, error) {
	return []upstream.Product{}, nil
}

func (stubCatalog) List(ctx context.Context) ([]upstream.Product, error) {
	return []upstream.Product{{ID: "p1", Title: "Bag"}, {ID: "p2", Title: "Scarf"}}, nil
}

func (stubCatalog) Get(ctx context.Context, productID string) (*upstream.Product, error) {
	return &upstream.Product{ID: productID}, nil
}

func (stubCatalog) Detail(ctx context.Context, productID string, selected catalog.SelectedOptions) (*catalog.ProductDetail, error) {
	return &catalog.ProductDetail{Product: upstream.Product{ID: productID}}, nil
}

type stubCart struct{}

func (stubCart) Fetch(ctx context.Context, token string) (*cart.Cart, error) {
	return &cart.Cart{Items: []cart.Item{}}, nil
}

func (stubCart) Add(ctx context.Context, token, productID string) (*cart.Cart, error) {
	return &cart.Cart{Items: []cart.Item{}}, nil
}

func (stubCart) Remove(ctx context.Context, token, productID string) (*cart.Cart, error) {
	return &cart.Cart{Items: []cart.Item{}}, nil
}

func (stubCart) SetQuantity(ctx context.Context, token, productID string, qty int) (*cart.Cart, error) {
	return &cart.Cart{Items: []cart.Item{}}, nil
}

func (stubCart) Adjust(ctx context.Context, token, productID string, delta int) (*cart.Cart, error) {
	return &cart.Cart{Items: []cart.Item{}}, nil
}

type stubCheckout struct{}

func (stubCheckout) Quote(ctx context.Context, token string, input checkout.QuoteInput) (*checkout.Quote, error) {
	return &checkout.Quote{}, nil
}

func (stubCheckout) PlaceOrder(ctx context.Context, token string, input checkout.PlaceOrderInput) (*upstream.Order, error) {
	return &upstream.Order{ID: "o1"}, nil
}

type stubOrders struct{}

func (stubOrders) History(ctx context.Context, token string) (*orders.History, error) {
	return &orders.History{Orders: []orders.Order{}}, nil
}

func (stubOrders) Get(ctx context.Context, token, orderID string) (*orders.Order, error) {
	return &orders.Order{ID: orderID}, nil
}

type stubWishlist struct{}

func (stubWishlist) List(ctx context.Context, token string) ([]upstream.Product, error) {
	return []upstream.Product{}, nil
}

func (stubWishlist) Add(ctx context.Context, token, productID string) ([]upstream.Product, error) {
	return []upstream.Product{}, nil
}

func (stubWishlist) Remove(ctx context.Context, token, productID string) ([]upstream.Product, error) {
	return []upstream.Product{}, nil
}

func (stubWishlist) Contains(ctx context.Context, token, productID string) (bool, error) {
	return false, nil
}

type stubAccounts struct{}

func (stubAccounts) Signup(ctx context.Context, req upstream.SignupRequest) (*upstream.AuthResult, error) {
	return &upstream.AuthResult{Message: "otp sent"}, nil
}

func (stubAccounts) Login(ctx context.Context, req upstream.LoginRequest) (*upstream.AuthResult, error) {
	return &upstream.AuthResult{Token: "tok"}, nil
}

func (stubAccounts) VerifyOTP(ctx context.Context, req upstream.VerifyOTPRequest) (*upstream.AuthResult, error) {
	return &upstream.AuthResult{Token: "tok"}, nil
}

func (stubAccounts) ResendOTP(ctx context.Context, email string) (*upstream.Ack, error) {
	return &upstream.Ack{Success: true}, nil
}

func (stubAccounts) ForgotPassword(ctx context.Context, email string) (*upstream.Ack, error) {
	return &upstream.Ack{Success: true}, nil
}

func (stubAccounts) ResetPassword(ctx context.Context, req upstream.ResetPasswordRequest) (*upstream.Ack, error) {
	return &upstream.Ack{Success: true}, nil
}

func (stubAccounts) Profile(ctx context.Context, token string) (*upstream.Profile, error) {
	return &upstream.Profile{ID: "u1"}, nil
}

func (stubAccounts) UpdateProfile(ctx context.Context, token string, updates map[string]any) (*upstream.Profile, error) {
	return &upstream.Profile{ID: "u1"}, nil
}

func (stubAccounts) Addresses(ctx context.Context, token string) ([]upstream.Address, error) {
	return []upstream.Address{}, nil
}

func (stubAccounts) CreateAddress(ctx context.Context, token string, input upstream.AddressInput) (*upstream.Address, error) {
	return &upstream.Address{ID: "a1"}, nil
}

func (stubAccounts) UpdateAddress(ctx context.Context, token, addressID string, input upstream.AddressInput) (*upstream.Address, error) {
	return &upstream.Address{ID: addressID}, nil
}

func (stubAccounts) DeleteAddress(ctx context.Context, token, addressID string) error { return nil }

func (stubAccounts) SetDefaultAddress(ctx context.Context, token, addressID string) error {
	return nil
}

func (stubAccounts) CheckoutPrefill(ctx context.Context, token string) (*accounts.Prefill, error) {
	return &accounts.Prefill{FirstName: "Asha"}, nil
}

type stubContent struct{}

func (stubContent) Home(ctx context.Context) (*content.Home, error) {
	return &content.Home{}, nil
}

func (stubContent) Settings(ctx context.Context) (*upstream.Settings, error) {
	return &upstream.Settings{}, nil
}

func (stubContent) Pages(ctx context.Context) ([]upstream.CMSPage, error) {
	return []upstream.CMSPage{}, nil
}

func (stubContent) Page(ctx context.Context, slug string) (*upstream.CMSPage, error) {
	return &upstream.CMSPage{Slug: slug}, nil
}

func (stubContent) Promos(ctx context.Context) ([]upstream.Promo, error) {
	return []upstream.Promo{{ID: "promo1", Title: "Summer Sale"}}, nil
}

func (stubContent) Blogs(ctx context.Context) ([]upstream.Blog, error) {
	return []upstream.Blog{}, nil
}

func (stubContent) Blog(ctx context.Context, blogID string) (*upstream.Blog, error) {
	return &upstream.Blog{ID: blogID}, nil
}

func (stubContent) CommentOnBlog(ctx context.Context, token, blogID, text string) error {
	return nil
}

func (stubContent) Trending(ctx context.Context) ([]upstream.Product, error) {
	return []upstream.Product{}, nil
}

func (stubContent) AddToTrending(ctx context.Context, token, productID string) error { return nil }

func (stubContent) RemoveFromTrending(ctx context.Context, token, productID string) error {
	return nil
}

func newTestRouter() http.Handler {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.CORS.AllowedOrigins = []string{"*"}
	return NewRouter(
		cfg,
		nil,
		stubPinger{},
		stubPinger{},
		stubCatalog{},
		stubCart{},
		stubCheckout{},
		stubOrders{},
		stubWishlist{},
		stubAccounts{},
		stubContent{},
	)
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Storefront-Env") != "test" {
		t.Fatalf("expected env header, got %q", rec.Header().Get("X-Storefront-Env"))
	}
}

func TestProductsArePublic(t *testing.T) {
	router := newTestRouter()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data []upstream.Product `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(envelope.Data) != 2 || envelope.Data[0].ID != "p1" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestProductListHonorsLimit(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products?limit=1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data []upstream.Product `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(envelope.Data) != 1 {
		t.Fatalf("expected one product, got %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products?limit=abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric limit, got %d", rec.Code)
	}
}

func TestPromosArePublic(t *testing.T) {
	router := newTestRouter()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/promos", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data []upstream.Promo `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Title != "Summer Sale" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestCartRequiresBearerToken(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil)
	req.Header.Set("Authorization", "Bearer shopper-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRequestIDHeaderIsSet(t *testing.T) {
	router := newTestRouter()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected generated request id header")
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := newTestRouter()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics, got %d", rec.Code)
	}
}
