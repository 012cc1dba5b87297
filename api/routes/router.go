package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/atelierline/storefront-gateway/api/controllers"
	"github.com/atelierline/storefront-gateway/api/middleware"
	"github.com/atelierline/storefront-gateway/internal/accounts"
	"github.com/atelierline/storefront-gateway/internal/cart"
	"github.com/atelierline/storefront-gateway/internal/catalog"
	checkoutsvc "github.com/atelierline/storefront-gateway/internal/checkout"
	"github.com/atelierline/storefront-gateway/internal/content"
	"github.com/atelierline/storefront-gateway/internal/orders"
	"github.com/atelierline/storefront-gateway/internal/wishlist"
	"github.com/atelierline/storefront-gateway/pkg/config"
	"github.com/atelierline/storefront-gateway/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	cache controllers.Pinger,
	backend controllers.Pinger,
	catalogService catalog.Service,
	cartService cart.Service,
	checkoutService checkoutsvc.Service,
	ordersService orders.Service,
	wishlistService wishlist.Service,
	accountsService accounts.Service,
	contentService content.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, cache, backend))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/signup", controllers.AuthSignup(accountsService, logg))
		r.Post("/login", controllers.AuthLogin(accountsService, logg))
		r.Post("/verify", controllers.AuthVerifyOTP(accountsService, logg))
		r.Post("/resend-otp", controllers.AuthResendOTP(accountsService, logg))
		r.Post("/forgot-password", controllers.AuthForgotPassword(accountsService, logg))
		r.Post("/reset-password", controllers.AuthResetPassword(accountsService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public storefront surface.
		r.Get("/home", controllers.Home(contentService, logg))
		r.Get("/settings", controllers.SiteSettings(contentService, logg))
		r.Get("/pages", controllers.PageList(contentService, logg))
		r.Get("/pages/{slug}", controllers.PageBySlug(contentService, logg))
		r.Get("/promos", controllers.PromoList(contentService, logg))
		r.Get("/products", controllers.ProductList(catalogService, logg))
		r.Get("/products/search", controllers.ProductSearch(catalogService, logg))
		r.Get("/products/{productId}", controllers.ProductDetail(catalogService, logg))
		r.Get("/trending", controllers.TrendingList(contentService, logg))
		r.Get("/blogs", controllers.BlogList(contentService, logg))
		r.Get("/blogs/{blogId}", controllers.BlogDetail(contentService, logg))

		// Everything below requires the shopper's backend token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(cartService, logg))
				r.Post("/items", controllers.CartAdd(cartService, logg))
				r.Delete("/items/{productId}", controllers.CartRemove(cartService, logg))
				r.Put("/items/{productId}", controllers.CartSetQuantity(cartService, logg))
				r.Post("/items/{productId}/adjust", controllers.CartAdjust(cartService, logg))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/prefill", controllers.CheckoutPrefill(accountsService, logg))
				r.Post("/quote", controllers.CheckoutQuote(checkoutService, logg))
				r.Post("/order", controllers.CheckoutPlaceOrder(checkoutService, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrderHistory(ordersService, logg))
				r.Get("/{orderId}", controllers.OrderDetail(ordersService, logg))
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.WishlistFetch(wishlistService, logg))
				r.Post("/", controllers.WishlistAdd(wishlistService, logg))
				r.Delete("/{productId}", controllers.WishlistRemove(wishlistService, logg))
				r.Get("/{productId}/saved", controllers.WishlistContains(wishlistService, logg))
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", controllers.Profile(accountsService, logg))
				r.Put("/", controllers.ProfileUpdate(accountsService, logg))
			})

			r.Route("/addresses", func(r chi.Router) {
				r.Get("/", controllers.AddressList(accountsService, logg))
				r.Post("/", controllers.AddressCreate(accountsService, logg))
				r.Patch("/{addressId}", controllers.AddressUpdate(accountsService, logg))
				r.Delete("/{addressId}", controllers.AddressDelete(accountsService, logg))
				r.Patch("/{addressId}/default", controllers.AddressSetDefault(accountsService, logg))
			})

			r.Post("/blogs/{blogId}/comments", controllers.BlogComment(contentService, logg))
		})
	})

	r.Route("/api/admin/v1/trending", func(r chi.Router) {
		r.Use(middleware.Auth(logg))
		r.Post("/", controllers.TrendingAdd(contentService, logg))
		r.Delete("/{productId}", controllers.TrendingRemove(contentService, logg))
	})

	return r
}
