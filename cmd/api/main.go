package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/atelierline/storefront-gateway/api/routes"
	"github.com/atelierline/storefront-gateway/internal/accounts"
	"github.com/atelierline/storefront-gateway/internal/cart"
	"github.com/atelierline/storefront-gateway/internal/catalog"
	"github.com/atelierline/storefront-gateway/internal/checkout"
	"github.com/atelierline/storefront-gateway/internal/content"
	"github.com/atelierline/storefront-gateway/internal/orders"
	"github.com/atelierline/storefront-gateway/internal/wishlist"
	"github.com/atelierline/storefront-gateway/pkg/config"
	"github.com/atelierline/storefront-gateway/pkg/logger"
	"github.com/atelierline/storefront-gateway/pkg/metrics"
	"github.com/atelierline/storefront-gateway/pkg/redis"
	"github.com/atelierline/storefront-gateway/pkg/upstream"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront-gateway"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront-gateway",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	upstreamMetrics := metrics.NewUpstreamMetrics(prometheus.DefaultRegisterer)
	backend, err := upstream.NewClient(
		cfg.Upstream.BaseURL,
		upstream.WithHTTPClient(&http.Client{Timeout: cfg.Upstream.Timeout}),
		upstream.WithMetrics(upstreamMetrics),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to build commerce backend client", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(backend, redisClient, cfg.Cache.CatalogTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(backend, redisClient, cfg.Cache.QuantityTTL, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}
	checkoutService, err := checkout.NewService(backend, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}
	ordersService, err := orders.NewService(backend)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}
	wishlistService, err := wishlist.NewService(backend)
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}
	accountsService, err := accounts.NewService(backend)
	if err != nil {
		logg.Error(context.Background(), "failed to create accounts service", err)
		os.Exit(1)
	}
	contentService, err := content.NewService(backend, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create content service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"upstream": cfg.Upstream.BaseURL,
	})
	logg.Info(ctx, "starting storefront gateway")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			redisClient,
			backend,
			catalogService,
			cartService,
			checkoutService,
			ordersService,
			wishlistService,
			accountsService,
			contentService,
		),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "gateway stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		closeErr := multierr.Combine(
			server.Shutdown(shutdownCtx),
			redisClient.Close(),
		)
		if closeErr != nil {
			logg.Error(ctx, "error during shutdown", closeErr)
			os.Exit(1)
		}
		logg.Info(ctx, "shutdown complete")
	}
}
