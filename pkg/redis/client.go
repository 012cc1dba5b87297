package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atelierline/storefront-gateway/pkg/config"
	"github.com/redis/go-redis/v9"
)

const (
	keyNamespace   = "sfg"
	quantityPrefix = "cart_qty"
	catalogPrefix  = "catalog"
)

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	HSet(context.Context, string, ...any) *redis.IntCmd
	HGet(context.Context, string, string) *redis.StringCmd
	HGetAll(context.Context, string) *redis.MapStringStringCmd
	HDel(context.Context, string, ...string) *redis.IntCmd
	Expire(context.Context, string, time.Duration) *redis.BoolCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// Client wraps the redis connection helpers needed by the gateway's caches.
type Client struct {
	store cmdable
	raw   *redis.Client
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(context.Context) error
}

// New bootstraps a Redis client with pooling/timeouts and verifies connectivity.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Client{store: raw, raw: raw}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.DB == 0 {
		opts.DB = cfg.DB
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

// QuantityKey returns the per-user hash holding cart quantity overrides.
func (c *Client) QuantityKey(userID string) string {
	return c.buildKey(quantityPrefix, userID)
}

// CatalogKey returns the key holding the cached product catalog snapshot.
func (c *Client) CatalogKey() string {
	return c.buildKey(catalogPrefix, "all")
}

// SetQuantity stores a quantity override for one product and refreshes the
// hash TTL.
func (c *Client) SetQuantity(ctx context.Context, userID, productID string, qty int, ttl time.Duration) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	key := c.QuantityKey(userID)
	if err := c.store.HSet(ctx, key, productID, qty).Err(); err != nil {
		return err
	}
	if ttl > 0 {
		if err := c.store.Expire(ctx, key, ttl).Err(); err != nil {
			return err
		}
	}
	return nil
}

// GetQuantities returns every cached quantity override for the user. Fields
// that fail to parse are skipped rather than failing the whole read.
func (c *Client) GetQuantities(ctx context.Context, userID string) (map[string]int, error) {
	if c.store == nil {
		return nil, errors.New("redis client not initialized")
	}
	raw, err := c.store.HGetAll(ctx, c.QuantityKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	quantities := make(map[string]int, len(raw))
	for productID, value := range raw {
		qty, err := strconv.Atoi(value)
		if err != nil || qty < 1 {
			continue
		}
		quantities[productID] = qty
	}
	return quantities, nil
}

// DeleteQuantities evicts the cached overrides for the given products.
func (c *Client) DeleteQuantities(ctx context.Context, userID string, productIDs ...string) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	if len(productIDs) == 0 {
		return nil
	}
	return c.store.HDel(ctx, c.QuantityKey(userID), productIDs...).Err()
}

// Set stores a string value with an optional TTL.
func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Set(ctx, key, value, ttl).Err()
}

// Get returns a string value stored at key.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	if c.store == nil {
		return "", errors.New("redis client not initialized")
	}
	return c.store.Get(ctx, key).Result()
}

// Del removes the provided keys.
func (c *Client) Del(ctx context.Context, keys ...string) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Del(ctx, keys...).Err()
}

// Ping verifies the connection.
func (c *Client) Ping(ctx context.Context) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Ping(ctx).Err()
}

// Close shuts down the underlying client if available.
func (c *Client) Close() error {
	if c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

func (c *Client) buildKey(parts ...string) string {
	if len(parts) == 0 {
		return keyNamespace
	}
	clean := []string{keyNamespace}
	for _, part := range parts {
		if part == "" {
			continue
		}
		clean = append(clean, strings.TrimSpace(part))
	}
	return strings.Join(clean, ":")
}
