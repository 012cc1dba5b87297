package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestQuantityLifecycle(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	if err := client.SetQuantity(ctx, "user-1", "prod-a", 3, time.Hour); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := client.SetQuantity(ctx, "user-1", "prod-b", 1, time.Hour); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if len(mock.expireCalls) != 2 {
		t.Fatalf("expected ttl refresh per write, got %d", len(mock.expireCalls))
	}

	quantities, err := client.GetQuantities(ctx, "user-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if quantities["prod-a"] != 3 || quantities["prod-b"] != 1 {
		t.Fatalf("unexpected quantities %v", quantities)
	}

	if err := client.DeleteQuantities(ctx, "user-1", "prod-a"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	quantities, err = client.GetQuantities(ctx, "user-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if _, ok := quantities["prod-a"]; ok {
		t.Fatal("expected prod-a override evicted")
	}
}

func TestGetQuantitiesSkipsUnparsableFields(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	mock.hashes[client.QuantityKey("user-1")] = map[string]string{
		"prod-a": "2",
		"prod-b": "not-a-number",
		"prod-c": "0",
	}

	quantities, err := client.GetQuantities(ctx, "user-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(quantities) != 1 || quantities["prod-a"] != 2 {
		t.Fatalf("expected only prod-a to survive, got %v", quantities)
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.QuantityKey("user-9"); got != "sfg:cart_qty:user-9" {
		t.Fatalf("unexpected quantity key %s", got)
	}
	if got := client.CatalogKey(); got != "sfg:catalog:all" {
		t.Fatalf("unexpected catalog key %s", got)
	}
}

type mockCmdable struct {
	data        map[string]string
	hashes      map[string]map[string]string
	expireCalls []expireCall
}

type expireCall struct {
	key string
	ttl time.Duration
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{
		data:   make(map[string]string),
		hashes: make(map[string]map[string]string),
	}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) HSet(ctx context.Context, key string, values ...any) *redis.IntCmd {
	hash, ok := m.hashes[key]
	if !ok {
		hash = make(map[string]string)
		m.hashes[key] = hash
	}
	for i := 0; i+1 < len(values); i += 2 {
		hash[fmt.Sprint(values[i])] = fmt.Sprint(values[i+1])
	}
	return redis.NewIntResult(int64(len(values)/2), nil)
}

func (m *mockCmdable) HGet(ctx context.Context, key, field string) *redis.StringCmd {
	hash, ok := m.hashes[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	v, ok := hash[field]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd {
	hash := m.hashes[key]
	out := make(map[string]string, len(hash))
	for k, v := range hash {
		out[k] = v
	}
	return redis.NewMapStringStringResult(out, nil)
}

func (m *mockCmdable) HDel(ctx context.Context, key string, fields ...string) *redis.IntCmd {
	hash := m.hashes[key]
	for _, field := range fields {
		delete(hash, field)
	}
	return redis.NewIntResult(int64(len(fields)), nil)
}

func (m *mockCmdable) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	m.expireCalls = append(m.expireCalls, expireCall{key: key, ttl: expiration})
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
		delete(m.hashes, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
