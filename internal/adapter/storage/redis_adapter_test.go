package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/rl1809/shop-api/internal/core/domain"
	"github.com/rl1809/shop-api/internal/port"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedisAdapter_SetAndGetProduct(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	product := &domain.Product{
		ID:        9001,
		Name:      "Keyboard",
		Price:     decimal.RequireFromString("250.50"),
		Stock:     10,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}

	client.Del(ctx, "product:9001")
	if err := adapter.SetProduct(ctx, product); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := adapter.GetProduct(ctx, 9001)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Keyboard" {
		t.Errorf("expected Keyboard, got %s", got.Name)
	}
	if !got.Price.Equal(product.Price) {
		t.Errorf("expected price %s, got %s", product.Price, got.Price)
	}
	if got.Stock != 10 {
		t.Errorf("expected stock 10, got %d", got.Stock)
	}
}

func TestRedisAdapter_GetProduct_Miss(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, "product:9002")
	if _, err := adapter.GetProduct(ctx, 9002); err != port.ErrCacheMiss {
		t.Errorf("expected cache miss, got %v", err)
	}
}

func TestRedisAdapter_DeleteProduct(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	product := &domain.Product{ID: 9003, Name: "Mouse", Price: decimal.RequireFromString("49.99")}
	if err := adapter.SetProduct(ctx, product); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := adapter.DeleteProduct(ctx, 9003); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := adapter.GetProduct(ctx, 9003); err != port.ErrCacheMiss {
		t.Errorf("expected cache miss after delete, got %v", err)
	}
}

func TestRedisAdapter_EntriesExpire(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	product := &domain.Product{ID: 9004, Name: "Monitor", Price: decimal.RequireFromString("399.00")}
	if err := adapter.SetProduct(ctx, product); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ttl, err := client.TTL(ctx, "product:9004").Result()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ttl <= 0 {
		t.Errorf("expected a positive TTL, got %v", ttl)
	}
}
