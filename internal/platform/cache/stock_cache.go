package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const stockQtyKeyPrefix = "stock:qty:"

// StockCache keeps per-product stock quantities in Redis so list-heavy
// storefront reads skip the database. All methods degrade gracefully when
// Redis is unavailable: a nil cache serves misses and swallows writes.
type StockCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStockCache connects to Redis using a redis:// URL. An empty URL returns
// a nil cache, which is valid to use.
func NewStockCache(redisURL string, ttl time.Duration) (*StockCache, error) {
	if redisURL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &StockCache{client: client, ttl: ttl}, nil
}

// GetStockQty returns the cached quantity for a product and whether it was
// present.
func (c *StockCache) GetStockQty(ctx context.Context, productID string) (int64, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	qty, err := c.client.Get(ctx, stockQtyKeyPrefix+productID).Int64()
	if err != nil {
		return 0, false
	}
	return qty, true
}

// SetStockQty stores the quantity for a product with the configured TTL.
func (c *StockCache) SetStockQty(ctx context.Context, productID string, qty int64) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Set(ctx, stockQtyKeyPrefix+productID, qty, c.ttl)
}

// Invalidate drops the cached quantities for the given products. Called after
// any workflow that moves stock.
func (c *StockCache) Invalidate(ctx context.Context, productIDs ...string) {
	if c == nil || c.client == nil || len(productIDs) == 0 {
		return
	}
	keys := make([]string, len(productIDs))
	for i, id := range productIDs {
		keys[i] = stockQtyKeyPrefix + id
	}
	c.client.Del(ctx, keys...)
}

// IsHealthy reports whether the Redis connection is responsive.
func (c *StockCache) IsHealthy() bool {
	if c == nil || c.client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return c.client.Ping(ctx).Err() == nil
}

// Close releases the underlying connection.
func (c *StockCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
