package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spar-shoe/storefront-api/internal/core/domain"
	"github.com/spar-shoe/storefront-api/internal/core/ports"
)

const (
	listingTTL    = 5 * time.Minute
	listingPrefix = "catalog:listing:"
)

// CatalogCache caches product listings in Redis, keyed by the filter that
// produced them. Any catalog mutation invalidates every cached listing; the
// short TTL bounds staleness if an invalidation is lost.
type CatalogCache struct {
	client *redis.Client
}

func NewCatalogCache(client *redis.Client) *CatalogCache {
	return &CatalogCache{client: client}
}

// GetListing returns the cached listing for the filter, if present.
func (c *CatalogCache) GetListing(ctx context.Context, filter ports.ProductFilter) ([]domain.Product, bool, error) {
	raw, err := c.client.Get(ctx, key(filter)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("listing cache get: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false, fmt.Errorf("listing cache decode: %w", err)
	}
	return products, true, nil
}

// SetListing stores a listing under its filter key for listingTTL.
func (c *CatalogCache) SetListing(ctx context.Context, filter ports.ProductFilter, products []domain.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("listing cache encode: %w", err)
	}
	return c.client.Set(ctx, key(filter), raw, listingTTL).Err()
}

// Invalidate drops every cached listing.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, listingPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("listing cache scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func key(filter ports.ProductFilter) string {
	return fmt.Sprintf("%s%s:%s", listingPrefix, filter.Category, filter.Search)
}
