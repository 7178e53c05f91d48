package cache

import (
	"context"
	"time"

	"github.com/timcondit/kintsugi/pkg/observability"
)

// ObservedCache decorates a Cache with observability hooks so cache
// hit/miss rates are visible without coupling backends to any metrics
// system.
type ObservedCache struct {
	inner   Cache
	keyType string
}

// NewObservedCache wraps a cache. keyType labels the hook events (e.g.
// "artifact").
func NewObservedCache(inner Cache, keyType string) Cache {
	return &ObservedCache{inner: inner, keyType: keyType}
}

// Get records a hit or miss event around the inner lookup.
func (c *ObservedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.inner.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, c.keyType)
		} else {
			observability.Cache().OnCacheMiss(ctx, c.keyType)
		}
	}
	return data, hit, err
}

// Set records a write event around the inner store.
func (c *ObservedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.inner.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, c.keyType, len(data))
	}
	return err
}

// Delete removes a value from the inner cache.
func (c *ObservedCache) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

// Close closes the inner cache.
func (c *ObservedCache) Close() error {
	return c.inner.Close()
}

// Ensure ObservedCache implements Cache.
var _ Cache = (*ObservedCache)(nil)
