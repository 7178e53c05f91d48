// Package cache provides artifact caching for rendered drawings.
//
// Rendering a scene is cheap but not free (projection, perturbation, SVG
// assembly), and the preview server re-renders on every request. The cache
// stores finished artifacts keyed by a hash of the scene source and render
// options, with backends for different deployments:
//
//   - FileCache: XDG cache directory, the CLI default
//   - RedisCache: shared cache for multi-instance preview servers
//   - MongoCache: document store for deployments already running MongoDB
//   - NullCache: caching disabled
package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for caching operations.
var (
	// ErrNotFound is returned when a requested item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCacheMiss is returned when an item is not found in cache.
	ErrCacheMiss = errors.New("cache miss")
)

// Cache is the interface for artifact cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether it was a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL stores forever
	// (or for the backend's natural lifetime).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
