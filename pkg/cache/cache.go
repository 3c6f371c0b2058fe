package cache

import (
	"context"
	"time"
)

// Store is the cache abstraction used for session state and search-result
// caching. TTL is enforced by the backend; an expired key behaves like a
// missing key on the next read.
type Store interface {
	// Get unmarshals the cached value for key into dest.
	// Returns false when the key is absent or expired.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key for ttl. A zero ttl uses the backend default.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
}
