package port

import (
	"context"
	"errors"
	"time"
)

// ErrMiss signals an absent key, distinct from a transport failure.
var ErrMiss = errors.New("cache: miss")

// Cache is the key-value store behind advisory state, currently the
// last-seen timestamps written on disconnect and read back for peer status.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored value, or ErrMiss when the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key for the given TTL. A non-positive TTL
	// means no expiration.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Close releases the underlying connection.
	Close() error
}
