package port

import (
	"context"
	"errors"
	"time"
)

// Cache is the key-value contract used for read-through caching of
// slow-changing records (profiles). Implementations must be safe for
// concurrent use and honor ctx deadlines.
//
// Values are opaque strings; callers own serialization.
type Cache interface {
	// Get returns ErrMiss when key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value with ttl. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Del removes keys and returns how many existed.
	Del(ctx context.Context, keys ...string) (int64, error)

	Ping(ctx context.Context) error
	Close() error
}

// ErrMiss signals a cache miss, as opposed to a transport error.
var ErrMiss = errors.New("cache: miss")
