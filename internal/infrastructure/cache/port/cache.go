package port

import (
	"context"
	"errors"
	"time"
)

// ErrMiss signals that a key is not present in the cache.
var ErrMiss = errors.New("cache: miss")

// Cache is the minimal key-value contract used by the application.
// Implementations must be concurrency-safe and context-aware. Values are plain
// strings; callers own serialization.
type Cache interface {
	// Get fetches the value for key, returning ErrMiss when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}
