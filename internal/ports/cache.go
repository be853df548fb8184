package ports

import "context"

// Cache is the read-through gateway in front of the provider proxy.
// Get returns ErrCacheMiss when the key is unknown; Set failures must be
// tolerated by callers (a fresh response is still served uncached).
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
	Close() error
}
