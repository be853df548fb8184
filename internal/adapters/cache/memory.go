package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/animemax/animemax-server/internal/ports"
)

// Memory is the in-process gateway used in development, where requests
// should still be deduplicated but no Redis is running.
type Memory struct {
	c *gocache.Cache
}

func NewMemory(ttl time.Duration) *Memory {
	exp := ttl
	if exp <= 0 {
		exp = gocache.NoExpiration
	}
	return &Memory{c: gocache.New(exp, 10*time.Minute)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	if v, found := m.c.Get(key); found {
		if b, ok := v.([]byte); ok {
			return b, nil
		}
	}
	return nil, ports.ErrCacheMiss
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.c.Set(key, value, gocache.DefaultExpiration)
	return nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() error { return nil }
