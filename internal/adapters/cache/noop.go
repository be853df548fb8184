package cache

import (
	"context"

	"github.com/animemax/animemax-server/internal/ports"
)

// Noop always misses on read and succeeds on write, so the edge runs
// uncached without any availability branching upstream.
type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) Get(context.Context, string) ([]byte, error) { return nil, ports.ErrCacheMiss }

func (Noop) Set(context.Context, string, []byte) error { return nil }

func (Noop) Ping(context.Context) error { return nil }

func (Noop) Close() error { return nil }
