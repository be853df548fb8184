package cache

import (
	"context"
	"crypto/tls"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/animemax/animemax-server/internal/ports"
)

type RedisOptions struct {
	Addr     string
	Username string
	Password string
	// TTL of 0 stores entries without expiry.
	TTL time.Duration
}

// Redis is the production cache gateway.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(opts RedisOptions) *Redis {
	ro := &redis.Options{
		Addr:     opts.Addr,
		Username: opts.Username,
		Password: opts.Password,
	}
	// Upstash-hosted instances only accept TLS connections.
	if strings.Contains(opts.Addr, "upstash.io") {
		ro.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return &Redis{client: redis.NewClient(ro), ttl: opts.TTL}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrCacheMiss
		}
		return nil, err
	}
	return b, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, key, value, r.ttl).Err()
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
