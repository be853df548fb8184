package config

import (
	"os"
	"time"
)

type Config struct {
	Addr   string
	DBPath string

	// CacheBackend selects the gateway implementation: "redis", "memory"
	// or "none". A Redis that cannot be reached at startup degrades to
	// "none" rather than refusing to serve.
	CacheBackend string
	// CacheTTL of 0 stores entries without expiry, leaving eviction to the
	// store's own policy.
	CacheTTL time.Duration

	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string

	HiAnimeURL    string
	ToonStreamURL string
	ConsumetURL   string
	AniwatchURL   string
}

func Default() Config {
	return Config{
		Addr:   envOr("ANIMAX_ADDR", "127.0.0.1:3000"),
		DBPath: envOr("ANIMAX_DB_PATH", "animemax.db"),

		CacheBackend: envOr("ANIMAX_CACHE_BACKEND", "redis"),
		CacheTTL:     durationOr("ANIMAX_CACHE_TTL", 0),

		RedisHost:     envOr("REDIS_HOST", "127.0.0.1"),
		RedisPort:     envOr("REDIS_PORT", "6379"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		HiAnimeURL:    envOr("HIANIME_API_URL", "http://127.0.0.1:4000"),
		ToonStreamURL: envOr("TOONSTREAM_API_URL", "http://127.0.0.1:4001"),
		ConsumetURL:   envOr("CONSUMET_API_URL", "http://127.0.0.1:4002"),
		AniwatchURL:   envOr("ANIWATCH_API_URL", "http://127.0.0.1:4003"),
	}
}

func (c Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
