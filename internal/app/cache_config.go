package app

import (
	"strings"
	"time"

	"github.com/vlockster/vlockster/internal/cache"
)

// RedisClientConfig converts the application cache configuration into the cache package representation.
func (c CacheConfig) RedisClientConfig() cache.RedisConfig {
	return cache.RedisConfig{
		Address:  strings.TrimSpace(c.Redis.Address),
		Username: strings.TrimSpace(c.Redis.Username),
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
		TLS:      c.Redis.TLS,
		Timeout:  c.Redis.Timeout,
	}
}

// EffectiveTTL returns the configured entry TTL, falling back to the package default.
func (c CacheConfig) EffectiveTTL() time.Duration {
	if c.TTL > 0 {
		return c.TTL
	}
	return cache.DefaultTTL
}
