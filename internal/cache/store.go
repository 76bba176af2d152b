package cache

import (
	"context"
	"time"
)

// DefaultTTL bounds how long a cached entity read stays valid.
const DefaultTTL = 5 * time.Minute

// Store represents a shared cache interface used across the application.
// Entries expire lazily: an expired key answers as absent on Get and is only
// physically removed by Delete, Clear, or a maintenance sweep.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
}

// Sweeper is implemented by stores that can physically drop expired entries.
// The maintenance cron type-asserts for it.
type Sweeper interface {
	Sweep(ctx context.Context) (int64, error)
}
