package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vlockster/vlockster/internal/cache"
)

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join("testdata")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Server.LogLevel)

	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "db.example.com", cfg.Database.Postgres.Host)
	require.Equal(t, 5433, cfg.Database.Postgres.Port)

	require.Equal(t, "redis", cfg.Cache.Backend)
	require.Equal(t, 90*time.Second, cfg.Cache.TTL)
	require.Equal(t, "@every 1m", cfg.Cache.SweepSchedule)
	require.True(t, cfg.Cache.Redis.Enabled)
	require.Equal(t, "cache.example.com:6380", cfg.Cache.Redis.Address)
	require.Equal(t, 3, cfg.Cache.Redis.DB)
	require.True(t, cfg.Cache.Redis.TLS)
	require.Equal(t, 2*time.Second, cfg.Cache.Redis.Timeout)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 8000, cfg.Server.Port)
	require.Equal(t, "info", cfg.Server.LogLevel)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "memory", cfg.Cache.Backend)
	require.Equal(t, cache.DefaultTTL, cfg.Cache.TTL)
}

func TestStoreConfigSelectsDriverSection(t *testing.T) {
	dbCfg := DatabaseConfig{
		Driver: "Postgres",
		Postgres: DBAuthConfig{
			Host:     "pg.internal",
			Port:     5432,
			Database: "vlockster",
			Username: "app",
			Password: "pw",
		},
		MySQL: DBAuthConfig{Host: "should-not-be-used"},
	}

	store := dbCfg.StoreConfig()
	require.Equal(t, "postgres", store.Driver)
	require.Equal(t, "pg.internal", store.Host)
	require.Equal(t, "app", store.User)
	require.Equal(t, "vlockster", store.Name)
}

func TestRedisClientConfigTrimsAddress(t *testing.T) {
	cacheCfg := CacheConfig{
		Redis: RedisCacheConfig{Address: "  host:6379  ", Timeout: time.Second},
	}

	client := cacheCfg.RedisClientConfig()
	require.Equal(t, "host:6379", client.Address)
	require.Equal(t, time.Second, client.Timeout)
}

func TestEffectiveTTLFallsBack(t *testing.T) {
	require.Equal(t, cache.DefaultTTL, CacheConfig{}.EffectiveTTL())
	require.Equal(t, time.Minute, CacheConfig{TTL: time.Minute}.EffectiveTTL())
}
