package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vlockster/vlockster/internal/app"
	"github.com/vlockster/vlockster/internal/cache"
)

func testConfig(t *testing.T) *app.Config {
	t.Helper()
	return &app.Config{
		Server: app.ServerConfig{Port: 0, LogLevel: "debug"},
		Database: app.DatabaseConfig{
			Driver: "sqlite",
			Path:   filepath.Join(t.TempDir(), "vlockster.sqlite"),
		},
		Cache: app.CacheConfig{Backend: "memory", SweepSchedule: "@every 1m"},
	}
}

func TestBootstrapRuntime(t *testing.T) {
	cfg := testConfig(t)
	log := zap.NewNop()

	stack, err := bootstrapRuntime(cfg, log)
	require.NoError(t, err)
	defer stack.Shutdown(log)

	require.NotNil(t, stack.DB)
	require.NotNil(t, stack.Router)
	require.IsType(t, &cache.MemoryStore{}, stack.Store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	stack.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Seed data should be reachable through the API.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/projects/recent", nil)
	stack.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSelectCacheStoreFallsBackToMemory(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Backend = "redis"
	cfg.Cache.Redis.Address = "127.0.0.1:1" // nothing listens here

	store := selectCacheStore(cfg, nil, zap.NewNop())
	require.IsType(t, &cache.MemoryStore{}, store)
}

func TestSelectCacheStoreDatabaseBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Backend = "database"

	stack, err := bootstrapRuntime(cfg, zap.NewNop())
	require.NoError(t, err)
	defer stack.Shutdown(zap.NewNop())

	require.IsType(t, &cache.DatabaseStore{}, stack.Store)
}
