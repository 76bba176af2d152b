package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vlockster/vlockster/internal/api"
	"github.com/vlockster/vlockster/internal/app"
	"github.com/vlockster/vlockster/internal/app/maintenance"
	"github.com/vlockster/vlockster/internal/cache"
	"github.com/vlockster/vlockster/internal/database"
	"github.com/vlockster/vlockster/pkg/logger"
)

// runtimeStack bundles long-lived components used by the HTTP server.
type runtimeStack struct {
	DB      *gorm.DB
	Store   cache.Store
	Sweeper *maintenance.Sweeper
	Router  *gin.Engine
}

// bootstrapRuntime initialises the database, cache store, maintenance jobs and router.
func bootstrapRuntime(cfg *app.Config, log *zap.Logger) (*runtimeStack, error) {
	stack := &runtimeStack{}
	var err error
	success := false

	defer func() {
		if !success {
			stack.Shutdown(log)
		}
	}()

	if debug, _ := os.LookupEnv("GIN_DEBUG"); debug != "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	stack.DB, err = initialiseDatabase(cfg)
	if err != nil {
		return nil, err
	}

	stack.Store = selectCacheStore(cfg, stack.DB, log)

	stack.Sweeper = maintenance.NewSweeper(stack.Store, maintenance.WithSchedule(cfg.Cache.SweepSchedule))
	if err := stack.Sweeper.Start(); err != nil {
		return nil, fmt.Errorf("start maintenance jobs: %w", err)
	}

	stack.Router, err = api.NewRouter(stack.DB, stack.Store, cfg.Cache.EffectiveTTL())
	if err != nil {
		return nil, fmt.Errorf("build api router: %w", err)
	}

	success = true
	return stack, nil
}

// selectCacheStore picks the configured store, falling back to memory when the
// preferred backend is unavailable.
func selectCacheStore(cfg *app.Config, db *gorm.DB, log *zap.Logger) cache.Store {
	backend := strings.ToLower(strings.TrimSpace(cfg.Cache.Backend))

	if backend == "redis" || cfg.Cache.Redis.Enabled {
		store, err := cache.NewRedisStore(cfg.Cache.RedisClientConfig())
		if err == nil {
			log.Info("redis cache connected", zap.String("addr", cfg.Cache.Redis.Address))
			return store
		}
		log.Warn("redis unavailable; falling back to in-memory cache", zap.Error(err))
		return cache.NewMemoryStore()
	}

	if backend == "database" {
		return cache.NewDatabaseStore(db)
	}

	return cache.NewMemoryStore()
}

func initialiseDatabase(cfg *app.Config) (*gorm.DB, error) {
	dbCfg := cfg.Database.StoreConfig()
	db, err := database.Open(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.AutoMigrateAndSeed(db); err != nil {
		return nil, fmt.Errorf("auto-migrate database: %w", err)
	}

	logger.WithModule("database").Info("database connected", zap.String("driver", dbCfg.Driver))
	return db, nil
}

// Shutdown stops maintenance jobs and closes connections in dependency order.
func (s *runtimeStack) Shutdown(log *zap.Logger) {
	if s == nil {
		return
	}

	if s.Sweeper != nil {
		<-s.Sweeper.Stop().Done()
	}

	if rs, ok := s.Store.(*cache.RedisStore); ok && rs != nil {
		if err := rs.Close(); err != nil {
			log.Warn("redis close failed", zap.Error(err))
		}
	}

	if s.DB != nil {
		if sqlDB, err := s.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Warn("database close failed", zap.Error(err))
			}
		}
	}
}
