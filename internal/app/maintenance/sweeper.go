package maintenance

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/vlockster/vlockster/internal/cache"
	"github.com/vlockster/vlockster/pkg/logger"
)

const defaultSweepSpec = "@every 5m"

// Sweeper periodically drops expired cache entries from stores that support
// physical removal. Stores without a Sweep method rely on lazy expiry alone
// and the sweeper becomes a no-op for them.
type Sweeper struct {
	store    cache.Store
	cron     *cron.Cron
	log      *zap.Logger
	schedule string
}

// Option customises the Sweeper.
type Option func(*Sweeper)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(s *Sweeper) {
		if c != nil {
			s.cron = c
		}
	}
}

// WithSchedule overrides the cron specification for cache sweeps.
func WithSchedule(spec string) Option {
	return func(s *Sweeper) {
		if spec != "" {
			s.schedule = spec
		}
	}
}

// NewSweeper constructs a Sweeper with sensible defaults.
func NewSweeper(store cache.Store, opts ...Option) *Sweeper {
	s := &Sweeper{
		store:    store,
		schedule: defaultSweepSpec,
		log:      logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.cron == nil {
		s.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return s
}

// Start registers the sweep job and launches the scheduler when the store can sweep.
func (s *Sweeper) Start() error {
	if _, ok := s.store.(cache.Sweeper); !ok {
		s.log.Debug("cache store does not support sweeping, scheduler not started")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.RunOnce(context.Background()); err != nil {
			s.log.Warn("cache sweep failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop halts the underlying scheduler, waiting for any running job to complete.
func (s *Sweeper) Stop() context.Context {
	if s.cron == nil {
		return context.Background()
	}
	return s.cron.Stop()
}

// RunOnce executes a single sweep. Primarily used in tests and during graceful shutdown.
func (s *Sweeper) RunOnce(ctx context.Context) error {
	sweeper, ok := s.store.(cache.Sweeper)
	if !ok {
		return nil
	}

	start := time.Now()
	removed, err := sweeper.Sweep(ctx)
	if err != nil {
		return err
	}

	s.log.Debug("cache sweep completed",
		zap.Int64("removed", removed),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}
