package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vlockster/vlockster/internal/cache"
	"github.com/vlockster/vlockster/internal/models"
	"github.com/vlockster/vlockster/pkg/logger"
	"github.com/vlockster/vlockster/pkg/metrics"
)

const profileCachePrefix = "profile:id:"

// ProfileService reads profile records through the cache store.
//
// Every exported method absorbs failures at its boundary: callers receive a
// nil pointer or an empty slice plus a correlated error log entry, never an
// error value. Not-found is not a failure and is never cached.
type ProfileService struct {
	db    *gorm.DB
	store cache.Store
	ttl   time.Duration
	log   *zap.Logger
}

// NewProfileService constructs a ProfileService with the supplied cache store.
// A non-positive TTL falls back to the package default.
func NewProfileService(db *gorm.DB, store cache.Store, ttl time.Duration) (*ProfileService, error) {
	if db == nil {
		return nil, errors.New("profile service: db is required")
	}
	if store == nil {
		return nil, errors.New("profile service: cache store is required")
	}
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &ProfileService{
		db:    db,
		store: store,
		ttl:   ttl,
		log:   logger.WithModule("profiles"),
	}, nil
}

func profileCacheKey(id string) string {
	return profileCachePrefix + id
}

// GetByID returns the profile with the given id, consulting the cache first
// when useCache is set. A missing record and a store failure both answer nil;
// only the latter produces an error-level log entry.
func (s *ProfileService) GetByID(ctx context.Context, id string, useCache bool) *models.Profile {
	ctx = ensureContext(ctx)

	id = strings.TrimSpace(id)
	if id == "" {
		s.log.Warn("profile lookup with empty id", zap.String("endpoint", "getProfileById"))
		return nil
	}

	if useCache {
		if profile := s.cachedProfile(ctx, id); profile != nil {
			s.log.Debug("profile cache hit", zap.String("profile_id", id))
			metrics.CacheHits.WithLabelValues("profile").Inc()
			return profile
		}
		metrics.CacheMisses.WithLabelValues("profile").Inc()
	}

	var profile models.Profile
	err := s.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Debug("profile not found", zap.String("profile_id", id))
		return nil
	}
	if err != nil {
		metrics.QueryFailures.WithLabelValues("getProfileById").Inc()
		logger.ErrorID(s.log, "profile lookup failed", err,
			zap.String("endpoint", "getProfileById"),
			zap.String("profile_id", id),
		)
		return nil
	}

	if useCache {
		s.cacheProfile(ctx, &profile)
	}
	return &profile
}

// GetByIDs returns the profiles for the supplied id list, serving what it can
// from the cache and fetching the remainder in a single batched query. Result
// order across the cached and fetched groups is unspecified. An empty input
// list is valid and answered without touching the store.
func (s *ProfileService) GetByIDs(ctx context.Context, ids []string) []models.Profile {
	ctx = ensureContext(ctx)

	ids = normaliseIDs(ids)
	if len(ids) == 0 {
		s.log.Warn("profile batch lookup with empty id list", zap.String("endpoint", "getProfilesByIds"))
		return []models.Profile{}
	}

	results := make([]models.Profile, 0, len(ids))
	var uncached []string
	for _, id := range ids {
		if profile := s.cachedProfile(ctx, id); profile != nil {
			results = append(results, *profile)
			continue
		}
		uncached = append(uncached, id)
	}

	metrics.CacheHits.WithLabelValues("profile").Add(float64(len(results)))
	metrics.CacheMisses.WithLabelValues("profile").Add(float64(len(uncached)))

	if len(uncached) == 0 {
		s.log.Debug("profile batch served from cache", zap.Int("count", len(results)))
		return results
	}

	var fetched []models.Profile
	err := s.db.WithContext(ctx).Where("id IN ?", uncached).Find(&fetched).Error
	if err != nil {
		metrics.QueryFailures.WithLabelValues("getProfilesByIds").Inc()
		logger.ErrorID(s.log, "profile batch lookup failed", err,
			zap.String("endpoint", "getProfilesByIds"),
			zap.Strings("profile_ids", uncached),
		)
		// Cached entries are still valid; serve what we have.
		return results
	}

	for i := range fetched {
		s.cacheProfile(ctx, &fetched[i])
	}

	return append(results, fetched...)
}

// GetBySlug resolves a public slug to its profile. The slug itself is not
// cached; resolution costs one lookup and then reuses the id-keyed cache path.
func (s *ProfileService) GetBySlug(ctx context.Context, slug string) *models.Profile {
	ctx = ensureContext(ctx)

	slug = strings.TrimSpace(slug)
	if slug == "" {
		s.log.Warn("profile lookup with empty slug", zap.String("endpoint", "getProfileBySlug"))
		return nil
	}

	var row struct{ ID string }
	err := s.db.WithContext(ctx).Model(&models.Profile{}).
		Select("id").Where("slug = ?", slug).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Debug("profile slug not found", zap.String("slug", slug))
		return nil
	}
	if err != nil {
		metrics.QueryFailures.WithLabelValues("getProfileBySlug").Inc()
		logger.ErrorID(s.log, "profile slug resolution failed", err,
			zap.String("endpoint", "getProfileBySlug"),
			zap.String("slug", slug),
		)
		return nil
	}

	return s.GetByID(ctx, row.ID, true)
}

// Invalidate drops a single profile from the cache, for use when a profile is
// known to have changed out of band.
func (s *ProfileService) Invalidate(ctx context.Context, id string) {
	ctx = ensureContext(ctx)

	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	if err := s.store.Delete(ctx, profileCacheKey(id)); err != nil {
		s.log.Warn("profile cache invalidation failed", zap.String("profile_id", id), zap.Error(err))
	}
}

// InvalidateAll clears the whole cache store.
func (s *ProfileService) InvalidateAll(ctx context.Context) {
	ctx = ensureContext(ctx)

	if err := s.store.Clear(ctx); err != nil {
		s.log.Warn("cache clear failed", zap.Error(err))
	}
}

// cachedProfile returns a fresh cache entry for id, or nil on miss, expiry,
// store error, or an undecodable payload.
func (s *ProfileService) cachedProfile(ctx context.Context, id string) *models.Profile {
	value, ok, err := s.store.Get(ctx, profileCacheKey(id))
	if err != nil {
		s.log.Warn("profile cache read failed", zap.String("profile_id", id), zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	var profile models.Profile
	if err := json.Unmarshal(value, &profile); err != nil {
		s.log.Warn("profile cache entry undecodable", zap.String("profile_id", id), zap.Error(err))
		return nil
	}
	return &profile
}

func (s *ProfileService) cacheProfile(ctx context.Context, profile *models.Profile) {
	payload, err := json.Marshal(profile)
	if err != nil {
		s.log.Warn("profile cache encode failed", zap.String("profile_id", profile.ID), zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, profileCacheKey(profile.ID), payload, s.ttl); err != nil {
		s.log.Warn("profile cache write failed", zap.String("profile_id", profile.ID), zap.Error(err))
	}
}
