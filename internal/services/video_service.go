package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vlockster/vlockster/internal/models"
	"github.com/vlockster/vlockster/pkg/logger"
	"github.com/vlockster/vlockster/pkg/metrics"
)

// VideoService serves popularity queries over uploaded media. Only public
// videos are eligible; members- and backers-only uploads never surface here.
type VideoService struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewVideoService constructs a VideoService.
func NewVideoService(db *gorm.DB) (*VideoService, error) {
	if db == nil {
		return nil, errors.New("video service: db is required")
	}
	return &VideoService{db: db, log: logger.WithModule("videos")}, nil
}

// Top returns up to limit public videos by view count, empty slice on failure.
func (s *VideoService) Top(ctx context.Context, limit int) []models.Video {
	ctx = ensureContext(ctx)

	videos, err := s.top(ctx, limit)
	if err != nil {
		metrics.QueryFailures.WithLabelValues("getTopVideos").Inc()
		logger.ErrorID(s.log, "top videos query failed", err,
			zap.String("endpoint", "getTopVideos"))
		return []models.Video{}
	}
	return videos
}

func (s *VideoService) top(ctx context.Context, limit int) ([]models.Video, error) {
	limit, _ = normalisePage(limit, 0)

	var videos []models.Video
	err := s.db.WithContext(ctx).
		Where("visibility = ?", models.VideoVisibilityPublic).
		Order("view_count DESC").
		Limit(limit).
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	if videos == nil {
		videos = []models.Video{}
	}
	return videos, nil
}

// categoryCounts tallies public videos per category for reporting.
func (s *VideoService) categoryCounts(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Category string
		Count    int64
	}

	err := s.db.WithContext(ctx).Model(&models.Video{}).
		Select("category, COUNT(*) AS count").
		Where("visibility = ?", models.VideoVisibilityPublic).
		Group("category").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Count
	}
	return counts, nil
}
