package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vlockster/vlockster/internal/models"
	"github.com/vlockster/vlockster/pkg/logger"
)

// Thresholds for the deterministic delivery recommendations.
const (
	preloadViewThreshold = 1000
	lazyLoadProjectCount = 50
	splitCategoryCount   = 10
	reportTopN           = 5
)

// ProjectEngagement pairs a campaign with its derived engagement figures.
type ProjectEngagement struct {
	models.Project
	FundedPercentage float64 `json:"funded_percentage"`
	EngagementScore  float64 `json:"engagement_score"`
}

// PerformanceReport combines the most-watched videos with the most-backed
// campaigns and their engagement scores.
type PerformanceReport struct {
	TopVideos   []models.Video      `json:"top_videos"`
	TopProjects []ProjectEngagement `json:"top_projects"`
}

// Recommendations are simple threshold hints for the delivery layer.
type Recommendations struct {
	PreloadTopVideo  bool `json:"preload_top_video"`
	LazyLoadListings bool `json:"lazy_load_listings"`
	SplitByCategory  bool `json:"split_by_category"`
}

// ContentReport combines popular content with a category breakdown and
// delivery recommendations.
type ContentReport struct {
	PopularProjects   []models.Project `json:"popular_projects"`
	TopVideos         []models.Video   `json:"top_videos"`
	CategoryBreakdown map[string]int64 `json:"category_breakdown"`
	TotalProjects     int64            `json:"total_projects"`
	Recommendations   Recommendations  `json:"recommendations"`
}

// ReportService composes the query services into cross-cutting reports.
// Composition is fail-fast: if any sub-query errors the whole report is nil —
// a partial report would silently misrepresent the platform.
type ReportService struct {
	projects *ProjectService
	videos   *VideoService
	log      *zap.Logger

	now func() time.Time
}

// NewReportService constructs a ReportService over the two query services.
func NewReportService(projects *ProjectService, videos *VideoService) (*ReportService, error) {
	if projects == nil {
		return nil, errors.New("report service: project service is required")
	}
	if videos == nil {
		return nil, errors.New("report service: video service is required")
	}
	return &ReportService{
		projects: projects,
		videos:   videos,
		log:      logger.WithModule("reports"),
		now:      time.Now,
	}, nil
}

// Performance builds the performance report, or nil if any sub-query fails.
func (s *ReportService) Performance(ctx context.Context) *PerformanceReport {
	ctx = ensureContext(ctx)

	videos, err := s.videos.top(ctx, reportTopN)
	if err != nil {
		logger.ErrorID(s.log, "performance report failed", err,
			zap.String("endpoint", "getPerformanceMetrics"),
			zap.String("sub_query", "top_videos"),
		)
		return nil
	}

	projects, err := s.projects.popular(ctx, reportTopN)
	if err != nil {
		logger.ErrorID(s.log, "performance report failed", err,
			zap.String("endpoint", "getPerformanceMetrics"),
			zap.String("sub_query", "popular_projects"),
		)
		return nil
	}

	now := s.now()
	engagements := make([]ProjectEngagement, 0, len(projects))
	for _, project := range projects {
		engagements = append(engagements, ProjectEngagement{
			Project:          project,
			FundedPercentage: project.FundedPercentage(),
			EngagementScore:  project.EngagementScore(now),
		})
	}

	return &PerformanceReport{TopVideos: videos, TopProjects: engagements}
}

// Content builds the content report, or nil if any sub-query fails.
// Recommendations are deterministic threshold rules over the fetched counts.
func (s *ReportService) Content(ctx context.Context) *ContentReport {
	ctx = ensureContext(ctx)

	popular, err := s.projects.popular(ctx, reportTopN)
	if err != nil {
		logger.ErrorID(s.log, "content report failed", err,
			zap.String("endpoint", "getContentReport"),
			zap.String("sub_query", "popular_projects"),
		)
		return nil
	}

	videos, err := s.videos.top(ctx, reportTopN)
	if err != nil {
		logger.ErrorID(s.log, "content report failed", err,
			zap.String("endpoint", "getContentReport"),
			zap.String("sub_query", "top_videos"),
		)
		return nil
	}

	breakdown, err := s.videos.categoryCounts(ctx)
	if err != nil {
		logger.ErrorID(s.log, "content report failed", err,
			zap.String("endpoint", "getContentReport"),
			zap.String("sub_query", "category_breakdown"),
		)
		return nil
	}

	page, err := s.projects.listPage(ctx, 1, 0, func(q *gorm.DB) *gorm.DB { return q })
	if err != nil {
		logger.ErrorID(s.log, "content report failed", err,
			zap.String("endpoint", "getContentReport"),
			zap.String("sub_query", "project_count"),
		)
		return nil
	}

	report := &ContentReport{
		PopularProjects:   popular,
		TopVideos:         videos,
		CategoryBreakdown: breakdown,
		TotalProjects:     page.Total,
	}

	if len(videos) > 0 && videos[0].ViewCount > preloadViewThreshold {
		report.Recommendations.PreloadTopVideo = true
	}
	if report.TotalProjects > lazyLoadProjectCount {
		report.Recommendations.LazyLoadListings = true
	}
	if len(breakdown) > splitCategoryCount {
		report.Recommendations.SplitByCategory = true
	}

	return report
}
