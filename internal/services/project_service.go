package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vlockster/vlockster/internal/models"
	"github.com/vlockster/vlockster/pkg/logger"
	"github.com/vlockster/vlockster/pkg/metrics"
)

// ProjectPage is one page of a filtered project listing together with the
// total number of rows under the same filter.
type ProjectPage struct {
	Projects []models.Project `json:"projects"`
	Total    int64            `json:"total"`
}

// CreatorStats aggregates a creator's live campaigns.
type CreatorStats struct {
	ProjectsCount int64   `json:"projects_count"`
	BackersCount  int64   `json:"backers_count"`
	TotalFunded   float64 `json:"total_funded"`
}

// CategoryStats aggregates the campaigns in one category.
type CategoryStats struct {
	TotalProjects       int64   `json:"total_projects"`
	TotalFunded         float64 `json:"total_funded"`
	AvgFundedPercentage float64 `json:"avg_funded_percentage"`
}

// ProjectService serves filtered listings and statistics over crowdfunding
// campaigns. Listings always hit the store directly: results depend on the
// caller's filter and paging, so memoising them buys little.
//
// Failure signalling is deliberately asymmetric: paginated listings answer nil
// on any failure, top-N listings answer an empty slice. Soft-deleted campaigns
// are excluded everywhere via the model's DeletedAt column.
type ProjectService struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewProjectService constructs a ProjectService.
func NewProjectService(db *gorm.DB) (*ProjectService, error) {
	if db == nil {
		return nil, errors.New("project service: db is required")
	}
	return &ProjectService{db: db, log: logger.WithModule("projects")}, nil
}

// ListByCategory returns one page of the category's campaigns, newest first,
// or nil on any query failure.
func (s *ProjectService) ListByCategory(ctx context.Context, category string, limit, offset int) *ProjectPage {
	ctx = ensureContext(ctx)
	category = strings.TrimSpace(category)

	page, err := s.listPage(ctx, limit, offset, func(q *gorm.DB) *gorm.DB {
		return q.Where("category = ?", category)
	})
	if err != nil {
		metrics.QueryFailures.WithLabelValues("getProjectsByCategory").Inc()
		logger.ErrorID(s.log, "project listing by category failed", err,
			zap.String("endpoint", "getProjectsByCategory"),
			zap.String("category", category),
		)
		return nil
	}
	return page
}

// ListByStatus returns one page of campaigns in the given lifecycle status,
// newest first, or nil on any query failure.
func (s *ProjectService) ListByStatus(ctx context.Context, status string, limit, offset int) *ProjectPage {
	ctx = ensureContext(ctx)
	status = strings.ToLower(strings.TrimSpace(status))

	page, err := s.listPage(ctx, limit, offset, func(q *gorm.DB) *gorm.DB {
		return q.Where("status = ?", status)
	})
	if err != nil {
		metrics.QueryFailures.WithLabelValues("getProjectsByStatus").Inc()
		logger.ErrorID(s.log, "project listing by status failed", err,
			zap.String("endpoint", "getProjectsByStatus"),
			zap.String("status", status),
		)
		return nil
	}
	return page
}

// ListByCreator returns one page of the creator's campaigns, newest first,
// or nil on any query failure.
func (s *ProjectService) ListByCreator(ctx context.Context, creatorID string, limit, offset int) *ProjectPage {
	ctx = ensureContext(ctx)
	creatorID = strings.TrimSpace(creatorID)

	page, err := s.listPage(ctx, limit, offset, func(q *gorm.DB) *gorm.DB {
		return q.Where("creator_id = ?", creatorID)
	})
	if err != nil {
		metrics.QueryFailures.WithLabelValues("getCreatorProjects").Inc()
		logger.ErrorID(s.log, "project listing by creator failed", err,
			zap.String("endpoint", "getCreatorProjects"),
			zap.String("creator_id", creatorID),
		)
		return nil
	}
	return page
}

// Popular returns up to limit campaigns ordered by backer count. On failure it
// answers an empty slice: callers of top-N listings render "nothing to show"
// either way.
func (s *ProjectService) Popular(ctx context.Context, limit int) []models.Project {
	ctx = ensureContext(ctx)

	projects, err := s.popular(ctx, limit)
	if err != nil {
		metrics.QueryFailures.WithLabelValues("getPopularProjects").Inc()
		logger.ErrorID(s.log, "popular projects query failed", err,
			zap.String("endpoint", "getPopularProjects"))
		return []models.Project{}
	}
	return projects
}

// Recent returns up to limit campaigns ordered by creation time, empty slice
// on failure.
func (s *ProjectService) Recent(ctx context.Context, limit int) []models.Project {
	ctx = ensureContext(ctx)

	projects, err := s.recent(ctx, limit)
	if err != nil {
		metrics.QueryFailures.WithLabelValues("getRecentProjects").Inc()
		logger.ErrorID(s.log, "recent projects query failed", err,
			zap.String("endpoint", "getRecentProjects"))
		return []models.Project{}
	}
	return projects
}

// CreatorStats sums the creator's campaigns, or nil on failure. A creator with
// no campaigns gets zeroes, not nil.
func (s *ProjectService) CreatorStats(ctx context.Context, creatorID string) *CreatorStats {
	ctx = ensureContext(ctx)
	creatorID = strings.TrimSpace(creatorID)

	stats, err := s.creatorStats(ctx, creatorID)
	if err != nil {
		metrics.QueryFailures.WithLabelValues("getCreatorStats").Inc()
		logger.ErrorID(s.log, "creator stats query failed", err,
			zap.String("endpoint", "getCreatorStats"),
			zap.String("creator_id", creatorID),
		)
		return nil
	}
	return stats
}

// StatsByCategory aggregates a category's campaigns, or nil on failure. A
// category with no campaigns yields all-zero statistics rather than NaN.
func (s *ProjectService) StatsByCategory(ctx context.Context, category string) *CategoryStats {
	ctx = ensureContext(ctx)
	category = strings.TrimSpace(category)

	stats, err := s.statsByCategory(ctx, category)
	if err != nil {
		metrics.QueryFailures.WithLabelValues("getProjectStatsByCategory").Inc()
		logger.ErrorID(s.log, "category stats query failed", err,
			zap.String("endpoint", "getProjectStatsByCategory"),
			zap.String("category", category),
		)
		return nil
	}
	return stats
}

// listPage runs the shared count-then-page sequence under one filter. Both
// queries apply the identical predicate; a failure of either aborts the page
// so callers never see items paired with a wrong total.
func (s *ProjectService) listPage(ctx context.Context, limit, offset int, filter func(*gorm.DB) *gorm.DB) (*ProjectPage, error) {
	limit, offset = normalisePage(limit, offset)

	var total int64
	if err := filter(s.db.WithContext(ctx).Model(&models.Project{})).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}

	var projects []models.Project
	err := filter(s.db.WithContext(ctx).Model(&models.Project{})).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("page: %w", err)
	}

	if projects == nil {
		projects = []models.Project{}
	}
	return &ProjectPage{Projects: projects, Total: total}, nil
}

func (s *ProjectService) popular(ctx context.Context, limit int) ([]models.Project, error) {
	limit, _ = normalisePage(limit, 0)

	var projects []models.Project
	err := s.db.WithContext(ctx).
		Order("backers_count DESC").
		Limit(limit).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}

func (s *ProjectService) recent(ctx context.Context, limit int) ([]models.Project, error) {
	limit, _ = normalisePage(limit, 0)

	var projects []models.Project
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}

func (s *ProjectService) creatorStats(ctx context.Context, creatorID string) (*CreatorStats, error) {
	var row struct {
		ProjectsCount int64
		BackersCount  int64
		TotalFunded   float64
	}

	err := s.db.WithContext(ctx).Model(&models.Project{}).
		Select("COUNT(*) AS projects_count, COALESCE(SUM(backers_count), 0) AS backers_count, COALESCE(SUM(current_amount), 0) AS total_funded").
		Where("creator_id = ?", creatorID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}

	return &CreatorStats{
		ProjectsCount: row.ProjectsCount,
		BackersCount:  row.BackersCount,
		TotalFunded:   row.TotalFunded,
	}, nil
}

func (s *ProjectService) statsByCategory(ctx context.Context, category string) (*CategoryStats, error) {
	var rows []struct {
		GoalAmount    float64
		CurrentAmount float64
	}

	err := s.db.WithContext(ctx).Model(&models.Project{}).
		Select("goal_amount, current_amount").
		Where("category = ?", category).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &CategoryStats{TotalProjects: int64(len(rows))}
	if len(rows) == 0 {
		return stats, nil
	}

	var pctSum float64
	for _, row := range rows {
		stats.TotalFunded += row.CurrentAmount
		if row.GoalAmount > 0 {
			pctSum += row.CurrentAmount / row.GoalAmount * 100
		}
	}
	stats.AvgFundedPercentage = pctSum / float64(len(rows))
	return stats, nil
}
