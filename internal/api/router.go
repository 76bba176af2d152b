package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/vlockster/vlockster/internal/cache"
	"github.com/vlockster/vlockster/internal/handlers"
	"github.com/vlockster/vlockster/internal/middleware"
	"github.com/vlockster/vlockster/internal/services"
)

// NewRouter builds the Gin engine, wires middleware and registers routes.
func NewRouter(db *gorm.DB, store cache.Store, ttl time.Duration) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if store == nil {
		return nil, fmt.Errorf("cache store must be provided")
	}

	profileService, err := services.NewProfileService(db, store, ttl)
	if err != nil {
		return nil, err
	}
	projectService, err := services.NewProjectService(db)
	if err != nil {
		return nil, err
	}
	videoService, err := services.NewVideoService(db)
	if err != nil {
		return nil, err
	}
	reportService, err := services.NewReportService(projectService, videoService)
	if err != nil {
		return nil, err
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	// Health endpoint (public)
	r.GET("/health", handlers.Health(db))

	api := r.Group("/api")

	profileHandler := handlers.NewProfileHandler(profileService)
	profiles := api.Group("/profiles")
	{
		profiles.GET("", profileHandler.List)
		profiles.GET("/:id", profileHandler.Get)
		profiles.GET("/slug/:slug", profileHandler.GetBySlug)
	}

	// Cache invalidation
	api.DELETE("/cache/profiles/:id", profileHandler.Invalidate)
	api.DELETE("/cache", profileHandler.InvalidateAll)

	projectHandler := handlers.NewProjectHandler(projectService)
	projects := api.Group("/projects")
	{
		projects.GET("/category/:category", projectHandler.ListByCategory)
		projects.GET("/category/:category/stats", projectHandler.CategoryStats)
		projects.GET("/status/:status", projectHandler.ListByStatus)
		projects.GET("/creator/:id", projectHandler.ListByCreator)
		projects.GET("/creator/:id/stats", projectHandler.CreatorStats)
		projects.GET("/popular", projectHandler.Popular)
		projects.GET("/recent", projectHandler.Recent)
	}

	videoHandler := handlers.NewVideoHandler(videoService)
	api.GET("/videos/top", videoHandler.Top)

	reportHandler := handlers.NewReportHandler(reportService)
	reports := api.Group("/reports")
	{
		reports.GET("/performance", reportHandler.Performance)
		reports.GET("/content", reportHandler.Content)
	}

	// Metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// NotFound fallback
	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
