package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/vlockster/vlockster/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Profile{},
		&models.Project{},
		&models.Video{},
		&models.CacheEntry{},
	)
}

// SeedData inserts a small demo catalogue so a fresh local instance has
// something to serve. Seeding is idempotent: rows are keyed by fixed ids.
func SeedData(db *gorm.DB) error {
	slug := "ava-marlowe"
	profiles := []models.Profile{
		{
			BaseModel:        models.BaseModel{ID: "seed-profile-ava"},
			Name:             "Ava Marlowe",
			Email:            "ava@vlockster.example",
			Bio:              "Documentary filmmaker",
			Role:             "creator",
			IsPremiumCreator: true,
			Slug:             &slug,
		},
		{
			BaseModel: models.BaseModel{ID: "seed-profile-ben"},
			Name:      "Ben Okafor",
			Email:     "ben@vlockster.example",
			Role:      "viewer",
		},
	}

	for _, profile := range profiles {
		if err := db.Where(models.Profile{BaseModel: models.BaseModel{ID: profile.ID}}).
			Attrs(profile).FirstOrCreate(&models.Profile{}).Error; err != nil {
			return err
		}
	}

	deadline := time.Now().AddDate(0, 1, 0)
	projects := []models.Project{
		{
			BaseModel:     models.BaseModel{ID: "seed-project-tides"},
			CreatorID:     "seed-profile-ava",
			Title:         "Tides of Glass",
			Description:   "A feature documentary on coastal glassblowers",
			GoalAmount:    25000,
			CurrentAmount: 8200,
			BackersCount:  117,
			Category:      "documentary",
			Status:        models.ProjectStatusActive,
			Deadline:      &deadline,
		},
	}

	for _, project := range projects {
		if err := db.Where(models.Project{BaseModel: models.BaseModel{ID: project.ID}}).
			Attrs(project).FirstOrCreate(&models.Project{}).Error; err != nil {
			return err
		}
	}

	videos := []models.Video{
		{
			BaseModel:      models.BaseModel{ID: "seed-video-trailer"},
			Title:          "Tides of Glass — Trailer",
			Category:       "documentary",
			ViewCount:      1543,
			AvgWatchTime:   94.5,
			CompletionRate: 0.72,
			Visibility:     models.VideoVisibilityPublic,
		},
	}

	for _, video := range videos {
		if err := db.Where(models.Video{BaseModel: models.BaseModel{ID: video.ID}}).
			Attrs(video).FirstOrCreate(&models.Video{}).Error; err != nil {
			return err
		}
	}

	return nil
}
