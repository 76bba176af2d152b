package models

import (
	"time"

	"gorm.io/gorm"
)

// Project statuses as maintained by the backing store's write path.
const (
	ProjectStatusDraft  = "draft"
	ProjectStatusActive = "active"
	ProjectStatusFunded = "funded"
	ProjectStatusClosed = "closed"
)

// Project is a crowdfunding campaign owned by a creator profile.
// CurrentAmount and BackersCount are maintained monotonically by the store's
// write path; listings must exclude soft-deleted rows.
type Project struct {
	BaseModel

	CreatorID   string   `gorm:"type:uuid;not null;index" json:"creator_id"`
	Creator     *Profile `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Title       string   `gorm:"not null" json:"title"`
	Description string   `json:"description"`

	GoalAmount    float64 `gorm:"not null" json:"goal_amount"`
	CurrentAmount float64 `gorm:"default:0" json:"current_amount"`
	BackersCount  int64   `gorm:"default:0" json:"backers_count"`

	Category string     `gorm:"index" json:"category"`
	Status   string     `gorm:"default:draft;index" json:"status"`
	Deadline *time.Time `json:"deadline,omitempty"`

	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// FundedPercentage derives how far the campaign is towards its goal,
// substituting 0 when the goal is unset to avoid dividing by zero.
func (p *Project) FundedPercentage() float64 {
	if p.GoalAmount <= 0 {
		return 0
	}
	return p.CurrentAmount / p.GoalAmount * 100
}

// EngagementScore normalises backers by campaign age in days, with the age
// floored at one day so fresh campaigns do not divide by zero.
func (p *Project) EngagementScore(now time.Time) float64 {
	days := now.Sub(p.CreatedAt).Hours() / 24
	if days < 1 {
		days = 1
	}
	return float64(p.BackersCount) / days
}
