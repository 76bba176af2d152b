package models

import "gorm.io/datatypes"

// Video visibility levels. Only public videos are eligible for popularity queries.
const (
	VideoVisibilityPublic  = "public"
	VideoVisibilityMembers = "members"
	VideoVisibilityBackers = "backers"
)

// Video is an uploaded media record. Playback assets live with the external
// video providers; Playback carries their opaque metadata payload.
type Video struct {
	BaseModel

	Title    string `gorm:"not null" json:"title"`
	Category string `gorm:"index" json:"category"`

	ViewCount      int64   `gorm:"default:0" json:"view_count"`
	AvgWatchTime   float64 `gorm:"default:0" json:"avg_watch_time"`
	CompletionRate float64 `gorm:"default:0" json:"completion_rate"`

	Visibility string `gorm:"default:public;index" json:"visibility"`

	Playback datatypes.JSON `json:"playback,omitempty"`
}
