package models

// Profile describes a platform identity: viewers, filmmakers, and premium creators.
// Rows are owned and mutated by the backing store's write path; this service
// only reads and caches them.
type Profile struct {
	BaseModel

	Name   string `gorm:"not null" json:"name"`
	Email  string `gorm:"uniqueIndex;not null" json:"email"`
	Avatar string `json:"avatar"`
	Bio    string `json:"bio"`
	Role   string `gorm:"default:viewer" json:"role"`

	IsPremiumCreator bool `gorm:"default:false" json:"is_premium_creator"`

	// Slug is the public profile handle. Nullable so profiles without a public
	// page never collide on the unique index.
	Slug *string `gorm:"uniqueIndex" json:"slug,omitempty"`
}
