package models

import "time"

// Achievement is a catalog entity granted to users via UserAchievement.
type Achievement struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Code        string    `gorm:"uniqueIndex;not null" json:"code"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// UserAchievement links a user to a catalog achievement; at most one row per
// (user, achievement).
type UserAchievement struct {
	ID            string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID        string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement,priority:1" json:"user_id"`
	AchievementID string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement,priority:2" json:"achievement_id"`
	AchievedAt    time.Time `json:"achieved_at"`
}

// AchievementCatalog holds the built-in achievements available to admin grants.
var AchievementCatalog = []Achievement{
	{Code: "first-script", Name: "First Script", Description: "Published a first script"},
	{Code: "first-post", Name: "First Post", Description: "Published a first blog post"},
	{Code: "community-pillar", Name: "Community Pillar", Description: "Recognized for sustained community help"},
}
