package models

import "time"

// BadgeType classifies a catalog badge.
type BadgeType string

const (
	BadgeAchievement   BadgeType = "Achievement"
	BadgeParticipation BadgeType = "Participation"
	BadgeSpecial       BadgeType = "Special"
	BadgeCommunity     BadgeType = "Community"
)

// Badge is a catalog entity shared across users; awarding creates a UserBadge.
type Badge struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Code        string    `gorm:"uniqueIndex;not null" json:"code"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Type        BadgeType `gorm:"type:varchar(16);not null" json:"type"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// UserBadge links a user to a catalog badge; at most one row per (user, badge).
type UserBadge struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_badge,priority:1" json:"user_id"`
	BadgeID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_badge,priority:2" json:"badge_id"`
	AwardedAt time.Time `json:"awarded_at"`
}

// BadgeCatalog holds the built-in badges, including every badge a challenge
// reward can name. Seeded idempotently at startup.
var BadgeCatalog = []Badge{
	{Code: "reviewer", Name: "Reviewer", Description: "Earned through the Weekly Upvoter challenge", Type: BadgeCommunity},
	{Code: "pythonista", Name: "Pythonista", Description: "Shipped Python this week", Type: BadgeAchievement},
	{Code: "blogger", Name: "Blogger", Description: "Published a blog post this week", Type: BadgeAchievement},
	{Code: "prolific-blogger", Name: "Prolific Blogger", Description: "Kept the blog busy all month", Type: BadgeAchievement},
	{Code: "blog-influencer", Name: "Blog Influencer", Description: "Posts drew serious attention this month", Type: BadgeSpecial},
}
