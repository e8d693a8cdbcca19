package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the aggregate root for gamification. The *_count columns mirror the
// row counts of the corresponding content and ledger tables; they must only be
// changed in the same transaction as the rows they mirror.
type User struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`

	// Content counters
	ScriptsCount     int `gorm:"default:0" json:"scripts_count"`
	BlogPostsCount   int `gorm:"default:0" json:"blog_posts_count"`
	LikesCount       int `gorm:"default:0" json:"likes_count"`
	FlagsCount       int `gorm:"default:0" json:"flags_count"`
	HelpAnswersCount int `gorm:"default:0" json:"help_answers_count"`

	// Award counters (derived from the ledger tables)
	TrophiesCount           int `gorm:"default:0" json:"trophies_count"`
	ChallengesCount         int `gorm:"default:0" json:"challenges_count"`
	BadgesCount             int `gorm:"default:0" json:"badges_count"`
	AchievementsCount       int `gorm:"default:0" json:"achievements_count"`
	GamificationEventsCount int `gorm:"default:0" json:"gamification_events_count"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
