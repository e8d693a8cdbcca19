package models

import "time"

// Leaderboard is a periodic ranking snapshot produced by the background
// worker. Rows are append-only; readers take the latest recorded_at per
// criteria.
type Leaderboard struct {
	ID              string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID          string    `gorm:"type:uuid;index;not null" json:"user_id"`
	RankingCriteria string    `gorm:"index;not null" json:"ranking_criteria"`
	Rank            int       `gorm:"not null" json:"rank"`
	RecordedAt      time.Time `gorm:"index;not null" json:"recorded_at"`
}
