package models

import "time"

// GamificationEvent is an audit row written for every award the engine
// grants, in the same transaction as the award itself.
type GamificationEvent struct {
	ID             string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID         string    `gorm:"type:uuid;index;not null" json:"user_id"`
	EventType      string    `gorm:"not null" json:"event_type"`
	XPReward       int       `gorm:"not null" json:"xp_reward"`
	EventTimestamp time.Time `gorm:"index" json:"event_timestamp"`
}
