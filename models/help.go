package models

import "time"

// HelpQuestion is a community question asked by a user.
type HelpQuestion struct {
	ID         string     `gorm:"primaryKey;type:uuid" json:"id"`
	Title      string     `gorm:"index;not null" json:"title"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	AskerID    string     `gorm:"type:uuid;index;not null" json:"asker_id"`
	Resolved   bool       `gorm:"default:false" json:"resolved"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// HelpAnswer is a reply to a HelpQuestion; answering feeds the Helper metric.
type HelpAnswer struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	QuestionID  string    `gorm:"type:uuid;index;not null" json:"question_id"`
	ResponderID string    `gorm:"type:uuid;index;not null" json:"responder_id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
