package models

import (
	"time"

	"gorm.io/gorm"
)

// BlogPost is a long-form article authored by a user.
type BlogPost struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Title    string `gorm:"index;not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Category string `json:"category"`
	AuthorID string `gorm:"type:uuid;index;not null" json:"author_id"`

	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
