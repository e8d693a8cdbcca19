package models

import (
	"time"

	"gorm.io/gorm"
)

// Script is a shared code snippet. The boolean quality flags are set by
// moderation/curation flows elsewhere; the gamification engine only reads
// them. Views and Likes are denormalized tallies owned by the content layer.
type Script struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Title       string `gorm:"index;not null" json:"title"`
	Content     string `gorm:"type:text;not null" json:"content"`
	Description string `json:"description"`
	Language    string `gorm:"index;not null" json:"language"`
	AuthorID    string `gorm:"type:uuid;index;not null" json:"author_id"`

	Views int64 `gorm:"default:0" json:"views"`
	Likes int64 `gorm:"default:0" json:"likes"`

	IsSyntaxSorcerer bool `gorm:"default:false" json:"is_syntax_sorcerer"`
	IsInnovative     bool `gorm:"default:false" json:"is_innovative"`
	IsTrailblazing   bool `gorm:"default:false" json:"is_trailblazing"`
	IsCollaborative  bool `gorm:"default:false" json:"is_collaborative"`

	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Like records one upvote on a script or a blog post. Exactly one of ScriptID
// and BlogPostID is set.
type Like struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID     string    `gorm:"type:uuid;index;not null" json:"user_id"`
	ScriptID   *string   `gorm:"type:uuid;index:idx_like_content" json:"script_id,omitempty"`
	BlogPostID *string   `gorm:"type:uuid;index:idx_like_content" json:"blog_post_id,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// Flag is a moderation report raised by a user against a script or post.
type Flag struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	Reason     string    `gorm:"not null" json:"reason"`
	FlaggerID  string    `gorm:"type:uuid;index;not null" json:"flagger_id"`
	ScriptID   *string   `gorm:"type:uuid;index" json:"script_id,omitempty"`
	BlogPostID *string   `gorm:"type:uuid;index" json:"blog_post_id,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
