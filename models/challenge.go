package models

import "time"

// ChallengeType selects the completion window of a challenge.
type ChallengeType string

const (
	ChallengeDaily   ChallengeType = "daily"
	ChallengeWeekly  ChallengeType = "weekly"
	ChallengeMonthly ChallengeType = "monthly"
)

// Challenge is a catalog entity; per-user completions live in DailyChallenge.
type Challenge struct {
	ID          string        `gorm:"primaryKey;type:uuid" json:"id"`
	Code        string        `gorm:"uniqueIndex;not null" json:"code"`
	Name        string        `gorm:"not null" json:"name"`
	Description string        `json:"description"`
	Type        ChallengeType `gorm:"type:varchar(16);not null" json:"type"`
	Target      int           `gorm:"not null" json:"target"`
	Reward      string        `gorm:"not null" json:"reward"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// DailyChallenge records one user's completion of a challenge within one
// window. WindowDate is the window's start instant (midnight / Monday 00:00 /
// first of month), so the unique index allows exactly one completion per
// (user, challenge, window).
type DailyChallenge struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_daily_challenge_window,priority:1" json:"user_id"`
	ChallengeID string    `gorm:"type:uuid;not null;uniqueIndex:idx_daily_challenge_window,priority:2" json:"challenge_id"`
	WindowDate  time.Time `gorm:"not null;uniqueIndex:idx_daily_challenge_window,priority:3" json:"window_date"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ChallengeCatalog holds the built-in challenges the rule set can award.
// Targets mirror the default thresholds; rewards ending in " badge" also grant
// the named badge on completion.
var ChallengeCatalog = []Challenge{
	{Code: "daily-upload", Name: "Daily Upload", Description: "Upload a script today", Type: ChallengeDaily, Target: 1, Reward: "100 bonus XP"},
	{Code: "weekly-upvoter", Name: "Weekly Upvoter", Description: "Upvote fellow developers this week", Type: ChallengeWeekly, Target: 5, Reward: "Reviewer badge"},
	{Code: "pythonista", Name: "Pythonista", Description: "Publish a Python script this week", Type: ChallengeWeekly, Target: 1, Reward: "Pythonista badge"},
	{Code: "blogger", Name: "Blogger", Description: "Publish a blog post this week", Type: ChallengeWeekly, Target: 1, Reward: "Blogger badge"},
	{Code: "prolific-blogger", Name: "Prolific Blogger", Description: "Keep posting all month", Type: ChallengeMonthly, Target: 4, Reward: "Prolific Blogger badge"},
	{Code: "blog-influencer", Name: "Blog Influencer", Description: "Collect likes on posts this month", Type: ChallengeMonthly, Target: 30, Reward: "Blog Influencer badge"},
}
