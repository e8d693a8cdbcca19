package models

import "time"

// TrophyLevel is the tier of an awarded trophy.
type TrophyLevel string

const (
	TrophyBronze TrophyLevel = "Bronze"
	TrophySilver TrophyLevel = "Silver"
	TrophyGold   TrophyLevel = "Gold"
)

// TrophyStatus tracks whether a trophy has been unlocked. The engine only
// ever writes Achieved; Locked exists for pre-provisioned showcase rows and
// may transition to Achieved, never back.
type TrophyStatus string

const (
	TrophyAchieved TrophyStatus = "Achieved"
	TrophyLocked   TrophyStatus = "Locked"
)

// Trophy is one awarded instance on the ledger. Rows are created exactly once
// per (user, code) and are immutable apart from the Locked→Achieved
// transition; the unique index backs the applier's existence check under
// concurrent evaluations.
type Trophy struct {
	ID          string       `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string       `gorm:"type:uuid;not null;uniqueIndex:idx_trophy_user_code,priority:1" json:"user_id"`
	Code        string       `gorm:"not null;uniqueIndex:idx_trophy_user_code,priority:2" json:"code"`
	Name        string       `gorm:"not null" json:"name"`
	Description string       `json:"description"`
	Level       TrophyLevel  `gorm:"type:varchar(16);not null" json:"level"`
	Status      TrophyStatus `gorm:"type:varchar(16);not null" json:"status"`
	AwardedAt   time.Time    `json:"awarded_at"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

// TrophyDef is a catalog entry describing a trophy the rule set can award.
type TrophyDef struct {
	Code        string
	Name        string
	Description string
	Level       TrophyLevel
}

// TrophyCatalog lists every trophy the eligibility rules reference.
var TrophyCatalog = []TrophyDef{
	{"rookie-contributor", "Rookie Contributor", "Published your first batch of scripts", TrophyBronze},
	{"syntax-sorcerer", "Syntax Sorcerer", "Authored scripts recognized for impeccable syntax", TrophySilver},
	{"cross-language-wizard", "Cross-Language Wizard", "Published scripts across multiple languages", TrophySilver},
	{"popular-creator", "Popular Creator", "Collected likes on your scripts", TrophySilver},
	{"mastermind", "Mastermind", "Accumulated script views across the platform", TrophyGold},
	{"reviewer", "Reviewer", "Upvoted the work of fellow developers", TrophyBronze},
	{"trendsetter", "Trendsetter", "Published a trending script this week", TrophySilver},
	{"bug-hunter", "Bug Hunter", "Reported problematic content to moderators", TrophyBronze},
	{"helper", "Helper", "Answered questions from the community", TrophyBronze},
	{"top-coder", "Top Coder", "Published a standout script this month", TrophyGold},
	{"blog-writer", "Blog Writer", "Published blog posts", TrophyBronze},
	{"popular-blogger", "Popular Blogger", "Collected likes on your blog posts", TrophySilver},
	{"prolific-blogger", "Prolific Blogger", "Kept a steady stream of blog posts", TrophySilver},
	{"blog-influencer", "Blog Influencer", "Reached a wide audience with your posts", TrophyGold},
	{"bronze-trophy", "Bronze Trophy", "Script milestone, bronze tier", TrophyBronze},
	{"silver-trophy", "Silver Trophy", "Script milestone, silver tier", TrophySilver},
	{"gold-trophy", "Gold Trophy", "Script milestone, gold tier", TrophyGold},
	{"polymath-trophy", "Polymath Trophy", "Sustained excellence across many scripts", TrophyGold},
	{"innovator-trophy", "Innovator Trophy", "Authored scripts marked as innovative", TrophySilver},
	{"trailblazer-trophy", "Trailblazer Trophy", "Authored scripts marked as trailblazing", TrophySilver},
	{"collaborator-trophy", "Collaborator Trophy", "Authored scripts built with others", TrophySilver},
}

// TrophyDefByCode returns the catalog entry for code, or nil when unknown.
func TrophyDefByCode(code string) *TrophyDef {
	for i := range TrophyCatalog {
		if TrophyCatalog[i].Code == code {
			return &TrophyCatalog[i]
		}
	}
	return nil
}
