package services

import (
	"time"

	"clubdev/models"

	"gorm.io/gorm"
)

// Metric names one per-user aggregate the rule set can reference.
type Metric string

const (
	MetricScriptCount         Metric = "script_count"
	MetricSyntaxSorcererCount Metric = "syntax_sorcerer_count"
	MetricInnovatorCount      Metric = "innovator_count"
	MetricTrailblazerCount    Metric = "trailblazer_count"
	MetricCollaboratorCount   Metric = "collaborator_count"
	MetricLikesOnScripts      Metric = "like_count_on_scripts"
	MetricLikesGiven          Metric = "like_given_count"
	MetricFlagCount           Metric = "flag_count"
	MetricHelpAnswerCount     Metric = "help_answer_count"
	MetricBlogPostCount       Metric = "blog_post_count"
	MetricLikesOnPosts        Metric = "like_count_on_posts"
	MetricViewSum             Metric = "view_sum"
	MetricCrossLanguageCount  Metric = "cross_language_count"
	MetricDailyUploadCount    Metric = "daily_upload_count"
	MetricWeeklyUpvoterCount  Metric = "weekly_upvoter_count"
	MetricPythonistaWeekCount Metric = "pythonista_week_count"
	MetricBlogPostWeekCount   Metric = "blog_post_week_count"
	MetricBlogPostMonthCount  Metric = "blog_post_month_count"
	MetricLikesOnPostsMonth   Metric = "like_on_posts_month_count"
	MetricWeekScriptCount     Metric = "week_script_count"
	MetricMonthScriptCount    Metric = "month_script_count"
)

// Snapshot holds one user's aggregate metric values at a single evaluation
// instant. It is plain data: safe to pass around, never written back.
type Snapshot map[Metric]int64

// startOfDay returns midnight of t's calendar day.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns Monday 00:00 of t's week.
func startOfWeek(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	return startOfDay(t).AddDate(0, 0, -daysSinceMonday)
}

// startOfMonth returns 00:00 on the first day of t's month.
func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MetricAggregator computes read-only metric snapshots for one user. All
// queries run on the *gorm.DB it was built with, so handing it an open
// transaction gives the reads the same snapshot the subsequent writes see.
type MetricAggregator struct {
	db  *gorm.DB
	now func() time.Time
}

func NewMetricAggregator(db *gorm.DB) *MetricAggregator {
	return &MetricAggregator{db: db, now: time.Now}
}

// Snapshot computes every metric for userID as of the current wall clock.
// Queries run in a fixed order; the first failure aborts the whole snapshot
// so the rule set never sees a partially populated one.
func (a *MetricAggregator) Snapshot(userID string) (Snapshot, error) {
	now := a.now()
	day := startOfDay(now)
	week := startOfWeek(now)
	month := startOfMonth(now)

	snap := make(Snapshot, 21)

	counts := []struct {
		metric Metric
		query  *gorm.DB
	}{
		{MetricScriptCount, a.db.Model(&models.Script{}).Where("author_id = ?", userID)},
		{MetricSyntaxSorcererCount, a.db.Model(&models.Script{}).Where("author_id = ? AND is_syntax_sorcerer", userID)},
		{MetricInnovatorCount, a.db.Model(&models.Script{}).Where("author_id = ? AND is_innovative", userID)},
		{MetricTrailblazerCount, a.db.Model(&models.Script{}).Where("author_id = ? AND is_trailblazing", userID)},
		{MetricCollaboratorCount, a.db.Model(&models.Script{}).Where("author_id = ? AND is_collaborative", userID)},
		{MetricLikesOnScripts, a.db.Model(&models.Like{}).
			Joins("JOIN scripts ON scripts.id = likes.script_id").
			Where("scripts.author_id = ?", userID)},
		{MetricLikesGiven, a.db.Model(&models.Like{}).Where("user_id = ?", userID)},
		{MetricFlagCount, a.db.Model(&models.Flag{}).Where("flagger_id = ?", userID)},
		{MetricHelpAnswerCount, a.db.Model(&models.HelpAnswer{}).Where("responder_id = ?", userID)},
		{MetricBlogPostCount, a.db.Model(&models.BlogPost{}).Where("author_id = ?", userID)},
		{MetricLikesOnPosts, a.db.Model(&models.Like{}).
			Joins("JOIN blog_posts ON blog_posts.id = likes.blog_post_id").
			Where("blog_posts.author_id = ?", userID)},
		{MetricDailyUploadCount, a.db.Model(&models.Script{}).
			Where("author_id = ? AND scripts.created_at >= ?", userID, day)},
		{MetricWeeklyUpvoterCount, a.db.Model(&models.Like{}).
			Where("user_id = ? AND likes.created_at >= ?", userID, week)},
		{MetricPythonistaWeekCount, a.db.Model(&models.Script{}).
			Where("author_id = ? AND language = ? AND scripts.created_at >= ?", userID, "Python", week)},
		{MetricBlogPostWeekCount, a.db.Model(&models.BlogPost{}).
			Where("author_id = ? AND blog_posts.created_at >= ?", userID, week)},
		{MetricBlogPostMonthCount, a.db.Model(&models.BlogPost{}).
			Where("author_id = ? AND blog_posts.created_at >= ?", userID, month)},
		{MetricLikesOnPostsMonth, a.db.Model(&models.Like{}).
			Joins("JOIN blog_posts ON blog_posts.id = likes.blog_post_id").
			Where("blog_posts.author_id = ? AND likes.created_at >= ?", userID, month)},
		{MetricWeekScriptCount, a.db.Model(&models.Script{}).
			Where("author_id = ? AND scripts.created_at >= ?", userID, week)},
		{MetricMonthScriptCount, a.db.Model(&models.Script{}).
			Where("author_id = ? AND scripts.created_at >= ?", userID, month)},
	}

	for _, c := range counts {
		var n int64
		if err := c.query.Count(&n).Error; err != nil {
			return nil, dbErr("count "+string(c.metric), err)
		}
		snap[c.metric] = n
	}

	var viewSum int64
	if err := a.db.Model(&models.Script{}).
		Where("author_id = ?", userID).
		Select("COALESCE(SUM(views), 0)").
		Scan(&viewSum).Error; err != nil {
		return nil, dbErr("sum "+string(MetricViewSum), err)
	}
	snap[MetricViewSum] = viewSum

	var languages int64
	if err := a.db.Model(&models.Script{}).
		Where("author_id = ?", userID).
		Distinct("language").
		Count(&languages).Error; err != nil {
		return nil, dbErr("count "+string(MetricCrossLanguageCount), err)
	}
	snap[MetricCrossLanguageCount] = languages

	return snap, nil
}
