package services

import "clubdev/config"

// OutcomeKind distinguishes what an eligibility rule awards.
type OutcomeKind string

const (
	OutcomeTrophy    OutcomeKind = "trophy"
	OutcomeChallenge OutcomeKind = "challenge"
)

// Outcome is a trophy or challenge a rule can grant. Reward is set for
// challenge outcomes only.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Name   string      `json:"name"`
	Reward string      `json:"reward,omitempty"`
}

// Rule compares one metric against a configured threshold with >=. Rules with
// an empty ThresholdKey use Min as a fixed threshold instead (the existence
// checks and the built-in weekly challenges).
type Rule struct {
	Metric       Metric
	ThresholdKey string
	Min          int64
	Outcome      Outcome
}

func trophyRule(metric Metric, key, name string) Rule {
	return Rule{Metric: metric, ThresholdKey: key, Outcome: Outcome{Kind: OutcomeTrophy, Name: name}}
}

func challengeRule(metric Metric, key string, min int64, name, reward string) Rule {
	return Rule{Metric: metric, ThresholdKey: key, Min: min, Outcome: Outcome{Kind: OutcomeChallenge, Name: name, Reward: reward}}
}

// EligibilityRules is the static rule table, evaluated top to bottom. Result
// order follows declaration order, which tests rely on. Trendsetter and Top
// Coder are per-user existence checks over the week/month window, not
// cross-user rankings.
var EligibilityRules = []Rule{
	trophyRule(MetricScriptCount, "ROOKIE_CONTRIBUTOR_THRESHOLD", "Rookie Contributor"),
	trophyRule(MetricSyntaxSorcererCount, "SYNTAX_SORCERER_THRESHOLD", "Syntax Sorcerer"),
	trophyRule(MetricCrossLanguageCount, "CROSS_LANGUAGE_WIZARD_THRESHOLD", "Cross-Language Wizard"),
	trophyRule(MetricLikesOnScripts, "POPULAR_CREATOR_THRESHOLD", "Popular Creator"),
	trophyRule(MetricViewSum, "MASTERMIND_THRESHOLD", "Mastermind"),
	trophyRule(MetricLikesGiven, "REVIEWER_THRESHOLD", "Reviewer"),
	{Metric: MetricWeekScriptCount, Min: 1, Outcome: Outcome{Kind: OutcomeTrophy, Name: "Trendsetter"}},
	trophyRule(MetricFlagCount, "BUG_HUNTER_THRESHOLD", "Bug Hunter"),
	trophyRule(MetricHelpAnswerCount, "HELPER_THRESHOLD", "Helper"),
	{Metric: MetricMonthScriptCount, Min: 1, Outcome: Outcome{Kind: OutcomeTrophy, Name: "Top Coder"}},
	trophyRule(MetricBlogPostCount, "BLOG_WRITER_THRESHOLD", "Blog Writer"),
	trophyRule(MetricLikesOnPosts, "POPULAR_BLOGGER_THRESHOLD", "Popular Blogger"),
	trophyRule(MetricBlogPostCount, "PROLIFIC_BLOGGER_THRESHOLD", "Prolific Blogger"),
	trophyRule(MetricLikesOnPosts, "BLOG_INFLUENCER_THRESHOLD", "Blog Influencer"),
	trophyRule(MetricScriptCount, "BRONZE_THRESHOLD", "Bronze Trophy"),
	trophyRule(MetricScriptCount, "SILVER_THRESHOLD", "Silver Trophy"),
	trophyRule(MetricScriptCount, "GOLD_THRESHOLD", "Gold Trophy"),
	trophyRule(MetricSyntaxSorcererCount, "POLYMATH_THRESHOLD", "Polymath Trophy"),
	trophyRule(MetricInnovatorCount, "INNOVATOR_THRESHOLD", "Innovator Trophy"),
	trophyRule(MetricTrailblazerCount, "TRAILBLAZER_THRESHOLD", "Trailblazer Trophy"),
	trophyRule(MetricCollaboratorCount, "COLLABORATOR_THRESHOLD", "Collaborator Trophy"),

	challengeRule(MetricDailyUploadCount, "DAILY_UPLOAD_THRESHOLD", 0, "Daily Upload", "100 bonus XP"),
	challengeRule(MetricWeeklyUpvoterCount, "WEEKLY_UPVOTER_THRESHOLD", 0, "Weekly Upvoter", "Reviewer badge"),
	challengeRule(MetricPythonistaWeekCount, "", 1, "Pythonista", "Pythonista badge"),
	challengeRule(MetricBlogPostWeekCount, "", 1, "Blogger", "Blogger badge"),
	challengeRule(MetricBlogPostMonthCount, "PROLIFIC_BLOGGER_MONTH_THRESHOLD", 0, "Prolific Blogger", "Prolific Blogger badge"),
	challengeRule(MetricLikesOnPostsMonth, "BLOG_INFLUENCER_MONTH_THRESHOLD", 0, "Blog Influencer", "Blog Influencer badge"),
}

// EvaluateRules returns, in declaration order, every outcome whose metric
// meets its threshold. Comparisons are inclusive. Rules whose threshold key
// is absent from the configuration are skipped rather than treated as zero.
func EvaluateRules(rules []Rule, snap Snapshot, thresholds config.Thresholds) []Outcome {
	var satisfied []Outcome
	for _, r := range rules {
		min := r.Min
		if r.ThresholdKey != "" {
			v, ok := thresholds[r.ThresholdKey]
			if !ok {
				continue
			}
			min = v
		}
		if snap[r.Metric] >= min {
			satisfied = append(satisfied, r.Outcome)
		}
	}
	return satisfied
}
