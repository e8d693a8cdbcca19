package services

import (
	"testing"

	"clubdev/config"
	"clubdev/models"

	"github.com/gosimple/slug"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testThresholds() config.Thresholds {
	return config.Thresholds{
		"ROOKIE_CONTRIBUTOR_THRESHOLD":     5,
		"SYNTAX_SORCERER_THRESHOLD":        10,
		"CROSS_LANGUAGE_WIZARD_THRESHOLD":  3,
		"POPULAR_CREATOR_THRESHOLD":        50,
		"MASTERMIND_THRESHOLD":             1000,
		"REVIEWER_THRESHOLD":               25,
		"BUG_HUNTER_THRESHOLD":             10,
		"HELPER_THRESHOLD":                 10,
		"BLOG_WRITER_THRESHOLD":            5,
		"POPULAR_BLOGGER_THRESHOLD":        50,
		"PROLIFIC_BLOGGER_THRESHOLD":       20,
		"BLOG_INFLUENCER_THRESHOLD":        100,
		"BRONZE_THRESHOLD":                 10,
		"SILVER_THRESHOLD":                 50,
		"GOLD_THRESHOLD":                   100,
		"POLYMATH_THRESHOLD":               25,
		"INNOVATOR_THRESHOLD":              5,
		"TRAILBLAZER_THRESHOLD":            5,
		"COLLABORATOR_THRESHOLD":           5,
		"DAILY_UPLOAD_THRESHOLD":           1,
		"WEEKLY_UPVOTER_THRESHOLD":         5,
		"PROLIFIC_BLOGGER_MONTH_THRESHOLD": 4,
		"BLOG_INFLUENCER_MONTH_THRESHOLD":  30,
	}
}

func TestEvaluateRulesEmptySnapshot(t *testing.T) {
	outcomes := EvaluateRules(EligibilityRules, Snapshot{}, testThresholds())
	assert.Empty(t, outcomes)
}

func TestEvaluateRulesInclusiveBoundary(t *testing.T) {
	thresholds := testThresholds()

	below := Snapshot{MetricScriptCount: 4}
	assert.Empty(t, EvaluateRules(EligibilityRules, below, thresholds))

	exact := Snapshot{MetricScriptCount: 5}
	outcomes := EvaluateRules(EligibilityRules, exact, thresholds)
	require.Len(t, outcomes, 1)
	assert.Equal(t, "Rookie Contributor", outcomes[0].Name)
	assert.Equal(t, OutcomeTrophy, outcomes[0].Kind)
}

func TestEvaluateRulesDeclarationOrder(t *testing.T) {
	// Meets Rookie, Bronze, Silver and Daily Upload in one snapshot; the
	// result must follow the table order, trophies before challenges.
	snap := Snapshot{
		MetricScriptCount:      60,
		MetricDailyUploadCount: 1,
	}
	outcomes := EvaluateRules(EligibilityRules, snap, testThresholds())
	require.Len(t, outcomes, 4)
	assert.Equal(t, "Rookie Contributor", outcomes[0].Name)
	assert.Equal(t, "Bronze Trophy", outcomes[1].Name)
	assert.Equal(t, "Silver Trophy", outcomes[2].Name)
	assert.Equal(t, "Daily Upload", outcomes[3].Name)
	assert.Equal(t, OutcomeChallenge, outcomes[3].Kind)
}

func TestEvaluateRulesFixedMinChallenges(t *testing.T) {
	// Pythonista and Blogger ignore the threshold table; one qualifying item
	// in the week window is enough.
	snap := Snapshot{
		MetricPythonistaWeekCount: 1,
		MetricBlogPostWeekCount:   1,
	}
	outcomes := EvaluateRules(EligibilityRules, snap, config.Thresholds{})
	require.Len(t, outcomes, 2)
	assert.Equal(t, "Pythonista", outcomes[0].Name)
	assert.Equal(t, "Pythonista badge", outcomes[0].Reward)
	assert.Equal(t, "Blogger", outcomes[1].Name)
}

func TestEvaluateRulesSkipsUnknownThresholdKey(t *testing.T) {
	// A missing key disables the rule instead of granting at zero.
	thresholds := testThresholds()
	delete(thresholds, "ROOKIE_CONTRIBUTOR_THRESHOLD")

	snap := Snapshot{MetricScriptCount: 500}
	outcomes := EvaluateRules(EligibilityRules, snap, thresholds)
	for _, o := range outcomes {
		assert.NotEqual(t, "Rookie Contributor", o.Name)
	}
}

func TestEvaluateRulesExistenceChecks(t *testing.T) {
	// Trendsetter and Top Coder fire on any script in the window.
	snap := Snapshot{
		MetricWeekScriptCount:  1,
		MetricMonthScriptCount: 1,
	}
	outcomes := EvaluateRules(EligibilityRules, snap, testThresholds())
	require.Len(t, outcomes, 2)
	assert.Equal(t, "Trendsetter", outcomes[0].Name)
	assert.Equal(t, "Top Coder", outcomes[1].Name)
}

func TestRuleNamesResolveInCatalogs(t *testing.T) {
	challengeCodes := make(map[string]bool, len(models.ChallengeCatalog))
	for _, ch := range models.ChallengeCatalog {
		challengeCodes[ch.Code] = true
	}

	for _, r := range EligibilityRules {
		code := slug.Make(r.Outcome.Name)
		switch r.Outcome.Kind {
		case OutcomeTrophy:
			assert.NotNil(t, models.TrophyDefByCode(code), "trophy %q missing from catalog", r.Outcome.Name)
		case OutcomeChallenge:
			assert.True(t, challengeCodes[code], "challenge %q missing from catalog", r.Outcome.Name)
		}
	}
}

func TestChallengeRewardBadgesResolveInCatalog(t *testing.T) {
	badgeCodes := make(map[string]bool, len(models.BadgeCatalog))
	for _, b := range models.BadgeCatalog {
		badgeCodes[b.Code] = true
	}

	for _, ch := range models.ChallengeCatalog {
		if name, ok := cutBadgeReward(ch.Reward); ok {
			assert.True(t, badgeCodes[slug.Make(name)], "reward badge %q missing from catalog", name)
		}
	}
}

func cutBadgeReward(reward string) (string, bool) {
	const suffix = " badge"
	if len(reward) > len(suffix) && reward[len(reward)-len(suffix):] == suffix {
		return reward[:len(reward)-len(suffix)], true
	}
	return "", false
}
