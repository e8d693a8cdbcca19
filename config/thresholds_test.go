package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadThresholdsDefaults(t *testing.T) {
	thresholds := LoadThresholds()
	require.Len(t, thresholds, len(defaultThresholds))

	assert.EqualValues(t, 5, thresholds["ROOKIE_CONTRIBUTOR_THRESHOLD"])
	assert.EqualValues(t, 1000, thresholds["MASTERMIND_THRESHOLD"])
	assert.EqualValues(t, 1, thresholds["DAILY_UPLOAD_THRESHOLD"])
	assert.EqualValues(t, 30, thresholds["BLOG_INFLUENCER_MONTH_THRESHOLD"])
}

func TestLoadThresholdsEnvOverride(t *testing.T) {
	t.Setenv("ROOKIE_CONTRIBUTOR_THRESHOLD", "7")

	thresholds := LoadThresholds()
	assert.EqualValues(t, 7, thresholds["ROOKIE_CONTRIBUTOR_THRESHOLD"])

	// Other keys keep their defaults.
	assert.EqualValues(t, 10, thresholds["BUG_HUNTER_THRESHOLD"])
}

func TestThresholdLevelsAreOrdered(t *testing.T) {
	thresholds := LoadThresholds()
	assert.Less(t, thresholds["BRONZE_THRESHOLD"], thresholds["SILVER_THRESHOLD"])
	assert.Less(t, thresholds["SILVER_THRESHOLD"], thresholds["GOLD_THRESHOLD"])
}
