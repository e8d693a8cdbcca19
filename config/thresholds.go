package config

import (
	"log"

	"github.com/spf13/viper"
)

// Thresholds maps rule threshold keys to their configured values. It is
// loaded once at process start and must be treated as immutable afterwards;
// services receive it at construction rather than reading a global.
type Thresholds map[string]int64

var defaultThresholds = map[string]int64{
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

// LoadThresholds reads thresholds.json from the working directory or ./config,
// falling back to built-in defaults for any missing key. Environment variables
// with the same names override the file.
func LoadThresholds() Thresholds {
	v := viper.New()
	v.SetConfigName("thresholds")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	for key, val := range defaultThresholds {
		v.SetDefault(key, val)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("⚠️  thresholds config unreadable, using defaults: %v", err)
		}
	} else {
		log.Printf("✅ Loaded thresholds from %s", v.ConfigFileUsed())
	}

	out := make(Thresholds, len(defaultThresholds))
	for key := range defaultThresholds {
		out[key] = v.GetInt64(key)
	}
	return out
}
