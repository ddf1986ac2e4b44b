package matching

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultKeywordCeiling is the share of the match score earned by keywords alone.
	DefaultKeywordCeiling = 70.0
	// DefaultFallbackDensity is the share of job tokens a resume has to
	// overlap when the posting mentions no taxonomy term.
	DefaultFallbackDensity = 0.3
	DefaultSeniorityBonus  = 15
	DefaultRoleBonus       = 15

	DefaultStrongFitThreshold   = 80
	DefaultModerateFitThreshold = 60

	DefaultMaxMissingKeywords  = 10
	DefaultMaxBulletRewrites   = 3
	DefaultMinBulletLength     = 20
	DefaultMaxSkillSuggestions = 8
)

type VerdictThresholds struct {
	StrongFit   int `mapstructure:"strong-fit" json:"strongFit" validate:"gte=0,lte=100"`
	ModerateFit int `mapstructure:"moderate-fit" json:"moderateFit" validate:"gte=0,lte=100"`
}

// Config holds the tunable policy of the matcher.
type Config struct {
	KeywordCeiling      float64           `mapstructure:"keyword-ceiling" json:"keywordCeiling" validate:"gt=0,lte=100"`
	FallbackDensity     float64           `mapstructure:"fallback-density" json:"fallbackDensity" validate:"gt=0,lte=1"`
	SeniorityBonus      int               `mapstructure:"seniority-bonus" json:"seniorityBonus" validate:"gte=0,lte=100"`
	RoleBonus           int               `mapstructure:"role-bonus" json:"roleBonus" validate:"gte=0,lte=100"`
	Verdicts            VerdictThresholds `mapstructure:"verdicts" json:"verdicts"`
	MaxMissingKeywords  int               `mapstructure:"max-missing-keywords" json:"maxMissingKeywords" validate:"gte=1"`
	MaxBulletRewrites   int               `mapstructure:"max-bullet-rewrites" json:"maxBulletRewrites" validate:"gte=0"`
	MinBulletLength     int               `mapstructure:"min-bullet-length" json:"minBulletLength" validate:"gte=0"`
	MaxSkillSuggestions int               `mapstructure:"max-skill-suggestions" json:"maxSkillSuggestions" validate:"gte=0"`
}

// DefaultConfig returns the stock matching policy.
func DefaultConfig() Config {
	return Config{
		KeywordCeiling:  DefaultKeywordCeiling,
		FallbackDensity: DefaultFallbackDensity,
		SeniorityBonus:  DefaultSeniorityBonus,
		RoleBonus:       DefaultRoleBonus,
		Verdicts: VerdictThresholds{
			StrongFit:   DefaultStrongFitThreshold,
			ModerateFit: DefaultModerateFitThreshold,
		},
		MaxMissingKeywords:  DefaultMaxMissingKeywords,
		MaxBulletRewrites:   DefaultMaxBulletRewrites,
		MinBulletLength:     DefaultMinBulletLength,
		MaxSkillSuggestions: DefaultMaxSkillSuggestions,
	}
}

var validate = validator.New()

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("matching config: %w", err)
	}

	if c.Verdicts.StrongFit <= c.Verdicts.ModerateFit {
		return fmt.Errorf("matching config: strong-fit threshold %d must be above moderate-fit %d",
			c.Verdicts.StrongFit, c.Verdicts.ModerateFit)
	}

	return nil
}
