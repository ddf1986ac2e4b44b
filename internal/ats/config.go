package ats

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultKeywordWeight    = 0.35
	DefaultSkillsWeight     = 0.30
	DefaultExperienceWeight = 0.25
	DefaultFormattingWeight = 0.10

	// DefaultKeywordDensity is the share of the hard-skill and tool vocabulary
	// a resume has to mention to reach a full keyword score.
	DefaultKeywordDensity = 0.4
	// DefaultSkillsDensity is the share of hard and soft skills the skills
	// list has to cover to reach a full coverage score.
	DefaultSkillsDensity = 0.3

	DefaultExcellentThreshold        = 85
	DefaultGoodThreshold             = 70
	DefaultNeedsImprovementThreshold = 50
)

// Weights sets how much each sub-score contributes to the overall score.
type Weights struct {
	KeywordMatch        float64 `mapstructure:"keyword-match" json:"keywordMatch" validate:"gte=0,lte=1"`
	SkillsCoverage      float64 `mapstructure:"skills-coverage" json:"skillsCoverage" validate:"gte=0,lte=1"`
	ExperienceRelevance float64 `mapstructure:"experience-relevance" json:"experienceRelevance" validate:"gte=0,lte=1"`
	Formatting          float64 `mapstructure:"formatting" json:"formatting" validate:"gte=0,lte=1"`
}

// VerdictThresholds are inclusive lower bounds of each verdict.
type VerdictThresholds struct {
	Excellent        int `mapstructure:"excellent" json:"excellent" validate:"gte=0,lte=100"`
	Good             int `mapstructure:"good" json:"good" validate:"gte=0,lte=100"`
	NeedsImprovement int `mapstructure:"needs-improvement" json:"needsImprovement" validate:"gte=0,lte=100"`
}

// RecommendationThresholds trigger a recommendation when a score is below them.
type RecommendationThresholds struct {
	KeywordMatch        int `mapstructure:"keyword-match" json:"keywordMatch" validate:"gte=0,lte=100"`
	SkillsCoverage      int `mapstructure:"skills-coverage" json:"skillsCoverage" validate:"gte=0,lte=100"`
	ExperienceRelevance int `mapstructure:"experience-relevance" json:"experienceRelevance" validate:"gte=0,lte=100"`
	Formatting          int `mapstructure:"formatting" json:"formatting" validate:"gte=0,lte=100"`
	Overall             int `mapstructure:"overall" json:"overall" validate:"gte=0,lte=100"`
}

// Config holds the tunable policy of the scorer.
type Config struct {
	Weights         Weights                  `mapstructure:"weights" json:"weights"`
	KeywordDensity  float64                  `mapstructure:"keyword-density" json:"keywordDensity" validate:"gt=0,lte=1"`
	SkillsDensity   float64                  `mapstructure:"skills-density" json:"skillsDensity" validate:"gt=0,lte=1"`
	Verdicts        VerdictThresholds        `mapstructure:"verdicts" json:"verdicts"`
	Recommendations RecommendationThresholds `mapstructure:"recommendations" json:"recommendations"`
}

// DefaultConfig returns the stock scoring policy.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			KeywordMatch:        DefaultKeywordWeight,
			SkillsCoverage:      DefaultSkillsWeight,
			ExperienceRelevance: DefaultExperienceWeight,
			Formatting:          DefaultFormattingWeight,
		},
		KeywordDensity: DefaultKeywordDensity,
		SkillsDensity:  DefaultSkillsDensity,
		Verdicts: VerdictThresholds{
			Excellent:        DefaultExcellentThreshold,
			Good:             DefaultGoodThreshold,
			NeedsImprovement: DefaultNeedsImprovementThreshold,
		},
		Recommendations: RecommendationThresholds{
			KeywordMatch:        60,
			SkillsCoverage:      70,
			ExperienceRelevance: 70,
			Formatting:          80,
			Overall:             70,
		},
	}
}

var validate = validator.New()

// Validate checks field ranges and the relations between fields.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("scoring config: %w", err)
	}

	w := c.Weights
	sum := w.KeywordMatch + w.SkillsCoverage + w.ExperienceRelevance + w.Formatting
	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("scoring config: weights must sum to 1, got %.4f", sum)
	}

	v := c.Verdicts
	if !(v.Excellent > v.Good && v.Good > v.NeedsImprovement) {
		return fmt.Errorf("scoring config: verdict thresholds must be strictly descending, got %d/%d/%d",
			v.Excellent, v.Good, v.NeedsImprovement)
	}

	return nil
}
