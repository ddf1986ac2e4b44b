package matching

import (
	"time"

	"github.com/spigell/resume-scorer/internal/taxonomy"
)

type Verdict string

const (
	StrongFit   Verdict = "strong-fit"
	ModerateFit Verdict = "moderate-fit"
	LowFit      Verdict = "low-fit"
)

const (
	ReasonStrongFit   = "Excellent match with strong keyword alignment and relevant experience"
	ReasonModerateFit = "Good foundation with some gaps that can be addressed"
	ReasonLowFit      = "Limited alignment with job requirements"
)

type SkillAction string

const (
	ActionAdd     SkillAction = "add"
	ActionRemove  SkillAction = "remove"
	ActionReorder SkillAction = "reorder"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Job is the posting a resume is matched against. Only Text is scored.
type Job struct {
	ID      string `json:"id,omitempty"`
	Title   string `json:"title,omitempty"`
	Company string `json:"company,omitempty"`
	Text    string `json:"text"`
}

type MissingKeyword struct {
	Keyword    string            `json:"keyword"`
	Importance float64           `json:"importance"`
	Category   taxonomy.Category `json:"category"`
}

type SummaryRewrite struct {
	Variant int    `json:"variant"`
	Text    string `json:"text"`
	Focus   string `json:"focus"`
}

type BulletRewrite struct {
	Original    string `json:"originalBullet"`
	Rewritten   string `json:"rewrittenBullet"`
	Improvement string `json:"improvement"`
}

type SkillSuggestion struct {
	Action        SkillAction `json:"action"`
	Skill         string      `json:"skill"`
	Justification string      `json:"justification"`
	Priority      Priority    `json:"priority"`
}

// Result is a point-in-time match assessment.
type Result struct {
	ScanID           string            `json:"scanId"`
	ResumeID         string            `json:"resumeId"`
	JobID            string            `json:"jobId"`
	JobTitle         string            `json:"jobTitle,omitempty"`
	Company          string            `json:"company,omitempty"`
	MatchScore       int               `json:"matchScore"`
	Verdict          Verdict           `json:"verdict"`
	VerdictReason    string            `json:"verdictReason"`
	MatchedKeywords  []string          `json:"matchedKeywords"`
	MissingKeywords  []MissingKeyword  `json:"missingKeywords"`
	SummaryRewrites  []SummaryRewrite  `json:"summaryRewrites"`
	BulletRewrites   []BulletRewrite   `json:"bulletRewrites"`
	SkillSuggestions []SkillSuggestion `json:"skillSuggestions"`
	CreatedAt        time.Time         `json:"createdAt"`
}
