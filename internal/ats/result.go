package ats

import "time"

// Verdict is the coarse label derived from the overall score.
type Verdict string

const (
	Excellent        Verdict = "excellent"
	Good             Verdict = "good"
	NeedsImprovement Verdict = "needs-improvement"
	Poor             Verdict = "poor"
)

const (
	maxFoundKeywords         = 20
	maxMissingHardSkills     = 10
	maxMissingSoftSkills     = 5
	maxMissingTools          = 5
	maxMissingCertifications = 5
)

type Breakdown struct {
	KeywordMatch        int `json:"keywordMatch"`
	SkillsCoverage      int `json:"skillsCoverage"`
	ExperienceRelevance int `json:"experienceRelevance"`
	Formatting          int `json:"formatting"`
}

// Missing lists taxonomy terms absent from the resume, per category.
type Missing struct {
	HardSkills     []string `json:"hardSkills"`
	SoftSkills     []string `json:"softSkills"`
	Tools          []string `json:"tools"`
	Certifications []string `json:"certifications"`
}

// Result is a point-in-time assessment. It is never modified after it is returned.
type Result struct {
	ScanID          string    `json:"scanId"`
	ResumeID        string    `json:"resumeId,omitempty"`
	FileName        string    `json:"fileName,omitempty"`
	Overall         int       `json:"overall"`
	Breakdown       Breakdown `json:"breakdown"`
	Missing         Missing   `json:"missing"`
	MatchedKeywords []string  `json:"matchedKeywords"`
	Recommendations []string  `json:"recommendations"`
	Verdict         Verdict   `json:"verdict"`
	CreatedAt       time.Time `json:"createdAt"`
}
