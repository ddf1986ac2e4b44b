// Package ats estimates how well a resume would pass an applicant tracking system.
package ats

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spigell/resume-scorer/internal/resume"
	"github.com/spigell/resume-scorer/internal/taxonomy"
)

// Scorer computes ATS scores. It holds no mutable state and is safe for
// concurrent use.
type Scorer struct {
	cfg   Config
	tax   *taxonomy.Taxonomy
	now   func() time.Time
	newID func() string
}

type Option func(*Scorer)

// WithClock overrides the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) { s.now = now }
}

// WithIDGenerator overrides the scan identifier generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Scorer) { s.newID = newID }
}

// NewScorer validates cfg and returns a scorer. A nil taxonomy selects the default one.
func NewScorer(cfg Config, tax *taxonomy.Taxonomy, opts ...Option) (*Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if tax == nil {
		tax = taxonomy.Default()
	}

	s := &Scorer{
		cfg:   cfg,
		tax:   tax,
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return "scan-" + uuid.NewString() },
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// ScoreResume scores a structured resume. The record is not modified.
func (s *Scorer) ScoreResume(rec *resume.Record) (*Result, error) {
	if rec == nil {
		return nil, resume.Invalid("resume", "is required")
	}

	text := resume.ExtractText(rec)
	keywords := s.keywordMatch(text)
	skills := s.skillsCoverage(func(term string) bool {
		return skillListCovers(rec.Skills, term)
	})

	breakdown := Breakdown{
		KeywordMatch:        keywords.score,
		SkillsCoverage:      skills.score,
		ExperienceRelevance: experienceRelevance(rec),
		Formatting:          formatting(rec),
	}

	result := s.finish(breakdown, keywords, skills, text)
	result.ResumeID = rec.ID

	return result, nil
}

// ScoreResumeText scores plain text extracted from an uploaded file. It uses
// heuristics in place of structure, so its scores are an approximation of
// ScoreResume's.
func (s *Scorer) ScoreResumeText(text, fileName string) *Result {
	lower := strings.ToLower(text)
	keywords := s.keywordMatch(lower)
	skills := s.skillsCoverage(func(term string) bool {
		return textCovers(lower, term)
	})

	words := len(strings.Fields(text))
	breakdown := Breakdown{
		KeywordMatch:        keywords.score,
		SkillsCoverage:      skills.score,
		ExperienceRelevance: textExperienceRelevance(text, words),
		Formatting:          textFormatting(text, words),
	}

	result := s.finish(breakdown, keywords, skills, lower)
	result.FileName = fileName

	return result
}

func (s *Scorer) finish(b Breakdown, keywords keywordAnalysis, skills skillsAnalysis, text string) *Result {
	overall := s.overall(b)

	return &Result{
		ScanID:    s.newID(),
		Overall:   overall,
		Breakdown: b,
		Missing: Missing{
			HardSkills:     limit(keywords.missingHard, maxMissingHardSkills),
			SoftSkills:     limit(skills.missingSoft, maxMissingSoftSkills),
			Tools:          limit(keywords.missingTools, maxMissingTools),
			Certifications: limit(s.missingCertifications(text), maxMissingCertifications),
		},
		MatchedKeywords: limit(keywords.found, maxFoundKeywords),
		Recommendations: s.recommendations(b, overall),
		Verdict:         s.Verdict(overall),
		CreatedAt:       s.now(),
	}
}

func (s *Scorer) overall(b Breakdown) int {
	w := s.cfg.Weights
	total := float64(b.KeywordMatch)*w.KeywordMatch +
		float64(b.SkillsCoverage)*w.SkillsCoverage +
		float64(b.ExperienceRelevance)*w.ExperienceRelevance +
		float64(b.Formatting)*w.Formatting

	return clamp(int(math.Round(total)))
}

// Verdict maps an overall score onto its label. Thresholds are inclusive lower bounds.
func (s *Scorer) Verdict(overall int) Verdict {
	v := s.cfg.Verdicts
	switch {
	case overall >= v.Excellent:
		return Excellent
	case overall >= v.Good:
		return Good
	case overall >= v.NeedsImprovement:
		return NeedsImprovement
	default:
		return Poor
	}
}

type keywordAnalysis struct {
	score        int
	found        []string
	missingHard  []string
	missingTools []string
}

// keywordMatch counts hard skills and tools mentioned anywhere in the lowercase text.
func (s *Scorer) keywordMatch(text string) keywordAnalysis {
	var a keywordAnalysis
	total := 0

	for _, c := range []taxonomy.Category{taxonomy.HardSkill, taxonomy.Tool} {
		for _, term := range s.tax.Terms(c) {
			total++
			if strings.Contains(text, strings.ToLower(term)) {
				a.found = append(a.found, term)
				continue
			}
			if c == taxonomy.HardSkill {
				a.missingHard = append(a.missingHard, term)
			} else {
				a.missingTools = append(a.missingTools, term)
			}
		}
	}

	a.score = densityScore(len(a.found), total, s.cfg.KeywordDensity)
	return a
}

type skillsAnalysis struct {
	score       int
	missingSoft []string
}

func (s *Scorer) skillsCoverage(covered func(term string) bool) skillsAnalysis {
	var a skillsAnalysis
	found, total := 0, 0

	for _, c := range []taxonomy.Category{taxonomy.HardSkill, taxonomy.SoftSkill} {
		for _, term := range s.tax.Terms(c) {
			total++
			if covered(strings.ToLower(term)) {
				found++
				continue
			}
			if c == taxonomy.SoftSkill {
				a.missingSoft = append(a.missingSoft, term)
			}
		}
	}

	a.score = densityScore(found, total, s.cfg.SkillsDensity)
	return a
}

func (s *Scorer) missingCertifications(text string) []string {
	var missing []string
	for _, term := range s.tax.Certifications() {
		if !strings.Contains(text, strings.ToLower(term)) {
			missing = append(missing, term)
		}
	}
	return missing
}

// skillListCovers applies bidirectional containment between the lowercase
// term and every non-blank resume skill.
func skillListCovers(skills []string, term string) bool {
	for _, skill := range skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill == "" {
			continue
		}
		if strings.Contains(skill, term) || strings.Contains(term, skill) {
			return true
		}
	}
	return false
}

func textCovers(text, term string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	return strings.Contains(text, term) || strings.Contains(term, text)
}

func densityScore(found, total int, density float64) int {
	denominator := math.Max(float64(total)*density, 1)
	return clamp(int(math.Round(float64(found) / denominator * 100)))
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func limit(in []string, n int) []string {
	if len(in) > n {
		in = in[:n]
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
