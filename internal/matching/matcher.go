// Package matching scores a resume against a job posting and drafts
// suggestions for closing the gaps.
package matching

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spigell/resume-scorer/internal/resume"
	"github.com/spigell/resume-scorer/internal/taxonomy"
)

const defaultSeniority = 4

// seniorityLevels is checked in order; the first keyword found wins.
var seniorityLevels = []struct {
	keyword string
	level   int
}{
	{"intern", 1},
	{"junior", 2},
	{"associate", 3},
	{"mid", 4},
	{"senior", 5},
	{"lead", 6},
	{"principal", 7},
	{"staff", 7},
	{"manager", 6},
	{"director", 8},
}

var roles = []string{"engineer", "developer", "designer", "manager", "analyst", "consultant", "specialist"}

// Matcher compares resumes with job postings. It holds no mutable state and
// is safe for concurrent use.
type Matcher struct {
	cfg      Config
	tax      *taxonomy.Taxonomy
	keywords []taxonomy.Keyword
	now      func() time.Time
	newID    func(prefix string) string
}

type Option func(*Matcher)

// WithClock overrides the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(m *Matcher) { m.now = now }
}

// WithIDGenerator overrides how scan and job identifiers are generated.
func WithIDGenerator(newID func(prefix string) string) Option {
	return func(m *Matcher) { m.newID = newID }
}

// NewMatcher validates cfg and returns a matcher. A nil taxonomy selects the default one.
func NewMatcher(cfg Config, tax *taxonomy.Taxonomy, opts ...Option) (*Matcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if tax == nil {
		tax = taxonomy.Default()
	}

	m := &Matcher{
		cfg:      cfg,
		tax:      tax,
		keywords: tax.All(),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func(prefix string) string { return prefix + "-" + uuid.NewString() },
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// MatchResumeToJob scores rec against the job posting. The record is not modified.
func (m *Matcher) MatchResumeToJob(rec *resume.Record, job Job) (*Result, error) {
	if rec == nil {
		return nil, resume.Invalid("resume", "is required")
	}

	a := m.analyze(rec, job.Text)
	score := m.score(a, rec)
	verdict, reason := m.Verdict(score)

	jobID := strings.TrimSpace(job.ID)
	if jobID == "" {
		jobID = m.newID("job")
	}

	return &Result{
		ScanID:           m.newID("match"),
		ResumeID:         rec.ID,
		JobID:            jobID,
		JobTitle:         job.Title,
		Company:          job.Company,
		MatchScore:       score,
		Verdict:          verdict,
		VerdictReason:    reason,
		MatchedKeywords:  a.matched,
		MissingKeywords:  m.missingKeywords(a),
		SummaryRewrites:  summaryRewrites(rec, a),
		BulletRewrites:   m.bulletRewrites(rec),
		SkillSuggestions: m.skillSuggestions(rec, a),
		CreatedAt:        m.now(),
	}, nil
}

// Verdict maps a match score onto its label and reason.
func (m *Matcher) Verdict(score int) (Verdict, string) {
	switch {
	case score >= m.cfg.Verdicts.StrongFit:
		return StrongFit, ReasonStrongFit
	case score >= m.cfg.Verdicts.ModerateFit:
		return ModerateFit, ReasonModerateFit
	default:
		return LowFit, ReasonLowFit
	}
}

// analysis is the shared view of a resume and a posting used by every part of the result.
type analysis struct {
	resumeText string
	jobText    string
	// inJob lists taxonomy keywords mentioned by the posting, in taxonomy order.
	inJob   []taxonomy.Keyword
	matched []string
	missing []taxonomy.Keyword
	role    string
}

func (m *Matcher) analyze(rec *resume.Record, jobText string) analysis {
	a := analysis{
		resumeText: resume.ExtractText(rec),
		jobText:    strings.ToLower(jobText),
		matched:    []string{},
	}

	for _, kw := range m.keywords {
		term := strings.ToLower(kw.Term)
		if !strings.Contains(a.jobText, term) {
			continue
		}
		a.inJob = append(a.inJob, kw)
		if strings.Contains(a.resumeText, term) {
			a.matched = append(a.matched, kw.Term)
		} else {
			a.missing = append(a.missing, kw)
		}
	}

	a.role = detectRole(a.jobText)
	return a
}

func (m *Matcher) score(a analysis, rec *resume.Record) int {
	var keywordScore float64
	if len(a.inJob) > 0 {
		keywordScore = float64(len(a.matched)) / float64(len(a.inJob)) * m.cfg.KeywordCeiling
	} else {
		keywordScore = m.overlapScore(a)
	}

	bonus := 0
	positions := strings.ToLower(strings.Join(rec.Positions(), " "))
	if seniority(a.jobText) <= seniority(positions) {
		bonus += m.cfg.SeniorityBonus
	}
	if a.role != "" && holdsRole(rec.Positions(), a.role) {
		bonus += m.cfg.RoleBonus
	}

	score := int(math.Round(keywordScore + float64(bonus)))
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// overlapScore is used for generic postings that mention no taxonomy term.
func (m *Matcher) overlapScore(a analysis) float64 {
	jobTokens := resume.Tokenize(a.jobText)

	overlap := 0
	for _, rt := range resume.Tokenize(a.resumeText) {
		for _, jt := range jobTokens {
			if strings.Contains(rt, jt) || strings.Contains(jt, rt) {
				overlap++
				break
			}
		}
	}

	denominator := math.Max(float64(len(jobTokens))*m.cfg.FallbackDensity, 1)
	return math.Min(float64(overlap)/denominator*m.cfg.KeywordCeiling, m.cfg.KeywordCeiling)
}

func seniority(text string) int {
	for _, l := range seniorityLevels {
		if strings.Contains(text, l.keyword) {
			return l.level
		}
	}
	return defaultSeniority
}

func detectRole(jobText string) string {
	for _, role := range roles {
		if strings.Contains(jobText, role) {
			return role
		}
	}
	return ""
}

func holdsRole(positions []string, role string) bool {
	for _, p := range positions {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if strings.Contains(p, role) || strings.Contains(role, p) {
			return true
		}
	}
	return false
}
