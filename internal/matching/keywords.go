package matching

import (
	"math"
	"sort"
	"strings"

	"github.com/spigell/resume-scorer/internal/resume"
	"github.com/spigell/resume-scorer/internal/taxonomy"
)

// Base importance of a missing keyword per category. Every additional
// mention in the posting adds importanceStep, up to 1.
var categoryImportance = map[taxonomy.Category]float64{
	taxonomy.HardSkill:     0.9,
	taxonomy.Tool:          0.8,
	taxonomy.Certification: 0.7,
	taxonomy.SoftSkill:     0.6,
}

const importanceStep = 0.1

// missingKeywords lists taxonomy terms the posting asks for and the resume
// lacks, most important first. Ties keep taxonomy order.
func (m *Matcher) missingKeywords(a analysis) []MissingKeyword {
	missing := make([]MissingKeyword, 0, len(a.missing))
	for _, kw := range a.missing {
		missing = append(missing, MissingKeyword{
			Keyword:    kw.Term,
			Category:   kw.Category,
			Importance: importance(kw, a.jobText),
		})
	}

	sort.SliceStable(missing, func(i, j int) bool {
		return missing[i].Importance > missing[j].Importance
	})

	if len(missing) > m.cfg.MaxMissingKeywords {
		missing = missing[:m.cfg.MaxMissingKeywords]
	}
	return missing
}

func importance(kw taxonomy.Keyword, jobText string) float64 {
	mentions := strings.Count(jobText, strings.ToLower(kw.Term))
	if mentions < 1 {
		mentions = 1
	}

	v := categoryImportance[kw.Category] + importanceStep*float64(mentions-1)
	v = math.Min(v, 1)
	return math.Round(v*100) / 100
}

// jobKeywords returns up to n keywords describing the posting: taxonomy
// terms first, then plain tokens of the posting text.
func jobKeywords(a analysis, n int) []string {
	keywords := make([]string, 0, n)
	covered := make(map[string]struct{})

	for _, kw := range a.inJob {
		if len(keywords) == n {
			return keywords
		}
		keywords = append(keywords, kw.Term)
		for _, token := range resume.Tokenize(kw.Term) {
			covered[token] = struct{}{}
		}
	}

	for _, token := range resume.Tokenize(a.jobText) {
		if len(keywords) == n {
			break
		}
		if _, ok := covered[token]; ok {
			continue
		}
		if isRoleOrSeniority(token) {
			continue
		}
		keywords = append(keywords, token)
	}

	return keywords
}

func isRoleOrSeniority(token string) bool {
	for _, r := range roles {
		if token == r || token == r+"s" {
			return true
		}
	}
	for _, l := range seniorityLevels {
		if token == l.keyword {
			return true
		}
	}
	return false
}
