package matching

import (
	"strings"

	"github.com/spigell/resume-scorer/internal/resume"
)

const (
	JustificationAdd       = "Mentioned in job requirements - will improve keyword match"
	JustificationReorder   = "Move to top - highly relevant to this role"
	JustificationDuplicate = "Listed more than once - keep a single entry"
)

// skillSuggestions proposes additions for posting terms missing from the
// skills list, promotions for listed skills the posting mentions and removals
// for duplicate entries, in that order.
func (m *Matcher) skillSuggestions(rec *resume.Record, a analysis) []SkillSuggestion {
	suggestions := []SkillSuggestion{}

	listed := make([]string, 0, len(rec.Skills))
	for _, s := range rec.Skills {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			listed = append(listed, s)
		}
	}

	for _, kw := range a.inJob {
		term := strings.ToLower(kw.Term)
		if containsTerm(listed, term) {
			continue
		}
		suggestions = append(suggestions, SkillSuggestion{
			Action:        ActionAdd,
			Skill:         kw.Term,
			Justification: JustificationAdd,
			Priority:      PriorityHigh,
		})
	}

	jobTokens := resume.Tokenize(a.jobText).Set()
	seen := make(map[string]struct{}, len(rec.Skills))
	var duplicates []string

	for _, skill := range rec.Skills {
		key := strings.ToLower(strings.TrimSpace(skill))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			duplicates = append(duplicates, skill)
			continue
		}
		seen[key] = struct{}{}

		if sharesToken(skill, jobTokens) {
			suggestions = append(suggestions, SkillSuggestion{
				Action:        ActionReorder,
				Skill:         skill,
				Justification: JustificationReorder,
				Priority:      PriorityMedium,
			})
		}
	}

	for _, skill := range duplicates {
		suggestions = append(suggestions, SkillSuggestion{
			Action:        ActionRemove,
			Skill:         skill,
			Justification: JustificationDuplicate,
			Priority:      PriorityLow,
		})
	}

	if len(suggestions) > m.cfg.MaxSkillSuggestions {
		suggestions = suggestions[:m.cfg.MaxSkillSuggestions]
	}
	return suggestions
}

func containsTerm(listed []string, term string) bool {
	for _, s := range listed {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

func sharesToken(skill string, jobTokens map[string]struct{}) bool {
	for _, token := range resume.Tokenize(skill) {
		if _, ok := jobTokens[token]; ok {
			return true
		}
	}
	return false
}
