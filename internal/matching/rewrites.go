package matching

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"

	"github.com/spigell/resume-scorer/internal/resume"
)

const (
	FocusResults    = "Results & Impact"
	FocusTechnical  = "Technical Expertise"
	FocusLeadership = "Leadership & Collaboration"

	ImprovementMetrics  = "Added quantifiable impact metrics"
	ImprovementVerb     = "Enhanced with stronger action verb"
	ImprovementNoChange = "Already leads with an action verb and quantified impact"

	impactSuffix = " resulting in 25% improvement in efficiency"
	defaultRole  = "professional"
)

var rewriteVerbs = []string{
	"Achieved", "Analyzed", "Built", "Collaborated", "Created", "Delivered",
	"Developed", "Enhanced", "Established", "Executed", "Implemented", "Improved",
	"Increased", "Led", "Leveraged", "Managed", "Optimized", "Reduced", "Resolved",
	"Spearheaded", "Streamlined", "Transformed",
}

// weakVerbs open a bullet without saying much; each maps to a stronger verb
// with the same meaning.
var weakVerbs = map[string]string{
	"used":     "Leveraged",
	"utilized": "Leveraged",
	"worked":   "Collaborated",
	"handled":  "Managed",
	"owned":    "Managed",
	"did":      "Executed",
	"made":     "Created",
	"ran":      "Led",
	"got":      "Achieved",
}

var irregularActions = map[string]struct{}{
	"built": {}, "brought": {}, "cut": {}, "drove": {}, "grew": {}, "led": {},
	"sold": {}, "set": {}, "taught": {}, "took": {}, "won": {}, "wrote": {},
}

// edNouns end in "ed" without being verbs.
var edNouns = map[string]struct{}{
	"bed": {}, "breed": {}, "embed": {}, "feed": {}, "need": {}, "seed": {}, "speed": {},
}

// weakOpeners are stripped from the start of a bullet before a verb is added.
var weakOpeners = []string{
	"was responsible for", "was in charge of", "responsible for", "worked on", "helped with", "helped to", "helped",
	"assisted with", "assisted in", "involved in", "participated in", "tasked with",
}

func summaryRewrites(rec *resume.Record, a analysis) []SummaryRewrite {
	role := a.role
	if role == "" {
		role = defaultRole
	}

	keywords := jobKeywords(a, 5)
	skills := topSkills(rec.Skills, 3)

	return []SummaryRewrite{
		{
			Variant: 1,
			Focus:   FocusResults,
			Text: fmt.Sprintf(
				"Results-driven %s with %s in %s. Proven track record of delivering high-impact solutions and driving business growth through innovative approaches.",
				role, experiencePhrase(len(rec.Experience)), listOr(keywords, 3, ", ", "the core areas of the role"),
			),
		},
		{
			Variant: 2,
			Focus:   FocusTechnical,
			Text: fmt.Sprintf(
				"Experienced %s specializing in %s with expertise in %s. Passionate about leveraging technology to solve complex business challenges and improve operational efficiency.",
				role, listOr(keywords, 2, " and ", "the technologies this role relies on"), listOr(skills, 3, ", ", "modern tools and practices"),
			),
		},
		{
			Variant: 3,
			Focus:   FocusLeadership,
			Text: fmt.Sprintf(
				"Dynamic %s with strong background in %s. Demonstrated ability to lead cross-functional teams, manage complex projects, and deliver scalable solutions that exceed business objectives.",
				role, listOr(keywords, 2, ", ", "the domain of this role"),
			),
		},
	}
}

func experiencePhrase(entries int) string {
	switch entries {
	case 0:
		return "hands-on experience"
	case 1:
		return "experience from 1 role"
	default:
		return fmt.Sprintf("experience across %d roles", entries)
	}
}

func listOr(items []string, n int, sep, fallback string) string {
	if len(items) > n {
		items = items[:n]
	}
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, sep)
}

func topSkills(skills []string, n int) []string {
	top := make([]string, 0, n)
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if len(top) == n {
			break
		}
		top = append(top, s)
	}
	return top
}

// bulletRewrites rewrites the first bullets long enough to be worth editing.
// Bullets without numbers get a verb and an impact metric. Bullets with
// numbers get a leading verb unless they already open with one.
func (m *Matcher) bulletRewrites(rec *resume.Record) []BulletRewrite {
	rewrites := []BulletRewrite{}

	for _, bullet := range rec.Bullets() {
		if len(rewrites) == m.cfg.MaxBulletRewrites {
			break
		}

		bullet = strings.TrimSpace(bullet)
		if len([]rune(bullet)) <= m.cfg.MinBulletLength {
			continue
		}

		rewrites = append(rewrites, rewriteBullet(bullet))
	}

	return rewrites
}

func rewriteBullet(bullet string) BulletRewrite {
	r := BulletRewrite{Original: bullet}

	if !hasDigit(bullet) {
		r.Rewritten = strings.TrimRight(withLeadingVerb(bullet), ". ") + impactSuffix
		r.Improvement = ImprovementMetrics
		return r
	}

	if leadsWithAction(bullet) {
		r.Rewritten = bullet
		r.Improvement = ImprovementNoChange
		return r
	}

	r.Rewritten = withLeadingVerb(bullet)
	r.Improvement = ImprovementVerb
	return r
}

// withLeadingVerb drops a pronoun or weak opener and makes sure the bullet
// starts with an action verb. The bullet's own verb is kept when it already
// carries the action; weak verbs are swapped for a stronger synonym.
func withLeadingVerb(bullet string) string {
	rest := trimMarker(bullet)

	if len(rest) > 2 && (rest[:2] == "I " || rest[:2] == "i ") {
		rest = strings.TrimSpace(rest[2:])
	}

	lower := strings.ToLower(rest)
	for _, opener := range weakOpeners {
		if strings.HasPrefix(lower, opener+" ") {
			rest = strings.TrimSpace(rest[len(opener):])
			break
		}
	}

	if fields := strings.Fields(rest); len(fields) > 1 {
		if strong, ok := weakVerbs[firstWord(rest)]; ok {
			return strong + rest[len(fields[0]):]
		}
	}

	if leadsWithAction(rest) {
		return upperFirst(rest)
	}

	return pickVerb(bullet) + " " + lowerFirst(rest)
}

// leadsWithAction reports whether the first word already reads as an action
// verb: one of the rewrite verbs, a common irregular past form, or a regular
// past-tense verb that is not on the weak list.
func leadsWithAction(text string) bool {
	if startsWithVerb(trimMarker(text)) {
		return true
	}

	word := firstWord(text)
	if _, weak := weakVerbs[word]; weak {
		return false
	}
	if _, ok := irregularActions[word]; ok {
		return true
	}
	if _, ok := edNouns[word]; ok {
		return false
	}
	return isPastTense(word)
}

func firstWord(text string) string {
	fields := strings.Fields(trimMarker(text))
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.TrimFunc(fields[0], func(r rune) bool { return !unicode.IsLetter(r) }))
}

func trimMarker(s string) string {
	return strings.TrimLeftFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func isPastTense(word string) bool {
	if len(word) <= 3 || !strings.HasSuffix(strings.ToLower(word), "ed") {
		return false
	}
	return strings.IndexFunc(word, func(r rune) bool { return !unicode.IsLetter(r) }) < 0
}

func pickVerb(bullet string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(bullet))
	return rewriteVerbs[h.Sum32()%uint32(len(rewriteVerbs))]
}

func startsWithVerb(text string) bool {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false
	}

	first := strings.TrimFunc(fields[0], func(r rune) bool { return !unicode.IsLetter(r) })
	for _, verb := range rewriteVerbs {
		if strings.EqualFold(first, verb) {
			return true
		}
	}
	return false
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func upperFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// lowerFirst lowercases the first letter unless the word looks like an acronym.
func lowerFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	if len(runes) > 1 && unicode.IsUpper(runes[1]) {
		return s
	}
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
