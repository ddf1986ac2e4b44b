package ats

import (
	"regexp"
	"strings"
)

var quantifiedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+(\.\d+)?\s*%`),
	regexp.MustCompile(`(?i)\b\d+\+?\s*(years?|months?|weeks?|days?|hours?)\b`),
	regexp.MustCompile(`(?i)\b\d+(\.\d+)?\s*(k|m|b|million|billion)\b`),
	regexp.MustCompile(`(?i)\b\d[\d,]*\+?\s*(users|customers|clients|people|employees|members)\b`),
	regexp.MustCompile(`\$\s?\d[\d,]*(\.\d+)?`),
	regexp.MustCompile(`(?i)\b\d+(\.\d+)?x\b`),
}

var phonePattern = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)

var actionVerbs = []string{
	"led", "managed", "developed", "implemented", "created", "improved",
	"increased", "reduced", "optimized", "designed", "built", "launched",
	"achieved", "delivered", "executed", "coordinated", "supervised",
}

var leadershipWords = []string{"team", "lead", "manage", "supervise", "mentor", "train"}

var (
	actionVerbWord     = wordPattern(actionVerbs)
	leadershipWordStem = regexp.MustCompile(`(?i)\b(` + strings.Join(leadershipWords, "|") + `)`)
)

func wordPattern(words []string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(` + strings.Join(words, "|") + `)\b`)
}

func isQuantified(text string) bool {
	for _, re := range quantifiedPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// containsAny reports whether the lowercase text contains any of the words as a substring.
func containsAny(text string, words []string) bool {
	text = strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
