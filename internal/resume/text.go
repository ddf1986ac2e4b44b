package resume

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {}, "you": {},
	"all": {}, "can": {}, "had": {}, "her": {}, "was": {}, "one": {}, "our": {},
	"out": {}, "day": {}, "get": {}, "has": {}, "him": {}, "his": {}, "how": {},
	"man": {}, "new": {}, "now": {}, "old": {}, "see": {}, "two": {}, "way": {},
	"who": {}, "boy": {}, "did": {}, "its": {}, "let": {}, "put": {}, "say": {},
	"she": {}, "too": {}, "use": {}, "with": {}, "this": {}, "that": {}, "from": {},
}

// ExtractText flattens the searchable parts of a record into one lowercase
// string. Missing fields contribute nothing.
func ExtractText(r *Record) string {
	if r == nil {
		return ""
	}

	parts := []string{r.Personal.FullName, r.Personal.Email, r.Summary}
	parts = append(parts, r.Skills...)

	for _, exp := range r.Experience {
		parts = append(parts, exp.Position, exp.Company)
		parts = append(parts, exp.Bullets...)
	}

	for _, edu := range r.Education {
		parts = append(parts, edu.Degree, edu.Field, edu.Institution)
	}

	for _, p := range r.Projects {
		parts = append(parts, p.Name, p.Description)
		parts = append(parts, p.Technologies...)
	}

	for _, c := range r.Certifications {
		parts = append(parts, c.Name, c.Issuer)
	}

	var sb strings.Builder
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(part)
	}

	return strings.ToLower(sb.String())
}

// Tokens is a deduplicated token list kept in first-occurrence order.
type Tokens []string

// Tokenize splits text on non-word characters and returns the distinct
// lowercase tokens longer than two characters that are not stop words.
func Tokenize(text string) Tokens {
	fields := nonWord.Split(strings.ToLower(text), -1)

	seen := make(map[string]struct{}, len(fields))
	tokens := make(Tokens, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) <= 2 {
			continue
		}
		if _, ok := stopWords[f]; ok {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}

	return tokens
}

// Set returns the tokens as a lookup set.
func (t Tokens) Set() map[string]struct{} {
	set := make(map[string]struct{}, len(t))
	for _, token := range t {
		set[token] = struct{}{}
	}
	return set
}
