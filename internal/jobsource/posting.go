// Package jobsource loads job postings from files, stdin, web pages and the
// HeadHunter API.
package jobsource

import (
	"strings"

	"github.com/spigell/resume-scorer/internal/matching"
)

// Posting is a job posting reduced to what the matcher needs.
type Posting struct {
	ID      string `json:"id,omitempty" yaml:"id" mapstructure:"id"`
	Title   string `json:"title,omitempty" yaml:"title" mapstructure:"title"`
	Company string `json:"company,omitempty" yaml:"company" mapstructure:"company"`
	URL     string `json:"url,omitempty" yaml:"url" mapstructure:"url"`
	Text    string `json:"description" yaml:"description" mapstructure:"description"`
	// Source is the reference the posting was loaded from.
	Source string `json:"source,omitempty" yaml:"-" mapstructure:"-"`
}

// Job converts the posting into matcher input.
func (p Posting) Job() matching.Job {
	return matching.Job{
		ID:      p.ID,
		Title:   p.Title,
		Company: p.Company,
		Text:    p.Text,
	}
}

// Key identifies a posting for duplicate detection: the URL when known,
// otherwise the lowercased title and company.
func (p Posting) Key() string {
	if u := strings.TrimSpace(p.URL); u != "" {
		return strings.ToLower(strings.TrimRight(u, "/"))
	}
	if p.Title == "" && p.Company == "" {
		return strings.ToLower(strings.TrimSpace(p.ID))
	}
	return strings.ToLower(strings.TrimSpace(p.Title) + "|" + strings.TrimSpace(p.Company))
}
