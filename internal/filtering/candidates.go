package filtering

import (
	"fmt"
	"strconv"

	"github.com/spigell/resume-scorer/internal/jobsource"
	"github.com/spigell/resume-scorer/internal/matching"
)

// Candidate is a posting together with the match result of the resume against it.
type Candidate struct {
	Posting jobsource.Posting `json:"posting"`
	Result  *matching.Result  `json:"result"`
}

// ID returns the posting identifier, falling back to the result's job ID.
func (c *Candidate) ID() string {
	if c.Posting.ID != "" {
		return c.Posting.ID
	}
	if c.Result != nil {
		return c.Result.JobID
	}
	return ""
}

// Score returns the match score, or -1 for a candidate that was never matched.
func (c *Candidate) Score() int {
	if c.Result == nil {
		return -1
	}
	return c.Result.MatchScore
}

type Candidates struct {
	Items []*Candidate
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

// Exclude drops every candidate matching drop and returns their IDs. Order is preserved.
func (c *Candidates) Exclude(drop func(*Candidate) bool) []string {
	var excluded []string
	kept := c.Items[:0]
	for _, candidate := range c.Items {
		if drop(candidate) {
			excluded = append(excluded, candidate.ID())
			continue
		}
		kept = append(kept, candidate)
	}

	for i := len(kept); i < len(c.Items); i++ {
		c.Items[i] = nil
	}
	c.Items = kept

	return excluded
}

// ReportByCompany groups candidates per company for a compact summary.
func (c *Candidates) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, candidate := range c.Items {
		company := candidate.Posting.Company
		if company == "" {
			company = "unknown company"
		}

		entry := map[string]string{
			"title":  candidate.Posting.Title,
			"url":    candidate.Posting.URL,
			"source": candidate.Posting.Source,
			"score":  strconv.Itoa(candidate.Score()),
		}
		if candidate.Result != nil {
			entry["verdict"] = string(candidate.Result.Verdict)
			entry["missing"] = fmt.Sprintf("%d keywords", len(candidate.Result.MissingKeywords))
		}

		report[company] = append(report[company], entry)
	}
	return report
}
