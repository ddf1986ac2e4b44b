// Package taxonomy holds the keyword vocabulary that resumes and job postings are matched against.
package taxonomy

import (
	"strings"
)

// Category classifies a taxonomy keyword.
type Category string

const (
	HardSkill     Category = "hard-skill"
	SoftSkill     Category = "soft-skill"
	Tool          Category = "tool"
	Certification Category = "certification"
)

// Categories lists every category in matching order.
var Categories = []Category{HardSkill, SoftSkill, Tool, Certification}

// Keyword is a single taxonomy term together with its category.
type Keyword struct {
	Term     string   `json:"term"`
	Category Category `json:"category"`
}

// Lists groups raw terms per category. It is also the shape of the
// taxonomy section in the configuration file.
type Lists struct {
	HardSkills     []string `mapstructure:"hard-skills" json:"hardSkills,omitempty"`
	SoftSkills     []string `mapstructure:"soft-skills" json:"softSkills,omitempty"`
	Tools          []string `mapstructure:"tools" json:"tools,omitempty"`
	Certifications []string `mapstructure:"certifications" json:"certifications,omitempty"`
}

// Taxonomy is an immutable set of keyword lists. It is safe for concurrent use.
type Taxonomy struct {
	hard  []string
	soft  []string
	tools []string
	certs []string
}

var defaultLists = Lists{
	HardSkills: []string{
		"JavaScript", "Python", "Java", "React", "Node.js", "TypeScript", "SQL",
		"AWS", "Docker", "Kubernetes", "Git", "MongoDB", "PostgreSQL", "Redis",
		"GraphQL", "REST API", "Machine Learning", "Data Analysis", "HTML", "CSS",
		"Vue.js", "Angular", "Express.js", "Django", "Flask", "Spring Boot", "Laravel",
	},
	SoftSkills: []string{
		"Leadership", "Communication", "Problem Solving", "Team Collaboration",
		"Project Management", "Critical Thinking", "Adaptability", "Time Management",
		"Creativity", "Analytical Thinking", "Attention to Detail", "Customer Service",
		"Negotiation", "Presentation", "Mentoring",
	},
	Tools: []string{
		"GitHub", "GitLab", "Jira", "Confluence", "Slack", "Trello", "Asana",
		"Jenkins", "CircleCI", "Terraform", "Ansible", "Figma", "Adobe Creative Suite",
		"Microsoft Office", "Google Workspace", "Salesforce", "HubSpot", "Tableau",
		"Power BI", "Elasticsearch", "Splunk",
	},
	Certifications: []string{
		"AWS Certified", "Google Cloud", "Azure", "PMP", "Scrum Master", "CISSP",
		"CompTIA", "Salesforce Certified", "Oracle Certified", "Microsoft Certified",
		"Cisco Certified",
	},
}

var defaultTaxonomy = New(defaultLists)

// Default returns the built-in taxonomy shared by every scorer and matcher.
func Default() *Taxonomy {
	return defaultTaxonomy
}

// New builds a taxonomy from the given lists. Blank and duplicate terms
// (compared case-insensitively) are skipped.
func New(lists Lists) *Taxonomy {
	return &Taxonomy{
		hard:  dedupe(nil, lists.HardSkills),
		soft:  dedupe(nil, lists.SoftSkills),
		tools: dedupe(nil, lists.Tools),
		certs: dedupe(nil, lists.Certifications),
	}
}

// Extend returns a new taxonomy containing t's terms followed by the extra
// terms. t itself is left untouched.
func (t *Taxonomy) Extend(extra Lists) *Taxonomy {
	return &Taxonomy{
		hard:  dedupe(t.hard, extra.HardSkills),
		soft:  dedupe(t.soft, extra.SoftSkills),
		tools: dedupe(t.tools, extra.Tools),
		certs: dedupe(t.certs, extra.Certifications),
	}
}

func (t *Taxonomy) HardSkills() []string     { return clone(t.hard) }
func (t *Taxonomy) SoftSkills() []string     { return clone(t.soft) }
func (t *Taxonomy) Tools() []string          { return clone(t.tools) }
func (t *Taxonomy) Certifications() []string { return clone(t.certs) }

// Terms returns the terms of a single category.
func (t *Taxonomy) Terms(c Category) []string {
	switch c {
	case HardSkill:
		return t.HardSkills()
	case SoftSkill:
		return t.SoftSkills()
	case Tool:
		return t.Tools()
	case Certification:
		return t.Certifications()
	default:
		return nil
	}
}

// All returns every keyword ordered by category (hard, soft, tool,
// certification) and then by list position.
func (t *Taxonomy) All() []Keyword {
	all := make([]Keyword, 0, t.Len())
	for _, c := range Categories {
		for _, term := range t.Terms(c) {
			all = append(all, Keyword{Term: term, Category: c})
		}
	}
	return all
}

// Len returns the number of terms across all categories.
func (t *Taxonomy) Len() int {
	return len(t.hard) + len(t.soft) + len(t.tools) + len(t.certs)
}

func dedupe(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	result := make([]string, 0, len(base)+len(extra))

	for _, list := range [][]string{base, extra} {
		for _, term := range list {
			term = strings.TrimSpace(term)
			key := strings.ToLower(term)
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			result = append(result, term)
		}
	}

	return result
}

func clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
