// Package resume defines the canonical resume record consumed by the scoring engine
// together with the adapters that normalize producer documents into it.
package resume

import (
	"time"

	"github.com/google/uuid"
)

// Record is the canonical resume. The scoring engine treats it as read-only.
type Record struct {
	ID             string          `json:"id"`
	Title          string          `json:"title,omitempty"`
	TemplateID     string          `json:"templateId,omitempty"`
	Personal       Personal        `json:"personal"`
	Summary        string          `json:"summary"`
	Skills         []string        `json:"skills"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
	Links          []Link          `json:"links,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type Personal struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

type Experience struct {
	ID        string   `json:"id,omitempty"`
	Company   string   `json:"company"`
	Position  string   `json:"position"`
	Location  string   `json:"location"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Current   bool     `json:"current"`
	Bullets   []string `json:"bullets"`
}

type Education struct {
	ID          string `json:"id,omitempty"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	GPA         string `json:"gpa,omitempty"`
}

type Project struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	Bullets      []string `json:"bullets,omitempty"`
}

type Certification struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	Issuer       string `json:"issuer"`
	Date         string `json:"date,omitempty"`
	ExpiryDate   string `json:"expiryDate,omitempty"`
	CredentialID string `json:"credentialId,omitempty"`
	URL          string `json:"url,omitempty"`
}

type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// New returns an empty record with a fresh identifier and timestamps.
func New() *Record {
	now := time.Now().UTC()
	return &Record{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch marks the record as modified.
func (r *Record) Touch() {
	r.UpdatedAt = time.Now().UTC()
}

// Positions returns the position titles of all experience entries.
func (r *Record) Positions() []string {
	positions := make([]string, 0, len(r.Experience))
	for _, exp := range r.Experience {
		positions = append(positions, exp.Position)
	}
	return positions
}

// Bullets returns every experience bullet in record order.
func (r *Record) Bullets() []string {
	var bullets []string
	for _, exp := range r.Experience {
		bullets = append(bullets, exp.Bullets...)
	}
	return bullets
}
