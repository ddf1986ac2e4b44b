package resume

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
)

// raw mirrors the loosely-typed documents produced by forms and file
// importers. Alternate spellings of the same field are all captured and
// resolved by canonical().
type raw struct {
	ID         string      `mapstructure:"id"`
	Title      string      `mapstructure:"title"`
	TemplateID string      `mapstructure:"templateId"`
	Personal   rawPersonal `mapstructure:"personal"`
	Summary    string      `mapstructure:"summary"`
	Skills     []string    `mapstructure:"skills"`

	Experience     []rawExperience    `mapstructure:"experience"`
	Education      []rawEducation     `mapstructure:"education"`
	Projects       []rawProject       `mapstructure:"projects"`
	Certifications []rawCertification `mapstructure:"certifications"`
	Links          []rawLink          `mapstructure:"links"`

	CreatedAt time.Time `mapstructure:"createdAt"`
	UpdatedAt time.Time `mapstructure:"updatedAt"`
}

type rawPersonal struct {
	FullName string `mapstructure:"fullName"`
	Name     string `mapstructure:"name"`
	Email    string `mapstructure:"email"`
	Phone    string `mapstructure:"phone"`
	Location string `mapstructure:"location"`
	Website  string `mapstructure:"website"`
	LinkedIn string `mapstructure:"linkedin"`
	GitHub   string `mapstructure:"github"`
}

type rawExperience struct {
	ID        string   `mapstructure:"id"`
	Company   string   `mapstructure:"company"`
	Position  string   `mapstructure:"position"`
	Title     string   `mapstructure:"title"`
	Location  string   `mapstructure:"location"`
	StartDate string   `mapstructure:"startDate"`
	EndDate   string   `mapstructure:"endDate"`
	Current   bool     `mapstructure:"current"`
	Bullets   []string `mapstructure:"bullets"`
}

type rawEducation struct {
	ID             string `mapstructure:"id"`
	Institution    string `mapstructure:"institution"`
	School         string `mapstructure:"school"`
	Degree         string `mapstructure:"degree"`
	Field          string `mapstructure:"field"`
	Location       string `mapstructure:"location"`
	StartDate      string `mapstructure:"startDate"`
	EndDate        string `mapstructure:"endDate"`
	GraduationDate string `mapstructure:"graduationDate"`
	GPA            string `mapstructure:"gpa"`
}

type rawProject struct {
	ID           string   `mapstructure:"id"`
	Name         string   `mapstructure:"name"`
	Description  string   `mapstructure:"description"`
	Technologies []string `mapstructure:"technologies"`
	Link         string   `mapstructure:"link"`
	URL          string   `mapstructure:"url"`
	StartDate    string   `mapstructure:"startDate"`
	EndDate      string   `mapstructure:"endDate"`
	Bullets      []string `mapstructure:"bullets"`
}

type rawCertification struct {
	ID           string `mapstructure:"id"`
	Name         string `mapstructure:"name"`
	Issuer       string `mapstructure:"issuer"`
	Date         string `mapstructure:"date"`
	ExpiryDate   string `mapstructure:"expiryDate"`
	CredentialID string `mapstructure:"credentialId"`
	URL          string `mapstructure:"url"`
}

type rawLink struct {
	Label string `mapstructure:"label"`
	URL   string `mapstructure:"url"`
}

// FromMap normalizes a decoded producer document into a Record. Alternate
// field names (school, graduationDate, link, title, name) are mapped onto
// the canonical ones and a missing id is generated.
func FromMap(doc map[string]any) (*Record, error) {
	if doc == nil {
		return nil, Invalid("", "resume document is required")
	}

	var r raw
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &r,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToFlag,
			timeToDateString,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("building resume decoder: %w", err)
	}

	if err := decoder.Decode(doc); err != nil {
		return nil, Invalid("", "decoding resume: %v", err)
	}

	return r.canonical(), nil
}

func (r *raw) canonical() *Record {
	rec := &Record{
		ID:         strings.TrimSpace(r.ID),
		Title:      r.Title,
		TemplateID: r.TemplateID,
		Personal: Personal{
			FullName: firstNonEmpty(r.Personal.FullName, r.Personal.Name),
			Email:    r.Personal.Email,
			Phone:    r.Personal.Phone,
			Location: r.Personal.Location,
			Website:  r.Personal.Website,
			LinkedIn: r.Personal.LinkedIn,
			GitHub:   r.Personal.GitHub,
		},
		Summary:   r.Summary,
		Skills:    nonNil(r.Skills),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = rec.CreatedAt
	}

	rec.Experience = make([]Experience, 0, len(r.Experience))
	for _, e := range r.Experience {
		rec.Experience = append(rec.Experience, Experience{
			ID:        e.ID,
			Company:   e.Company,
			Position:  firstNonEmpty(e.Position, e.Title),
			Location:  e.Location,
			StartDate: e.StartDate,
			EndDate:   e.EndDate,
			Current:   e.Current,
			Bullets:   nonNil(e.Bullets),
		})
	}

	rec.Education = make([]Education, 0, len(r.Education))
	for _, e := range r.Education {
		rec.Education = append(rec.Education, Education{
			ID:          e.ID,
			Institution: firstNonEmpty(e.Institution, e.School),
			Degree:      e.Degree,
			Field:       e.Field,
			Location:    e.Location,
			StartDate:   e.StartDate,
			EndDate:     firstNonEmpty(e.EndDate, e.GraduationDate),
			GPA:         e.GPA,
		})
	}

	rec.Projects = make([]Project, 0, len(r.Projects))
	for _, p := range r.Projects {
		rec.Projects = append(rec.Projects, Project{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			Technologies: nonNil(p.Technologies),
			URL:          firstNonEmpty(p.URL, p.Link),
			StartDate:    p.StartDate,
			EndDate:      p.EndDate,
			Bullets:      p.Bullets,
		})
	}

	rec.Certifications = make([]Certification, 0, len(r.Certifications))
	for _, c := range r.Certifications {
		rec.Certifications = append(rec.Certifications, Certification(c))
	}

	for _, l := range r.Links {
		rec.Links = append(rec.Links, Link(l))
	}

	return rec
}

// timeToDateString keeps YAML timestamps usable as the string dates of the record.
func timeToDateString(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	if t, ok := data.(time.Time); ok && from == reflect.TypeOf(time.Time{}) {
		return t.Format("2006-01-02"), nil
	}
	return data, nil
}

// stringToFlag reads free-form flags such as "current": "present". Unknown
// words decode as false instead of failing the whole record.
func stringToFlag(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
		return data, nil
	}
	word := strings.ToLower(strings.TrimSpace(reflect.ValueOf(data).String()))
	switch word {
	case "present", "current", "ongoing", "now", "yes", "y":
		return true, nil
	case "", "no", "n", "past":
		return false, nil
	}
	if b, err := strconv.ParseBool(word); err == nil {
		return b, nil
	}
	return false, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
