package filtering

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const duplicatesName = "duplicates"

type minimumScoreFilter struct {
	toggle
	minimum int
}

// NewMinimumScore drops candidates scoring below the configured minimum.
func NewMinimumScore() Filter {
	return &minimumScoreFilter{}
}

func (f *minimumScoreFilter) Name() string { return "minimum_score" }

func (f *minimumScoreFilter) Validate(cfg *Config) error {
	f.minimum = 0
	if cfg != nil {
		f.minimum = cfg.MinimumScore
	}
	return nil
}

func (f *minimumScoreFilter) Apply(_ context.Context, deps Deps, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	if f.minimum <= 0 {
		return c, Step{Initial: initial, Left: c.Len()}, nil
	}

	excluded := c.Exclude(func(candidate *Candidate) bool {
		return candidate.Score() < f.minimum
	})
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Debug("excluding postings below minimum score",
			zap.Int("minimum_score", f.minimum),
			zap.Strings("excluded_postings", excluded),
			zap.Int("postings_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *minimumScoreFilter) Status() Status {
	return f.status(f.Name(), map[string]string{"minimum_score": strconv.Itoa(f.minimum)})
}

type verdictsFilter struct {
	toggle
	verdicts map[string]struct{}
}

// NewVerdicts drops candidates whose verdict is listed in the config.
func NewVerdicts() Filter {
	return &verdictsFilter{}
}

func (f *verdictsFilter) Name() string { return "excluded_verdicts" }

func (f *verdictsFilter) Validate(cfg *Config) error {
	f.verdicts = map[string]struct{}{}
	if cfg == nil {
		return nil
	}

	for _, v := range cfg.ExcludeVerdicts {
		v = strings.ToLower(strings.TrimSpace(v))
		if !knownVerdict(v) {
			return fmt.Errorf("unknown verdict %q", v)
		}
		f.verdicts[v] = struct{}{}
	}
	return nil
}

func (f *verdictsFilter) Apply(_ context.Context, deps Deps, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	if len(f.verdicts) == 0 {
		return c, Step{Initial: initial, Left: c.Len()}, nil
	}

	excluded := c.Exclude(func(candidate *Candidate) bool {
		if candidate.Result == nil {
			return false
		}
		_, drop := f.verdicts[string(candidate.Result.Verdict)]
		return drop
	})
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Debug("excluding postings by verdict",
			zap.Strings("excluded_postings", excluded),
			zap.Int("postings_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *verdictsFilter) Status() Status {
	verdicts := make([]string, 0, len(f.verdicts))
	for v := range f.verdicts {
		verdicts = append(verdicts, v)
	}
	return f.status(f.Name(), map[string]string{"verdicts": strings.Join(verdicts, ",")})
}

type companiesFilter struct {
	toggle
	companies []string
}

// NewCompanies drops postings from companies listed in the config. Names are
// compared case-insensitively.
func NewCompanies() Filter {
	return &companiesFilter{}
}

func (f *companiesFilter) Name() string { return "excluded_companies" }

func (f *companiesFilter) Validate(cfg *Config) error {
	f.companies = nil
	if cfg == nil {
		return nil
	}

	for _, company := range cfg.ExcludeCompanies {
		if company = strings.TrimSpace(company); company != "" {
			f.companies = append(f.companies, company)
		}
	}
	return nil
}

func (f *companiesFilter) Apply(_ context.Context, deps Deps, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	if len(f.companies) == 0 {
		return c, Step{Initial: initial, Left: c.Len()}, nil
	}

	excluded := c.Exclude(func(candidate *Candidate) bool {
		for _, company := range f.companies {
			if strings.EqualFold(strings.TrimSpace(candidate.Posting.Company), company) {
				return true
			}
		}
		return false
	})
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Debug("excluding postings by company",
			zap.Strings("excluded_companies", f.companies),
			zap.Strings("excluded_postings", excluded),
			zap.Int("postings_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *companiesFilter) Status() Status {
	details := map[string]string{}
	if len(f.companies) > 0 {
		details["companies"] = strings.Join(f.companies, ",")
	}
	return f.status(f.Name(), details)
}

type duplicatesFilter struct {
	toggle
}

// NewDuplicates keeps one candidate per posting, the best scoring one.
func NewDuplicates() Filter {
	return &duplicatesFilter{}
}

func (f *duplicatesFilter) Name() string { return duplicatesName }

func (f *duplicatesFilter) Validate(*Config) error { return nil }

func (f *duplicatesFilter) Apply(_ context.Context, deps Deps, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()

	best := make(map[string]*Candidate, c.Len())
	for _, candidate := range c.Items {
		key := candidate.Posting.Key()
		if current, ok := best[key]; !ok || candidate.Score() > current.Score() {
			best[key] = candidate
		}
	}

	excluded := c.Exclude(func(candidate *Candidate) bool {
		return best[candidate.Posting.Key()] != candidate
	})
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Debug("excluding duplicate postings",
			zap.Strings("excluded_postings", excluded),
			zap.Int("postings_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *duplicatesFilter) Status() Status {
	return f.status(f.Name(), nil)
}
