// Package filtering narrows a ranked list of job postings down with
// configurable steps.
package filtering

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/matching"
)

// Filter represents a single filtering step applied to candidates.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, c *Candidates) (*Candidates, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Logger *zap.Logger
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains configuration settings consumed by the filters.
type Config struct {
	MinimumScore     int      `mapstructure:"minimum-score" validate:"gte=0,lte=100"`
	ExcludeCompanies []string `mapstructure:"exclude-companies"`
	ExcludeVerdicts  []string `mapstructure:"exclude-verdicts"`
	KeepDuplicates   bool     `mapstructure:"keep-duplicates"`
}

var validate = validator.New()

func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("rank config: %w", err)
	}
	return nil
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// Default returns the standard steps in the order they run.
func Default() []Filter {
	return []Filter{
		NewDuplicates(),
		NewCompanies(),
		NewVerdicts(),
		NewMinimumScore(),
	}
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates every enabled step and then applies them in order.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, c *Candidates) (*Candidates, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg != nil && cfg.KeepDuplicates {
		DisableByName(steps, duplicatesName, "keep-duplicates is set")
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !step.IsEnabled() {
			logger.Info("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, deps, c)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		c = next
	}

	return c, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

// toggle carries the enable state shared by every built-in filter.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

func (t *toggle) status(name string, details map[string]string) Status {
	return Status{Name: name, Enabled: !t.disabled, Reason: t.reason, Details: details}
}

func knownVerdict(v string) bool {
	switch matching.Verdict(v) {
	case matching.StrongFit, matching.ModerateFit, matching.LowFit:
		return true
	}
	return false
}
