// Package ranking matches one resume against many postings and orders the
// postings by fit.
package ranking

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-scorer/internal/ai"
	"github.com/spigell/resume-scorer/internal/filtering"
	"github.com/spigell/resume-scorer/internal/jobsource"
	"github.com/spigell/resume-scorer/internal/logger"
	"github.com/spigell/resume-scorer/internal/matching"
	"github.com/spigell/resume-scorer/internal/resume"
)

const DefaultConcurrency = 4

// Options configures a Ranker. Zero values select the defaults.
type Options struct {
	Concurrency int
	Filters     *filtering.Config
	Steps       []filtering.Filter
	// Rewriter, when set, rewrites the summaries of every posting left after filtering.
	Rewriter ai.SummaryRewriter
	Logger   *zap.Logger
}

type Ranker struct {
	matcher     *matching.Matcher
	concurrency int
	filters     *filtering.Config
	steps       []filtering.Filter
	rewriter    ai.SummaryRewriter
	logger      *zap.Logger
}

func New(matcher *matching.Matcher, opts Options) *Ranker {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	steps := opts.Steps
	if steps == nil {
		steps = filtering.Default()
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Ranker{
		matcher:     matcher,
		concurrency: concurrency,
		filters:     opts.Filters,
		steps:       steps,
		rewriter:    opts.Rewriter,
		logger:      log,
	}
}

// Rank matches rec against every posting, filters the results and returns
// them best first. Ties are ordered by title, then by posting ID.
func (r *Ranker) Rank(ctx context.Context, rec *resume.Record, postings []jobsource.Posting) ([]*filtering.Candidate, error) {
	if rec == nil {
		return nil, resume.Invalid("resume", "is required")
	}

	candidates := make([]*filtering.Candidate, len(postings))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, posting := range postings {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			result, err := r.matcher.MatchResumeToJob(rec, posting.Job())
			if err != nil {
				return fmt.Errorf("matching %q: %w", posting.ID, err)
			}

			r.logger.Debug("posting matched", logger.ScanFields(result.ScanID, result.ResumeID, result.JobID, string(result.Verdict), result.MatchScore)...)
			candidates[i] = &filtering.Candidate{Posting: posting, Result: result}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	kept, err := filtering.Run(ctx, r.filters, filtering.Deps{Logger: r.logger}, r.steps, &filtering.Candidates{Items: candidates})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("filter steps", zap.Any("steps", filtering.Describe(r.steps)))

	Sort(kept.Items)

	if r.rewriter != nil {
		if err := r.rewrite(ctx, rec, kept.Items); err != nil {
			return nil, err
		}
	}

	r.logger.Info("postings ranked", zap.Int("matched", len(postings)), zap.Int("kept", kept.Len()))
	return kept.Items, nil
}

// rewrite runs the summary rewriter with the same concurrency limit. A failed
// rewrite keeps the template summaries.
func (r *Ranker) rewrite(ctx context.Context, rec *resume.Record, candidates []*filtering.Candidate) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, c := range candidates {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			ai.EnhanceSummaries(gCtx, r.rewriter, r.logger, rec, c.Posting.Job(), c.Result)
			return nil
		})
	}

	return g.Wait()
}

// Sort orders candidates by score descending, then title, then ID.
func Sort(candidates []*filtering.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score() != b.Score() {
			return a.Score() > b.Score()
		}

		at, bt := strings.ToLower(a.Posting.Title), strings.ToLower(b.Posting.Title)
		if at != bt {
			return at < bt
		}
		return a.ID() < b.ID()
	})
}
