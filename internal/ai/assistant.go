// Package ai holds the optional model-backed helpers layered on top of the
// deterministic matcher.
package ai

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/logger"
	"github.com/spigell/resume-scorer/internal/matching"
	"github.com/spigell/resume-scorer/internal/resume"
)

// SummaryVariants is the number of summary rewrites a match result carries.
const SummaryVariants = 3

// SummaryRequest is everything a rewriter gets to see.
type SummaryRequest struct {
	Resume *resume.Record
	Job    matching.Job
	// Drafts are the template rewrites produced by the matcher.
	Drafts []matching.SummaryRewrite
	// Keywords are the matched and missing keywords, most relevant first.
	Keywords []string
}

type SummaryRewriter interface {
	RewriteSummaries(ctx context.Context, req SummaryRequest) ([]matching.SummaryRewrite, error)
	Provider() string
	Model() string
}

// EnhanceSummaries replaces the template summaries of result with model
// written ones. On any failure the template summaries are kept and a warning
// is logged. A nil rewriter leaves the result untouched.
func EnhanceSummaries(ctx context.Context, rw SummaryRewriter, log *zap.Logger, rec *resume.Record, job matching.Job, result *matching.Result) {
	if rw == nil || result == nil || rec == nil {
		return
	}

	log = logger.WithFields(log, logger.CommonFields(rw.Provider(), rw.Model())...)

	keywords := append([]string{}, result.MatchedKeywords...)
	for _, mk := range result.MissingKeywords {
		keywords = append(keywords, mk.Keyword)
	}

	rewrites, err := rw.RewriteSummaries(ctx, SummaryRequest{
		Resume:   rec,
		Job:      job,
		Drafts:   result.SummaryRewrites,
		Keywords: keywords,
	})
	if err != nil {
		log.Warn("keeping template summaries", zap.String(logger.FieldScanID, result.ScanID), zap.Error(err))
		return
	}

	if len(rewrites) != SummaryVariants {
		log.Warn("keeping template summaries",
			zap.String(logger.FieldScanID, result.ScanID),
			zap.Int("variants", len(rewrites)),
		)
		return
	}

	result.SummaryRewrites = rewrites
	log.Debug("summaries rewritten", zap.String(logger.FieldScanID, result.ScanID))
}
