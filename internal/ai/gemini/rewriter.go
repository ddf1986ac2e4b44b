package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/ai"
	"github.com/spigell/resume-scorer/internal/logger"
	"github.com/spigell/resume-scorer/internal/matching"
	"github.com/spigell/resume-scorer/internal/utils"
)

const (
	systemInstruction   = "You rewrite resume summaries. Reply with JSON only."
	defaultMaxLogLength = 200
)

//go:embed prompt.md
var promptTemplate string

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// SummaryRewriter asks Gemini for the three summary variants of a match result.
type SummaryRewriter struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

var _ ai.SummaryRewriter = (*SummaryRewriter)(nil)

func NewSummaryRewriter(generator contentGenerator, logger *zap.Logger, maxLogLength int) *SummaryRewriter {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SummaryRewriter{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (r *SummaryRewriter) Provider() string { return Provider }

func (r *SummaryRewriter) Model() string { return r.generator.Model() }

func (r *SummaryRewriter) RewriteSummaries(ctx context.Context, req ai.SummaryRequest) ([]matching.SummaryRewrite, error) {
	if req.Resume == nil {
		return nil, errors.New("resume is required")
	}

	prompt, err := buildPrompt(req)
	if err != nil {
		return nil, err
	}

	log := logger.WithFields(r.logger, logger.CommonFields(Provider, r.generator.Model())...)
	log.Debug("gemini generate content request",
		zap.String(logger.FieldResumeID, req.Resume.ID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, err
	}

	log.Debug("gemini generate content response",
		zap.String(logger.FieldResumeID, req.Resume.ID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, r.maxLogLen)),
	)

	return parseResponse(raw)
}

func buildPrompt(req ai.SummaryRequest) (string, error) {
	resumeJSON, err := json.MarshalIndent(req.Resume, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal resume payload: %w", err)
	}

	drafts := make([]string, 0, len(req.Drafts))
	for _, d := range req.Drafts {
		drafts = append(drafts, fmt.Sprintf("%d. [%s] %s", d.Variant, d.Focus, d.Text))
	}

	keywords := "none"
	if len(req.Keywords) > 0 {
		keywords = strings.Join(req.Keywords, ", ")
	}

	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Resume:\n{{RESUME_JSON}}\n\nJob:\n{{JOB_TEXT}}\n\nKeywords: {{KEYWORDS}}\n\nDrafts:\n{{DRAFTS}}\n\nJSON Response:"
	}

	return strings.NewReplacer(
		"{{RESUME_JSON}}", string(resumeJSON),
		"{{JOB_TEXT}}", strings.TrimSpace(req.Job.Text),
		"{{KEYWORDS}}", keywords,
		"{{DRAFTS}}", strings.Join(drafts, "\n"),
	).Replace(template), nil
}

var focuses = []string{matching.FocusResults, matching.FocusTechnical, matching.FocusLeadership}

// parseResponse accepts either {"summaries": [...]} or a bare array and
// requires exactly three non-empty variants.
func parseResponse(raw string) ([]matching.SummaryRewrite, error) {
	cleaned := extractJSON(raw)

	var items []any
	var envelope map[string]any
	if err := json.Unmarshal([]byte(cleaned), &envelope); err == nil {
		list, ok := envelope["summaries"].([]any)
		if !ok {
			return nil, errors.New("parse gemini response: summaries list is missing")
		}
		items = list
	} else if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	if len(items) != ai.SummaryVariants {
		return nil, fmt.Errorf("parse gemini response: expected %d summaries, got %d", ai.SummaryVariants, len(items))
	}

	rewrites := make([]matching.SummaryRewrite, 0, len(items))
	for i, item := range items {
		data, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("parse gemini response: summary %d is not an object", i+1)
		}

		text := coerceString(data["text"])
		if text == "" {
			return nil, fmt.Errorf("parse gemini response: summary %d is empty", i+1)
		}

		// Labels follow the position, whatever the model put there.
		rewrites = append(rewrites, matching.SummaryRewrite{
			Variant: i + 1,
			Text:    text,
			Focus:   focuses[i],
		})
	}

	return rewrites, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
