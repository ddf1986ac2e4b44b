// Package gemini talks to the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/resume-scorer/internal/utils"
)

const (
	Provider = "gemini"

	defaultModel      = "gemini-2.5-flash"
	defaultMaxRetries = 3

	retryBaseDelay = time.Second
	retryMaxDelay  = 30 * time.Second
)

var retryAfterPattern = regexp.MustCompile(`(?i)retry (?:after|in) (\d+(?:\.\d+)?)\s*(s|sec|secs|second|seconds)?\b`)

type chatSession interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type chatCreator interface {
	Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error)
}

type genaiChats struct {
	chats *genai.Chats
}

func (c genaiChats) Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error) {
	return c.chats.Create(ctx, model, config, history)
}

// Generator sends single-turn prompts to Gemini and retries temporary failures.
type Generator struct {
	chats      chatCreator
	model      string
	maxRetries int
	logger     *zap.Logger
	// wait defaults to utils.WaitFor.
	wait func(ctx context.Context, d time.Duration) error
}

// Options configures NewGenerator.
type Options struct {
	APIKey     string
	Model      string
	MaxRetries int
	Logger     *zap.Logger
}

// NewGenerator creates a Generator for the Gemini API backend.
func NewGenerator(ctx context.Context, opts Options) (*Generator, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}

	retries := opts.MaxRetries
	if retries <= 0 {
		retries = defaultMaxRetries
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		chats:      genaiChats{chats: client.Chats},
		model:      model,
		maxRetries: retries,
		logger:     logger,
	}, nil
}

// GenerateContent sends message under the given system instruction and
// returns the concatenated text of the response.
func (g *Generator) GenerateContent(ctx context.Context, system, message string) (string, error) {
	if g == nil || g.chats == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return "", errors.New("prompt must not be empty")
	}

	var config *genai.GenerateContentConfig
	if system = strings.TrimSpace(system); system != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		}
	}

	wait := g.wait
	if wait == nil {
		wait = utils.WaitFor
	}

	attempts := g.maxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		output, err := g.send(ctx, config, message)
		if err == nil {
			return output, nil
		}
		lastErr = err

		delay, retry := retryDelay(err, attempt)
		if !retry || attempt == attempts {
			break
		}

		g.logger.Debug("gemini request failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		if err := wait(ctx, delay); err != nil {
			return "", err
		}
	}

	return "", lastErr
}

func (g *Generator) send(ctx context.Context, config *genai.GenerateContentConfig, message string) (string, error) {
	chat, err := g.chats.Create(ctx, g.model, config, nil)
	if err != nil {
		return "", fmt.Errorf("create chat: %w", err)
	}

	resp, err := chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("gemini api returned empty response")
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

// retryDelay decides whether err is worth another attempt. Quota errors that
// ask for a longer pause than retryMaxDelay are not retried.
func retryDelay(err error, attempt int) (time.Duration, bool) {
	apiErr, ok := asAPIError(err)
	if !ok {
		return 0, false
	}

	switch apiErr.Code {
	case http.StatusTooManyRequests:
		if d, found := parseRetryAfter(apiErr.Message); found {
			if d > retryMaxDelay {
				return 0, false
			}
			return d, true
		}
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
	default:
		return 0, false
	}

	return utils.Backoff(retryBaseDelay, retryMaxDelay, attempt), true
}

func asAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return *apiErrPtr, true
	}

	return genai.APIError{}, false
}

func parseRetryAfter(message string) (time.Duration, bool) {
	match := retryAfterPattern.FindStringSubmatch(message)
	if match == nil {
		return 0, false
	}

	seconds, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}

	return time.Duration(seconds * float64(time.Second)), true
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}
