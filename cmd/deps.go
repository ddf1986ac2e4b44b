package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/ai"
	"github.com/spigell/resume-scorer/internal/ai/gemini"
	"github.com/spigell/resume-scorer/internal/ats"
	"github.com/spigell/resume-scorer/internal/jobsource"
	"github.com/spigell/resume-scorer/internal/logger"
	"github.com/spigell/resume-scorer/internal/matching"
	"github.com/spigell/resume-scorer/internal/secrets"
)

// setup builds the logger and the config shared by every command.
func setup() (*Config, *zap.Logger) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig(viper.GetViper())
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	return config, logger
}

func newScorer(config *Config) (*ats.Scorer, error) {
	return ats.NewScorer(config.Scoring, config.keywords())
}

func newMatcher(config *Config) (*matching.Matcher, error) {
	return matching.NewMatcher(config.Matching, config.keywords())
}

func newJobLoader(config *Config, stdin io.Reader, logger *zap.Logger) *jobsource.Loader {
	client := jobsource.NewClient(logger)
	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	return jobsource.NewLoader(client, stdin, logger)
}

// newRewriter returns nil when AI rewrites are disabled.
func newRewriter(ctx context.Context, cfg *AIConfig, baseLogger *zap.Logger) (ai.SummaryRewriter, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != gemini.Provider {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	geminiCfg := cfg.Gemini
	if geminiCfg == nil {
		geminiCfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: geminiCfg.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	generator, err := gemini.NewGenerator(ctx, gemini.Options{
		APIKey:     apiKey,
		Model:      geminiCfg.Model,
		MaxRetries: geminiCfg.MaxRetries,
		Logger:     baseLogger.With(zap.Int("ai_retry_attempts", geminiCfg.MaxRetries)),
	})
	if err != nil {
		return nil, err
	}

	rewriterLogger := logger.WithCommonFields(baseLogger, gemini.Provider, generator.Model())

	return gemini.NewSummaryRewriter(generator, rewriterLogger, geminiCfg.MaxLogLength), nil
}

// optionalRewriter logs and drops a rewriter that could not be built.
func optionalRewriter(ctx context.Context, config *Config, logger *zap.Logger) ai.SummaryRewriter {
	rewriter, err := newRewriter(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("skipping AI summary rewrites", zap.Error(err))
		return nil
	}

	return rewriter
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
