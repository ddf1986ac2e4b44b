package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/spigell/resume-scorer/internal/ats"
	"github.com/spigell/resume-scorer/internal/filtering"
	"github.com/spigell/resume-scorer/internal/matching"
	"github.com/spigell/resume-scorer/internal/ranking"
	"github.com/spigell/resume-scorer/internal/server"
	"github.com/spigell/resume-scorer/internal/taxonomy"
)

type Config struct {
	Scoring   ats.Config      `mapstructure:"scoring"`
	Matching  matching.Config `mapstructure:"matching"`
	Taxonomy  taxonomy.Lists  `mapstructure:"taxonomy"`
	Server    server.Config   `mapstructure:"server"`
	Rank      RankConfig      `mapstructure:"rank"`
	AI        *AIConfig       `mapstructure:"ai"`
	UserAgent string          `mapstructure:"user-agent"`
}

type RankConfig struct {
	filtering.Config `mapstructure:",squash"`
	Concurrency      int `mapstructure:"concurrency"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

func defaultConfig() *Config {
	srv := server.DefaultConfig()
	// Lists are merged element-wise on unmarshal, so the origin default is applied afterwards.
	srv.AllowedOrigins = nil

	return &Config{
		Scoring:  ats.DefaultConfig(),
		Matching: matching.DefaultConfig(),
		Server:   srv,
		Rank:     RankConfig{Concurrency: ranking.DefaultConcurrency},
	}
}

// getConfig unmarshals the viper state over the defaults and validates it.
func getConfig(v *viper.Viper) (*Config, error) {
	config := defaultConfig()
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if config.Server.AllowedOrigins == nil {
		config.Server.AllowedOrigins = []string{"*"}
	}

	if err := config.Scoring.Validate(); err != nil {
		return nil, err
	}
	if err := config.Matching.Validate(); err != nil {
		return nil, err
	}
	if err := config.Server.Validate(); err != nil {
		return nil, err
	}
	if err := config.Rank.Validate(); err != nil {
		return nil, err
	}
	if config.Rank.Concurrency < 0 {
		return nil, fmt.Errorf("rank config: concurrency must not be negative, got %d", config.Rank.Concurrency)
	}

	return config, nil
}

func (c *Config) keywords() *taxonomy.Taxonomy {
	return taxonomy.Default().Extend(c.Taxonomy)
}
