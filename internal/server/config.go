package server

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultPort              = 8080
	DefaultRequestsPerSecond = 5.0
	DefaultBurst             = 10
	DefaultShutdownTimeout   = 30 * time.Second

	// maxBodyBytes caps every request body.
	maxBodyBytes = 1 << 20
)

// RateLimit configures the per-client token bucket.
type RateLimit struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests-per-second" validate:"gt=0"`
	Burst             int     `mapstructure:"burst" validate:"gte=1"`
}

type Config struct {
	Port int `mapstructure:"port" validate:"gte=0,lte=65535"`
	// Token and TokenFile configure the optional bearer token. TokenFile wins.
	Token           string        `mapstructure:"token"`
	TokenFile       string        `mapstructure:"token-file"`
	AllowedOrigins  []string      `mapstructure:"allowed-origins"`
	RateLimit       RateLimit     `mapstructure:"rate-limit"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout" validate:"gte=0"`
}

func DefaultConfig() Config {
	return Config{
		Port:           DefaultPort,
		AllowedOrigins: []string{"*"},
		RateLimit: RateLimit{
			Enabled:           true,
			RequestsPerSecond: DefaultRequestsPerSecond,
			Burst:             DefaultBurst,
		},
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

var validate = validator.New()

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	return nil
}
