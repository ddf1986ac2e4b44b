package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotConfigured is returned when a source resolves to no value at all.
var ErrNotConfigured = errors.New("secret is not configured")

// Source describes how to load a secret value.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// Value is an inline secret value provided via configuration or flags.
	Value string
	// File points to a file containing the secret value. When set it takes
	// precedence over Value and Env.
	File string
	// Env names an environment variable consulted when neither File nor
	// Value is set.
	Env string
}

// Load returns the trimmed secret from src. File wins over Value, which wins
// over Env.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}

		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return secret, nil
	}

	if secret := strings.TrimSpace(src.Value); secret != "" {
		return secret, nil
	}

	if env := strings.TrimSpace(src.Env); env != "" {
		if secret := strings.TrimSpace(os.Getenv(env)); secret != "" {
			return secret, nil
		}
	}

	return "", fmt.Errorf("%s: %w", name, ErrNotConfigured)
}

// LoadOptional behaves like Load but returns an empty string instead of an
// error when nothing is configured.
func LoadOptional(src Source) (string, error) {
	secret, err := Load(src)
	if errors.Is(err, ErrNotConfigured) {
		return "", nil
	}
	return secret, err
}
