package resume

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spigell/resume-scorer/internal/schemas"

	"go.yaml.in/yaml/v3"
)

// Format is the serialization of a resume document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath guesses the document format from the file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads, validates and normalizes a resume file.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading resume file %q: %w", path, err)
	}

	return Decode(data, FormatFromPath(path))
}

// Decode parses a JSON or YAML resume document and normalizes it.
func Decode(data []byte, format Format) (*Record, error) {
	var doc any

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, Invalid("", "parsing yaml: %v", err)
		}
	case FormatJSON, "":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, Invalid("", "parsing json: %v", err)
		}
	default:
		return nil, fmt.Errorf("unsupported resume format %q", format)
	}

	return FromDocument(doc)
}

// FromDocument validates an already decoded document and normalizes it.
func FromDocument(doc any) (*Record, error) {
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, Invalid("", "resume must be an object, got %T", doc)
	}

	if err := schemas.Validate(schemas.Resume, m); err != nil {
		return nil, FromValidation(err)
	}

	return FromMap(m)
}

// FromValidation converts schema validation failures into an InputError.
// Other errors are returned unchanged.
func FromValidation(err error) error {
	var verr *schemas.ValidationError
	if !errors.As(err, &verr) || len(verr.Errors) == 0 {
		return err
	}

	fields := make([]string, 0, len(verr.Errors))
	messages := make([]string, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		fields = append(fields, fe.Field)
		messages = append(messages, fe.Message)
	}

	return &InputError{
		Field:   strings.Join(fields, ","),
		Message: strings.Join(messages, "; "),
	}
}
