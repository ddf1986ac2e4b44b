// Package schemas validates inbound documents against the embedded JSON Schemas.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Name identifies one of the embedded schemas.
type Name string

const (
	Resume           Name = "resume"
	ScoreTextRequest Name = "score_text_request"
	MatchRequest     Name = "match_request"
)

//go:embed files/*.schema.json
var files embed.FS

var (
	compileMu sync.Mutex
	compiled  = map[Name]*gojsonschema.Schema{}
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Name    Name
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Name, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Validate checks a decoded Go value (maps, slices, scalars) against the named schema.
func Validate(name Name, document any) error {
	return validate(name, gojsonschema.NewGoLoader(document))
}

func validate(name Name, document gojsonschema.JSONLoader) error {
	schema, err := load(name)
	if err != nil {
		return err
	}

	result, err := schema.Validate(document)
	if err != nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}

func load(name Name) (*gojsonschema.Schema, error) {
	compileMu.Lock()
	defer compileMu.Unlock()

	if schema, ok := compiled[name]; ok {
		return schema, nil
	}

	content, err := files.ReadFile("files/" + string(name) + ".schema.json")
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Message: "schema not embedded", Cause: err}
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(content))
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Message: "invalid schema", Cause: err}
	}

	compiled[name] = schema
	return schema, nil
}
