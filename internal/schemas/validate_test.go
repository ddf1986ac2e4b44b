package schemas

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validateJSON(t *testing.T, name Name, payload string) error {
	t.Helper()

	var doc any
	require.NoError(t, json.Unmarshal([]byte(payload), &doc))
	return Validate(name, doc)
}

func TestValidateResume(t *testing.T) {
	doc := map[string]any{
		"personal": map[string]any{"fullName": "Jane Doe", "phone": 5551234567},
		"skills":   []any{"Go", "SQL"},
		"experience": []any{
			map[string]any{"position": "Engineer", "current": "true", "bullets": []any{"Built things"}},
		},
		"education": []any{
			map[string]any{"school": "MIT", "gpa": 3.9},
		},
	}

	require.NoError(t, Validate(Resume, doc))
}

func TestValidateResumeRejectsBadSkills(t *testing.T) {
	doc := map[string]any{
		"skills": "Go, SQL",
	}

	err := Validate(Resume, doc)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.NotEmpty(t, verr.Errors)
	assert.Equal(t, "skills", verr.Errors[0].Field)
}

func TestValidateResumeRejectsNonObject(t *testing.T) {
	err := validateJSON(t, Resume, `["not", "an", "object"]`)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "(root)", verr.Errors[0].Field)
}

func TestValidateMatchRequest(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		valid   bool
	}{
		{name: "complete", payload: `{"resume": {}, "jobDescription": "Senior Go Engineer"}`, valid: true},
		{name: "empty job text", payload: `{"resume": {}, "jobDescription": ""}`, valid: true},
		{name: "job text not a string", payload: `{"resume": {}, "jobDescription": 42}`},
		{name: "missing resume", payload: `{"jobDescription": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateJSON(t, MatchRequest, tt.payload)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
		})
	}
}

func TestValidateScoreTextRequest(t *testing.T) {
	assert.NoError(t, validateJSON(t, ScoreTextRequest, `{"text": "", "fileName": "cv.pdf"}`))
	assert.Error(t, validateJSON(t, ScoreTextRequest, `{"fileName": "cv.pdf"}`))
}

func TestUnknownSchema(t *testing.T) {
	err := Validate(Name("missing"), map[string]any{})

	var lerr *SchemaLoadError
	require.True(t, errors.As(err, &lerr))
}
