package resume

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMapAlternateFields(t *testing.T) {
	doc := map[string]any{
		"id":       "r-1",
		"personal": map[string]any{"name": "Jane Doe", "phone": 5551234567},
		"skills":   []any{"Go"},
		"experience": []any{
			map[string]any{"title": "Engineer", "company": "Acme", "current": "true"},
		},
		"education": []any{
			map[string]any{"school": "MIT", "graduationDate": "2019-06", "gpa": 3.9},
		},
		"projects": []any{
			map[string]any{"name": "Scorer", "link": "https://example.com"},
		},
		"certifications": []any{
			map[string]any{"name": "PMP", "issuer": "PMI"},
		},
	}

	rec, err := FromMap(doc)
	require.NoError(t, err)

	assert.Equal(t, "r-1", rec.ID)
	assert.Equal(t, "Jane Doe", rec.Personal.FullName)
	assert.Equal(t, "5551234567", rec.Personal.Phone)
	require.Len(t, rec.Experience, 1)
	assert.Equal(t, "Engineer", rec.Experience[0].Position)
	assert.True(t, rec.Experience[0].Current)
	assert.NotNil(t, rec.Experience[0].Bullets)
	require.Len(t, rec.Education, 1)
	assert.Equal(t, "MIT", rec.Education[0].Institution)
	assert.Equal(t, "2019-06", rec.Education[0].EndDate)
	assert.Equal(t, "3.9", rec.Education[0].GPA)
	assert.Equal(t, "https://example.com", rec.Projects[0].URL)
	assert.Equal(t, Certification{Name: "PMP", Issuer: "PMI"}, rec.Certifications[0])
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestFromMapCurrentWords(t *testing.T) {
	cases := map[string]bool{
		"present": true,
		"Ongoing": true,
		"false":   false,
		"past":    false,
		"someday": false,
	}

	for word, want := range cases {
		rec, err := FromMap(map[string]any{
			"experience": []any{map[string]any{"title": "Engineer", "current": word}},
		})
		require.NoError(t, err, word)
		assert.Equal(t, want, rec.Experience[0].Current, word)
	}
}

func TestFromMapCanonicalWins(t *testing.T) {
	rec, err := FromMap(map[string]any{
		"education": []any{
			map[string]any{"institution": "Stanford", "school": "MIT", "endDate": "2020", "graduationDate": "2019"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Stanford", rec.Education[0].Institution)
	assert.Equal(t, "2020", rec.Education[0].EndDate)
}

func TestFromMapGeneratesID(t *testing.T) {
	rec, err := FromMap(map[string]any{})
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.NotNil(t, rec.Skills)
	assert.Empty(t, rec.Experience)
}

func TestFromMapNil(t *testing.T) {
	_, err := FromMap(nil)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestRecordHelpers(t *testing.T) {
	rec := New()
	rec.Experience = []Experience{
		{Position: "Engineer", Bullets: []string{"a", "b"}},
		{Position: "Lead", Bullets: []string{"c"}},
	}

	assert.Equal(t, []string{"Engineer", "Lead"}, rec.Positions())
	assert.Equal(t, []string{"a", "b", "c"}, rec.Bullets())

	before := rec.UpdatedAt
	rec.Touch()
	assert.False(t, rec.UpdatedAt.Before(before))
}
