package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-scorer/internal/ai"
	"github.com/spigell/resume-scorer/internal/ats"
	"github.com/spigell/resume-scorer/internal/matching"
	"github.com/spigell/resume-scorer/internal/resume"
)

const resumeJSON = `{
	"id": "resume-1",
	"personal": {"fullName": "Jane Doe", "email": "jane@example.com", "phone": "555-123-4567"},
	"skills": ["JavaScript", "React", "AWS"],
	"experience": [{
		"company": "Acme",
		"position": "Software Engineer",
		"startDate": "2020-01",
		"current": true,
		"bullets": ["Increased deployment speed by 40%"]
	}]
}`

type stubRewriter struct{}

func (stubRewriter) RewriteSummaries(context.Context, ai.SummaryRequest) ([]matching.SummaryRewrite, error) {
	return []matching.SummaryRewrite{
		{Variant: 1, Focus: matching.FocusResults, Text: "generated 1"},
		{Variant: 2, Focus: matching.FocusTechnical, Text: "generated 2"},
		{Variant: 3, Focus: matching.FocusLeadership, Text: "generated 3"},
	}, nil
}

func (stubRewriter) Provider() string { return "stub" }
func (stubRewriter) Model() string    { return "stub-model" }

func testDeps(t *testing.T) Deps {
	t.Helper()

	scorer, err := ats.NewScorer(ats.DefaultConfig(), nil)
	require.NoError(t, err)
	matcher, err := matching.NewMatcher(matching.DefaultConfig(), nil)
	require.NoError(t, err)

	return Deps{Scorer: scorer, Matcher: matcher}
}

func newTestServer(t *testing.T, mutate func(*Config, *Deps)) *Server {
	t.Helper()
	t.Setenv(tokenEnvName, "")

	cfg := DefaultConfig()
	cfg.RateLimit.Enabled = false
	deps := testDeps(t)
	if mutate != nil {
		mutate(&cfg, &deps)
	}

	s, err := New(cfg, deps)
	require.NoError(t, err)
	return s
}

func do(t *testing.T, h http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t, nil).Handler(), http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}

func TestScore(t *testing.T) {
	rec := do(t, newTestServer(t, nil).Handler(), http.MethodPost, "/v1/ats/score", resumeJSON, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result ats.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "resume-1", result.ResumeID)
	assert.NotEmpty(t, result.ScanID)
	assert.Contains(t, result.MatchedKeywords, "React")
	assert.GreaterOrEqual(t, result.Overall, 0)
	assert.LessOrEqual(t, result.Overall, 100)
}

func TestScoreText(t *testing.T) {
	body := `{"text": "Jane Doe\njane@example.com\nSkills: Python, Docker, Kubernetes\nExperience\nLed 4 engineers", "fileName": "cv.txt"}`

	rec := do(t, newTestServer(t, nil).Handler(), http.MethodPost, "/v1/ats/score-text", body, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result ats.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "cv.txt", result.FileName)
	assert.Contains(t, result.MatchedKeywords, "Python")
}

func TestMatch(t *testing.T) {
	body := `{"resume": ` + resumeJSON + `, "jobDescription": "We need JavaScript, React, Node.js, AWS, Leadership", "jobTitle": "Frontend Engineer", "company": "Globex"}`

	rec := do(t, newTestServer(t, nil).Handler(), http.MethodPost, "/v1/match", body, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result matching.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Frontend Engineer", result.JobTitle)
	assert.Equal(t, "Globex", result.Company)
	assert.Len(t, result.SummaryRewrites, 3)

	var missing []string
	for _, mk := range result.MissingKeywords {
		missing = append(missing, mk.Keyword)
	}
	assert.Contains(t, missing, "Node.js")
}

func TestMatchWithRewriter(t *testing.T) {
	s := newTestServer(t, func(_ *Config, d *Deps) { d.Rewriter = stubRewriter{} })
	body := `{"resume": ` + resumeJSON + `, "jobDescription": "React developer"}`

	rec := do(t, s.Handler(), http.MethodPost, "/v1/match", body, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result matching.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.SummaryRewrites, 3)
	assert.Equal(t, "generated 1", result.SummaryRewrites[0].Text)
}

func TestBadRequests(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{name: "malformed json", path: "/v1/ats/score", body: `{"skills": [`},
		{name: "resume is not an object", path: "/v1/ats/score", body: `["skills"]`},
		{name: "wrong field type", path: "/v1/ats/score", body: `{"skills": "React"}`},
		{name: "missing text", path: "/v1/ats/score-text", body: `{"fileName": "cv.txt"}`},
		{name: "missing job description", path: "/v1/match", body: `{"resume": {}}`},
		{name: "trailing document", path: "/v1/match", body: `{} {}`},
	}

	h := newTestServer(t, nil).Handler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tt.path, tt.body, nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Contains(t, decode(t, rec)["error"], "invalid input")
		})
	}
}

func TestBodyTooLarge(t *testing.T) {
	body := `{"text": "` + strings.Repeat("a", maxBodyBytes+16) + `"}`

	rec := do(t, newTestServer(t, nil).Handler(), http.MethodPost, "/v1/ats/score-text", body, nil)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	rec := do(t, newTestServer(t, nil).Handler(), http.MethodGet, "/v1/match", "", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAuth(t *testing.T) {
	s := newTestServer(t, func(c *Config, _ *Deps) { c.Token = "secret-token" })
	require.True(t, s.AuthEnabled())
	h := s.Handler()

	rec := do(t, h, http.MethodPost, "/v1/ats/score", resumeJSON, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

	rec = do(t, h, http.MethodPost, "/v1/ats/score", resumeJSON, map[string]string{"Authorization": "Bearer wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/ats/score", resumeJSON, map[string]string{"Authorization": "Bearer secret-token"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, func(c *Config, _ *Deps) {
		c.RateLimit = RateLimit{Enabled: true, RequestsPerSecond: 0.01, Burst: 1}
	})
	h := s.Handler()

	rec := do(t, h, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	body := decode(t, rec)
	assert.Equal(t, "rate limit exceeded", body["error"])
	assert.GreaterOrEqual(t, body["retry_after"], float64(1))
}

func TestClientLimiterRefills(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newClientLimiter(RateLimit{Enabled: true, RequestsPerSecond: 1, Burst: 1})
	l.now = func() time.Time { return now }

	ok, _ := l.allow("a")
	require.True(t, ok)

	ok, wait := l.allow("a")
	require.False(t, ok)
	assert.Equal(t, time.Second, wait)

	ok, _ = l.allow("b")
	assert.True(t, ok, "clients have separate buckets")

	now = now.Add(time.Second)
	ok, _ = l.allow("a")
	assert.True(t, ok)

	now = now.Add(limiterIdleTTL + time.Minute)
	l.allow("c")
	assert.Len(t, l.buckets, 1)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, func(c *Config, _ *Deps) {
		c.Token = "secret-token"
		c.AllowedOrigins = []string{"https://app.example.com"}
	})

	rec := do(t, s.Handler(), http.MethodOptions, "/v1/match", "", map[string]string{"Origin": "https://app.example.com"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, s.Handler(), http.MethodOptions, "/v1/match", "", map[string]string{"Origin": "https://evil.example.com"})
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, HTTPStatus(nil))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(resume.Invalid("skills", "must be a list")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, HTTPStatus(&http.MaxBytesError{Limit: 1}))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
	assert.Equal(t, "internal error", publicMessage(errors.New("database password leaked")))
}

func TestNewValidation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Port = 70000
	_, err := New(cfg, testDeps(t))
	assert.Error(t, err)

	_, err = New(DefaultConfig(), Deps{})
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.TokenFile = "/nonexistent/token"
	_, err = New(cfg, testDeps(t))
	assert.Error(t, err)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
