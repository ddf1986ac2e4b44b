package jobsource

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/resume"
)

const jobPage = `<html>
<head><title>Careers | Acme</title><script>var x = 1;</script></head>
<body>
<nav>Home Jobs About</nav>
<header><h1>Senior Go Engineer</h1></header>
<div class="job-description">
  <p>We build   payment systems.</p>
  <ul><li>Go</li><li>Kafka</li><li>PostgreSQL</li></ul>
  <p>Remote<br>friendly</p>
</div>
<footer>Copyright</footer>
</body></html>`

func TestCleanText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "empty", input: "", expect: ""},
		{name: "line endings", input: "a\r\nb\rc", expect: "a\nb\nc"},
		{name: "repeated spaces", input: "  Go \t  developer  ", expect: "Go developer"},
		{name: "blank lines", input: "one\n\n\n\n\ntwo\n \n", expect: "one\n\ntwo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, CleanText(tt.input))
		})
	}
}

func TestExtractMainText(t *testing.T) {
	title, text, err := ExtractMainText(jobPage)
	require.NoError(t, err)

	assert.Equal(t, "Senior Go Engineer", title)
	assert.Contains(t, text, "We build payment systems.")
	assert.Contains(t, text, "Go\nKafka\nPostgreSQL")
	assert.Contains(t, text, "Remote\nfriendly")
	assert.NotContains(t, text, "Home Jobs")
	assert.NotContains(t, text, "var x")
	assert.NotContains(t, text, "Copyright")
}

func TestFetchPageGzip(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")

		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, _ = zw.Write([]byte(jobPage))
		_ = zw.Close()

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write(buf.Bytes())
	}))
	defer srv.Close()

	loader := NewLoader(NewClient(zap.NewNop()), nil, nil)
	postings, err := loader.Load(context.Background(), srv.URL+"/jobs/1")
	require.NoError(t, err)
	require.Len(t, postings, 1)

	p := postings[0]
	assert.Equal(t, "Senior Go Engineer", p.Title)
	assert.Equal(t, srv.URL+"/jobs/1", p.URL)
	assert.Equal(t, srv.URL+"/jobs/1", p.Source)
	assert.Contains(t, p.Text, "Kafka")
	assert.Equal(t, userAgent, gotUA)
}

func TestFetchPageBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewClient(nil).FetchPage(context.Background(), srv.URL)
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Contains(t, fetchErr.Message, "404")
}

func TestFetchPageInvalidURL(t *testing.T) {
	_, err := NewClient(nil).FetchPage(context.Background(), "ftp://example.com/job")

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "invalid URL", fetchErr.Message)
}

func TestHeadHunterVacancy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vacancies/12345" {
			http.NotFound(w, r)
			return
		}
		assert.NotEmpty(t, r.Header.Get("HH-User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "12345",
			"name": "Go Developer",
			"alternate_url": "https://hh.ru/vacancy/12345",
			"description": "<p>Build <strong>billing</strong> services.</p><ul><li>Go</li><li>Docker</li></ul>",
			"employer": {"name": "Acme"},
			"experience": {"name": "3-6 years"},
			"key_skills": [{"name": "Go"}, {"name": "Kubernetes"}]
		}`))
	}))
	defer srv.Close()

	client := NewClient(nil)
	client.HHAPIURL = srv.URL

	postings, err := NewLoader(client, nil, nil).Load(context.Background(), "hh:12345")
	require.NoError(t, err)
	require.Len(t, postings, 1)

	p := postings[0]
	assert.Equal(t, "hh-12345", p.ID)
	assert.Equal(t, "Go Developer", p.Title)
	assert.Equal(t, "Acme", p.Company)
	assert.Equal(t, "https://hh.ru/vacancy/12345", p.URL)
	assert.Equal(t, "Build billing services.\nGo\nDocker\n\nExperience: 3-6 years\nKey skills: Go, Kubernetes", p.Text)
	assert.Equal(t, "Go Developer", p.Job().Title)
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	txt := write("backend.md", "# Backend Engineer\r\n\r\n\r\n\r\nGo   and Kafka.\n")
	single := write("single.json", `{"title": "Data Analyst", "company": "Initech", "description": "SQL and Tableau"}`)
	list := write("list.yaml", `
- id: a
  title: Frontend Developer
  description: React and TypeScript
- title: Designer
  company: Globex
  description: Figma
`)

	loader := NewLoader(nil, nil, nil)

	postings, err := loader.LoadAll(context.Background(), []string{txt, single, list})
	require.NoError(t, err)
	require.Len(t, postings, 4)

	assert.Equal(t, Posting{ID: "backend", Title: "Backend Engineer", Text: "# Backend Engineer\n\nGo and Kafka.", Source: txt}, postings[0])
	assert.Equal(t, "single", postings[1].ID)
	assert.Equal(t, "Initech", postings[1].Company)
	assert.Equal(t, "a", postings[2].ID)
	assert.Equal(t, "list-2", postings[3].ID)
	assert.Equal(t, "Globex", postings[3].Company)
}

func TestLoadStdin(t *testing.T) {
	loader := NewLoader(nil, strings.NewReader("Platform Engineer\nTerraform, AWS"), nil)

	postings, err := loader.Load(context.Background(), StdinRef)
	require.NoError(t, err)
	require.Len(t, postings, 1)
	assert.Equal(t, "stdin", postings[0].ID)
	assert.Equal(t, "Platform Engineer", postings[0].Title)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("  \n\n"), 0o600))
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"title": `), 0o600))

	loader := NewLoader(nil, nil, nil)

	for _, ref := range []string{"", empty, broken} {
		_, err := loader.Load(context.Background(), ref)
		require.Error(t, err, ref)
		assert.True(t, errors.Is(err, resume.ErrInvalidInput), ref)
	}

	_, err := loader.Load(context.Background(), filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, resume.ErrInvalidInput))
}

func TestPostingKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://example.com/job/1", Posting{URL: "https://Example.com/job/1/"}.Key())
	assert.Equal(t, "go developer|acme", Posting{Title: " Go Developer", Company: "Acme"}.Key())
	assert.Equal(t, "stdin", Posting{ID: "stdin"}.Key())
}
