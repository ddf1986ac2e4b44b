package jobsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/spigell/resume-scorer/internal/resume"
)

// StdinRef selects standard input as the posting source.
const StdinRef = "-"

const hhPrefix = "hh:"

// Loader resolves posting references: a file path, "-" for stdin, an
// http(s) URL or hh:<vacancy id>. JSON and YAML files may hold a single
// posting or a list of them.
type Loader struct {
	client *Client
	stdin  io.Reader
	logger *zap.Logger
}

func NewLoader(client *Client, stdin io.Reader, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if client == nil {
		client = NewClient(logger)
	}
	if stdin == nil {
		stdin = os.Stdin
	}

	return &Loader{client: client, stdin: stdin, logger: logger}
}

// Load returns every posting behind ref.
func (l *Loader) Load(ctx context.Context, ref string) ([]Posting, error) {
	ref = strings.TrimSpace(ref)

	var (
		postings []Posting
		err      error
	)

	switch {
	case ref == "":
		return nil, resume.Invalid("job", "source is empty")
	case ref == StdinRef:
		postings, err = l.fromStdin()
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		var p *Posting
		if p, err = l.client.FetchPage(ctx, ref); err == nil {
			postings = []Posting{*p}
		}
	case strings.HasPrefix(ref, hhPrefix):
		var p *Posting
		if p, err = l.client.Vacancy(ctx, strings.TrimPrefix(ref, hhPrefix)); err == nil {
			postings = []Posting{*p}
		}
	default:
		postings, err = l.fromFile(ref)
	}
	if err != nil {
		return nil, err
	}

	for i := range postings {
		postings[i].Source = ref
		postings[i].Text = CleanText(postings[i].Text)
		if postings[i].Text == "" {
			return nil, resume.Invalid("description", "posting %d from %q has no text", i+1, ref)
		}
	}

	l.logger.Debug("job postings loaded", zap.String("source", ref), zap.Int("count", len(postings)))
	return postings, nil
}

// LoadAll loads every reference in order.
func (l *Loader) LoadAll(ctx context.Context, refs []string) ([]Posting, error) {
	var all []Posting
	for _, ref := range refs {
		postings, err := l.Load(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("loading job %q: %w", ref, err)
		}
		all = append(all, postings...)
	}
	return all, nil
}

func (l *Loader) fromStdin() ([]Posting, error) {
	data, err := io.ReadAll(l.stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}

	text := string(data)
	return []Posting{{ID: "stdin", Title: firstLine(CleanText(text)), Text: text}}, nil
}

func (l *Loader) fromFile(path string) ([]Posting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job file %q: %w", path, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return decodePostings(data, base, json.Unmarshal)
	case ".yaml", ".yml":
		return decodePostings(data, base, yaml.Unmarshal)
	default:
		text := string(data)
		return []Posting{{ID: base, Title: firstLine(CleanText(text)), Text: text}}, nil
	}
}

// decodePostings accepts a single posting object or a list of them.
func decodePostings(data []byte, base string, unmarshal func([]byte, any) error) ([]Posting, error) {
	var list []Posting
	if err := unmarshal(data, &list); err != nil {
		var single Posting
		if errSingle := unmarshal(data, &single); errSingle != nil {
			return nil, resume.Invalid("job", "decoding posting file: %v", errSingle)
		}
		list = []Posting{single}
	}

	for i := range list {
		if strings.TrimSpace(list[i].ID) != "" {
			continue
		}
		if len(list) == 1 {
			list[i].ID = base
		} else {
			list[i].ID = fmt.Sprintf("%s-%d", base, i+1)
		}
	}

	return list, nil
}
