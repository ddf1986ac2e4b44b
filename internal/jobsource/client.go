package jobsource

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	hhAPIURL        = "https://api.hh.ru"
	userAgent       = "spigell/resume-scorer (spigelly@gmail.com)"
	contentEncoding = "gzip"
	maxBodySize     = 5 << 20
)

// FetchError describes a failed remote fetch.
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Client fetches postings over HTTP.
type Client struct {
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	// HHAPIURL is the HeadHunter API base used for hh:<id> references.
	HHAPIURL string
}

func NewClient(logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		logger:    logger,
		UserAgent: userAgent,
		HHAPIURL:  hhAPIURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchPage downloads an HTML job page and extracts the posting text.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (*Posting, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, &FetchError{URL: pageURL, Message: "invalid URL", Cause: err}
	}

	body, err := c.get(ctx, pageURL, "text/html,application/xhtml+xml")
	if err != nil {
		return nil, err
	}

	title, text, err := ExtractMainText(string(body))
	if err != nil {
		return nil, &FetchError{URL: pageURL, Message: "extract text", Cause: err}
	}

	return &Posting{
		ID:    pageURL,
		Title: title,
		URL:   pageURL,
		Text:  text,
	}, nil
}

type hhVacancy struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	AlternateURL string `json:"alternate_url"`
	Description  string `json:"description"`
	Employer     struct {
		Name string `json:"name"`
	} `json:"employer"`
	Experience struct {
		Name string `json:"name"`
	} `json:"experience"`
	KeySkills []struct {
		Name string `json:"name"`
	} `json:"key_skills"`
}

// Vacancy loads a single public vacancy from the HeadHunter API.
func (c *Client) Vacancy(ctx context.Context, id string) (*Posting, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("vacancy id is required")
	}

	endpoint := strings.TrimRight(c.HHAPIURL, "/") + "/vacancies/" + url.PathEscape(id)
	body, err := c.get(ctx, endpoint, "application/json")
	if err != nil {
		return nil, err
	}

	var v hhVacancy
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, &FetchError{URL: endpoint, Message: "decode vacancy", Cause: err}
	}

	text, err := fragmentText(v.Description)
	if err != nil {
		return nil, &FetchError{URL: endpoint, Message: "extract text", Cause: err}
	}

	var extra []string
	if v.Experience.Name != "" {
		extra = append(extra, "Experience: "+v.Experience.Name)
	}
	if len(v.KeySkills) > 0 {
		skills := make([]string, 0, len(v.KeySkills))
		for _, s := range v.KeySkills {
			skills = append(skills, s.Name)
		}
		extra = append(extra, "Key skills: "+strings.Join(skills, ", "))
	}
	if len(extra) > 0 {
		text = strings.TrimSpace(text + "\n\n" + strings.Join(extra, "\n"))
	}

	postingID := v.ID
	if postingID == "" {
		postingID = id
	}

	return &Posting{
		ID:      "hh-" + postingID,
		Title:   v.Name,
		Company: v.Employer.Name,
		URL:     v.AlternateURL,
		Text:    text,
	}, nil
}

func (c *Client) get(ctx context.Context, target, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{URL: target, Message: "create request", Cause: err}
	}

	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("HH-User-Agent", c.UserAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Encoding", contentEncoding)

	c.logger.Debug("make request", zap.String("url", target))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: target, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, &FetchError{URL: target, Message: "open gzip body", Cause: err}
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(io.LimitReader(reader, maxBodySize))
	if err != nil {
		return nil, &FetchError{URL: target, Message: "read body", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: target, Message: fmt.Sprintf("bad status: %s", resp.Status)}
	}

	return data, nil
}
