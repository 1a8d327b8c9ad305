package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/temoto/robotstxt"

	"github.com/sonnet-engine/backend/internal/config"
	"github.com/sonnet-engine/backend/internal/search"
)

// Poem is one raw record from the poetry source, prior to validation.
type Poem struct {
	Title     string   `json:"title"`
	Author    string   `json:"author,omitempty"`
	Lines     []string `json:"lines"`
	LineCount string   `json:"linecount,omitempty"`
}

// Document validates the raw record and converts it into an indexable
// document. Source titles follow the "Sonnet N: First line" convention; the
// numeric part becomes the identifier and the remainder the bare title.
// Malformed records are rejected here so they never reach the index.
func (p Poem) Document() (search.Document, error) {
	if len(p.Lines) == 0 {
		return search.Document{}, fmt.Errorf("poem %q has no lines", p.Title)
	}
	head, title, ok := strings.Cut(p.Title, ": ")
	if !ok || title == "" {
		return search.Document{}, fmt.Errorf("title %q does not follow the \"Sonnet N: ...\" form", p.Title)
	}
	fields := strings.Fields(head)
	if len(fields) == 0 {
		return search.Document{}, fmt.Errorf("title %q has no identifier part", p.Title)
	}
	id, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return search.Document{}, fmt.Errorf("no numeric identifier in title %q: %w", p.Title, err)
	}
	return search.Document{ID: id, Title: title, Lines: p.Lines}, nil
}

// Client fetches the sonnet corpus from the remote poetry API.
type Client struct {
	client *http.Client
	cfg    config.SourceConfig
	logger *logrus.Entry
}

func NewClient(cfg config.SourceConfig, logger *logrus.Entry) *Client {
	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		cfg:    cfg,
		logger: logger,
	}
}

// FetchSonnets downloads and decodes the full corpus from the source URL.
// When robots checking is enabled the source host's robots.txt is consulted
// first, and a disallowed path aborts the fetch.
func (c *Client) FetchSonnets(ctx context.Context) ([]Poem, error) {
	if c.cfg.RobotsCheck {
		allowed, err := c.robotsAllowed(ctx)
		if err != nil {
			c.logger.WithError(err).Warn("Could not evaluate robots.txt, proceeding")
		} else if !allowed {
			return nil, fmt.Errorf("robots.txt disallows fetching %s for agent %q", c.cfg.URL, c.cfg.UserAgent)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	var poems []Poem
	if err := json.NewDecoder(resp.Body).Decode(&poems); err != nil {
		return nil, fmt.Errorf("failed to decode corpus: %w", err)
	}
	if len(poems) == 0 {
		return nil, fmt.Errorf("source returned an empty corpus")
	}

	c.logger.Infof("Fetched %d poems from %s", len(poems), c.cfg.URL)
	return poems, nil
}

// robotsAllowed fetches and evaluates the source host's robots.txt. Per the
// exclusion protocol an unreachable or missing file permits the fetch.
func (c *Client) robotsAllowed(ctx context.Context) (bool, error) {
	source, err := url.Parse(c.cfg.URL)
	if err != nil {
		return false, fmt.Errorf("invalid source URL: %w", err)
	}
	robotsURL := source.Scheme + "://" + source.Host + "/robots.txt"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	robots, err := robotstxt.FromResponse(resp)
	if err != nil {
		return false, fmt.Errorf("failed to parse robots.txt: %w", err)
	}
	return robots.TestAgent(source.Path, c.cfg.UserAgent), nil
}
