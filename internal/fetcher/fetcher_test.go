package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/sonnet-engine/backend/internal/config"
	"github.com/sonnet-engine/backend/internal/fetcher"
)

const corpusJSON = `[
  {
    "title": "Sonnet 1: From fairest creatures we desire increase",
    "author": "William Shakespeare",
    "lines": ["From fairest creatures we desire increase,", "That thereby beauty's rose might never die,"],
    "linecount": "2"
  },
  {
    "title": "Sonnet 18: Shall I compare thee to a summer's day?",
    "author": "William Shakespeare",
    "lines": ["Shall I compare thee to a summer's day?"],
    "linecount": "1"
  }
]`

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger.WithField("service", "test")
}

func sourceConfig(url string, robots bool) config.SourceConfig {
	return config.SourceConfig{
		URL:         url,
		UserAgent:   "SonnetEngine-Test/1.0",
		Timeout:     5 * time.Second,
		RobotsCheck: robots,
	}
}

func TestFetchSonnets(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(corpusJSON))
	}))
	defer ts.Close()

	c := fetcher.NewClient(sourceConfig(ts.URL, false), testLogger())

	poems, err := c.FetchSonnets(context.Background())
	assert.NoError(t, err)
	assert.Len(t, poems, 2)
	assert.Equal(t, "Sonnet 1: From fairest creatures we desire increase", poems[0].Title)
	assert.Len(t, poems[0].Lines, 2)
}

func TestFetchSonnetsNon200(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	c := fetcher.NewClient(sourceConfig(ts.URL, false), testLogger())

	_, err := c.FetchSonnets(context.Background())
	assert.Error(t, err)
}

func TestFetchSonnetsEmptyCorpus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer ts.Close()

	c := fetcher.NewClient(sourceConfig(ts.URL, false), testLogger())

	_, err := c.FetchSonnets(context.Background())
	assert.Error(t, err)
}

func TestFetchSonnetsRobotsDisallowed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("User-agent: *\nDisallow: /\n"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(corpusJSON))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	c := fetcher.NewClient(sourceConfig(ts.URL+"/author/Shakespeare", true), testLogger())

	_, err := c.FetchSonnets(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "robots.txt")
}

func TestFetchSonnetsRobotsMissingAllows(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", http.NotFound)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(corpusJSON))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	c := fetcher.NewClient(sourceConfig(ts.URL+"/author/Shakespeare", true), testLogger())

	poems, err := c.FetchSonnets(context.Background())
	assert.NoError(t, err)
	assert.Len(t, poems, 2)
}

func TestPoemDocument(t *testing.T) {
	p := fetcher.Poem{
		Title: "Sonnet 18: Shall I compare thee to a summer's day?",
		Lines: []string{"Shall I compare thee to a summer's day?"},
	}

	doc, err := p.Document()
	assert.NoError(t, err)
	assert.Equal(t, 18, doc.ID)
	assert.Equal(t, "Shall I compare thee to a summer's day?", doc.Title)
	assert.Equal(t, p.Lines, doc.Lines)
}

func TestPoemDocumentMalformed(t *testing.T) {
	cases := map[string]fetcher.Poem{
		"no lines":           {Title: "Sonnet 1: From fairest creatures", Lines: nil},
		"no separator":       {Title: "Sonnet 1", Lines: []string{"a line"}},
		"no numeric id":      {Title: "Sonnet: From fairest creatures", Lines: []string{"a line"}},
		"non-numeric prefix": {Title: "Prologue A: Something", Lines: []string{"a line"}},
	}

	for name, p := range cases {
		_, err := p.Document()
		assert.Error(t, err, name)
	}
}
