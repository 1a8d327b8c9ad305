package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sonnet-engine/backend/internal/config"
	"github.com/sonnet-engine/backend/internal/fetcher"
	"github.com/sonnet-engine/backend/internal/metrics"
	"github.com/sonnet-engine/backend/internal/search"
	"github.com/sonnet-engine/backend/internal/storage"
)

// SonnetSource provides the raw corpus when the local cache is empty.
type SonnetSource interface {
	FetchSonnets(ctx context.Context) ([]fetcher.Poem, error)
}

// Engine orchestrates corpus loading and search: cache-first sourcing, raw
// record validation, one index build, then read-only queries.
type Engine struct {
	Config  *config.Config
	Logger  *logrus.Entry
	Source  SonnetSource
	Store   storage.PoemStore
	Metrics *metrics.Metrics

	mu    sync.RWMutex
	index *search.Index
	stats Stats
}

// Stats is a snapshot of the engine's counters.
type Stats struct {
	Documents int
	Terms     int
	Searches  int64
	StartTime time.Time
}

func NewEngine(cfg *config.Config, logger *logrus.Entry, source SonnetSource, store storage.PoemStore, m *metrics.Metrics) *Engine {
	return &Engine{
		Config:  cfg,
		Logger:  logger,
		Source:  source,
		Store:   store,
		Metrics: m,
	}
}

// Load sources the corpus (cache first, remote on a miss), validates the raw
// records, and builds the index. It runs to completion before any search is
// answered; malformed records are logged and skipped.
func (e *Engine) Load(ctx context.Context) error {
	poems, err := e.Store.Load()
	if errors.Is(err, storage.ErrCacheMiss) {
		e.Logger.Info("No cached corpus, fetching from remote source")
		poems, err = e.Source.FetchSonnets(ctx)
		if err != nil {
			return fmt.Errorf("fetching corpus: %w", err)
		}
		if saveErr := e.Store.Save(poems); saveErr != nil {
			e.Logger.WithError(saveErr).Warn("Failed to cache fetched corpus")
		}
	} else if err != nil {
		return fmt.Errorf("loading cached corpus: %w", err)
	}

	docs := make([]search.Document, 0, len(poems))
	for _, p := range poems {
		doc, err := p.Document()
		if err != nil {
			e.Logger.WithError(err).Warn("Skipping malformed poem record")
			continue
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return fmt.Errorf("corpus contains no usable documents")
	}

	idx := search.BuildIndex(docs)

	e.mu.Lock()
	e.index = idx
	e.stats.Documents = len(docs)
	e.stats.Terms = idx.Terms()
	e.stats.StartTime = time.Now()
	e.mu.Unlock()

	if e.Metrics != nil {
		e.Metrics.DocumentsIndexed.Set(float64(len(docs)))
		e.Metrics.IndexTerms.Set(float64(idx.Terms()))
	}

	e.Logger.Infof("Indexed %d documents (%d distinct terms)", len(docs), idx.Terms())
	return nil
}

// Search answers a conjunctive keyword query. Searching before Load has
// completed yields an empty result, as does any query with no match.
func (e *Engine) Search(raw string) []search.Document {
	e.mu.RLock()
	idx := e.index
	e.mu.RUnlock()
	if idx == nil {
		return nil
	}

	start := time.Now()
	results := idx.Search(search.NewQuery(raw))

	e.mu.Lock()
	e.stats.Searches++
	e.mu.Unlock()

	if e.Metrics != nil {
		outcome := "hit"
		if len(results) == 0 {
			outcome = "miss"
		}
		e.Metrics.SearchesTotal.WithLabelValues(outcome).Inc()
		e.Metrics.SearchDuration.Observe(time.Since(start).Seconds())
	}
	return results
}

// Ready reports whether the index has been built.
func (e *Engine) Ready() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.index != nil
}

// Stats returns a snapshot of the engine's counters.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stats
}
