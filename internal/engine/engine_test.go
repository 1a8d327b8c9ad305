package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/sonnet-engine/backend/internal/config"
	"github.com/sonnet-engine/backend/internal/engine"
	"github.com/sonnet-engine/backend/internal/fetcher"
	"github.com/sonnet-engine/backend/internal/storage"
)

type fakeSource struct {
	poems []fetcher.Poem
	err   error
	calls int
}

func (f *fakeSource) FetchSonnets(ctx context.Context) ([]fetcher.Poem, error) {
	f.calls++
	return f.poems, f.err
}

func corpus() []fetcher.Poem {
	return []fetcher.Poem{
		{Title: "Sonnet 2: Only love", Lines: []string{"Fair is my love"}},
		{Title: "Sonnet 7: Love and hate", Lines: []string{"My love is deep, my hate is gone"}},
		{Title: "Sonnet 19: Love and hate again", Lines: []string{"I love the morning, I hate the night"}},
	}
}

func newTestEngine(t *testing.T, source engine.SonnetSource) *engine.Engine {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	assert.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return engine.NewEngine(config.Load(), logger.WithField("service", "test"), source, store, nil)
}

func TestEngineLoadFetchesOnCacheMiss(t *testing.T) {
	source := &fakeSource{poems: corpus()}
	eng := newTestEngine(t, source)

	assert.NoError(t, eng.Load(context.Background()))
	assert.Equal(t, 1, source.calls)
	assert.True(t, eng.Ready())

	stats := eng.Stats()
	assert.Equal(t, 3, stats.Documents)
	assert.Greater(t, stats.Terms, 0)

	// The fetched corpus was cached: a second load never hits the source.
	assert.NoError(t, eng.Load(context.Background()))
	assert.Equal(t, 1, source.calls)
}

func TestEngineLoadSourceFailure(t *testing.T) {
	source := &fakeSource{err: errors.New("source down")}
	eng := newTestEngine(t, source)

	assert.Error(t, eng.Load(context.Background()))
	assert.False(t, eng.Ready())
}

func TestEngineSkipsMalformedRecords(t *testing.T) {
	poems := append(corpus(), fetcher.Poem{Title: "not a sonnet title", Lines: []string{"stray line"}})
	eng := newTestEngine(t, &fakeSource{poems: poems})

	assert.NoError(t, eng.Load(context.Background()))
	assert.Equal(t, 3, eng.Stats().Documents)
}

func TestEngineSearch(t *testing.T) {
	eng := newTestEngine(t, &fakeSource{poems: corpus()})
	assert.NoError(t, eng.Load(context.Background()))

	hits := eng.Search("love hate")
	assert.Len(t, hits, 2)
	assert.Equal(t, 7, hits[0].ID)
	assert.Equal(t, 19, hits[1].ID)

	assert.Empty(t, eng.Search("tempest"))
	assert.Empty(t, eng.Search(""))
	assert.Equal(t, int64(3), eng.Stats().Searches)
}

func TestEngineSearchBeforeLoad(t *testing.T) {
	eng := newTestEngine(t, &fakeSource{poems: corpus()})
	assert.Empty(t, eng.Search("love"))
}
