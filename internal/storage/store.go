package storage

import (
	"errors"

	"github.com/sonnet-engine/backend/internal/fetcher"
)

// ErrCacheMiss is returned by Load when no cached corpus exists yet.
var ErrCacheMiss = errors.New("storage: no cached poems")

// PoemStore defines the local cache for the fetched corpus. The cache stores
// raw poem records, never the index; the index is rebuilt on every start.
type PoemStore interface {
	Save(poems []fetcher.Poem) error
	Load() ([]fetcher.Poem, error)
	Close() error
}
