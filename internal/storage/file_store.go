package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sonnet-engine/backend/internal/fetcher"
)

const cacheFileName = "sonnets.json"

// FileStore implements PoemStore with a single JSON cache file
type FileStore struct {
	baseDir string
	mu      sync.RWMutex
}

// NewFileStore creates a file-based poem cache under baseDir
func NewFileStore(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &FileStore{
		baseDir: baseDir,
	}, nil
}

// Save writes the whole corpus to the cache file
func (fs *FileStore) Save(poems []fetcher.Poem) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := json.MarshalIndent(poems, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal poems: %w", err)
	}

	path := filepath.Join(fs.baseDir, cacheFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

// Load reads the corpus back from the cache file. A missing or empty cache
// reports ErrCacheMiss so the caller knows to fetch.
func (fs *FileStore) Load() ([]fetcher.Poem, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	path := filepath.Join(fs.baseDir, cacheFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var poems []fetcher.Poem
	if err := json.Unmarshal(data, &poems); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache file: %w", err)
	}
	if len(poems) == 0 {
		return nil, ErrCacheMiss
	}

	return poems, nil
}

// Close is a no-op for file storage
func (fs *FileStore) Close() error {
	return nil
}
