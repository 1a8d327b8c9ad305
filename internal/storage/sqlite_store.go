package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/glebarez/go-sqlite"

	"github.com/sonnet-engine/backend/internal/fetcher"
)

// SQLiteStore implements PoemStore on a SQLite database. Lines are stored
// newline-joined in a single body column; the cache holds raw records only.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the cache database at dbPath
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS poems (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT UNIQUE NOT NULL,
			author TEXT,
			body TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save upserts the whole corpus in one transaction
func (st *SQLiteStore) Save(poems []fetcher.Poem) error {
	tx, err := st.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO poems (title, author, body) VALUES (?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range poems {
		if _, err := stmt.Exec(p.Title, p.Author, strings.Join(p.Lines, "\n")); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert poem %q: %w", p.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Load reads the corpus back in insertion order; an empty table reports
// ErrCacheMiss.
func (st *SQLiteStore) Load() ([]fetcher.Poem, error) {
	rows, err := st.db.Query("SELECT title, author, body FROM poems ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query cache: %w", err)
	}
	defer rows.Close()

	var poems []fetcher.Poem
	for rows.Next() {
		var title, author, body string
		if err := rows.Scan(&title, &author, &body); err != nil {
			return nil, fmt.Errorf("failed to scan poem row: %w", err)
		}
		poems = append(poems, fetcher.Poem{
			Title:  title,
			Author: author,
			Lines:  strings.Split(body, "\n"),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cache rows: %w", err)
	}
	if len(poems) == 0 {
		return nil, ErrCacheMiss
	}

	return poems, nil
}

// Close closes the underlying database
func (st *SQLiteStore) Close() error {
	return st.db.Close()
}
