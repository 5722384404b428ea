// Package sqlite caches extracted document text in SQLite.
//
// Entries are keyed by the SHA-256 of the document bytes, so an edited file
// never hits a stale entry. Conversation history is never stored here.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one cached extraction.
type Entry struct {
	Digest    string
	Name      string
	Text      string
	Pages     int
	CreatedAt time.Time
}

// Store manages the extraction cache.
type Store struct {
	db *sql.DB
}

// New opens (or creates) a SQLite database at the given path.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS extractions (
			digest     TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			text       TEXT NOT NULL,
			pages      INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_extractions_name
			ON extractions(name);
	`)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the cached text for digest. ok is false on a miss.
func (s *Store) Get(digest string) (text string, ok bool, err error) {
	row := s.db.QueryRow(`SELECT text FROM extractions WHERE digest = ?`, digest)
	if err := row.Scan(&text); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return text, true, nil
}

// Put stores (or replaces) the extraction for digest.
func (s *Store) Put(digest, name, text string, pages int) error {
	_, err := s.db.Exec(
		`INSERT INTO extractions (digest, name, text, pages, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(digest) DO UPDATE SET
			name = excluded.name, text = excluded.text,
			pages = excluded.pages, created_at = excluded.created_at`,
		digest, name, text, pages, time.Now().UTC(),
	)
	return err
}

// List returns cache entries ordered by creation time (newest first).
func (s *Store) List() ([]*Entry, error) {
	rows, err := s.db.Query(
		`SELECT digest, name, text, pages, created_at
		 FROM extractions ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(&e.Digest, &e.Name, &e.Text, &e.Pages, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Purge deletes every cache entry and returns how many were removed.
func (s *Store) Purge() (int64, error) {
	result, err := s.db.Exec(`DELETE FROM extractions`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
