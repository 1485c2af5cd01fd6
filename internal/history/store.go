package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sahilm/fuzzy"
	_ "modernc.org/sqlite"
)

// Entry is one recorded suggestion.
type Entry struct {
	ID        int64
	CreatedAt time.Time
	Input     string // Buffer text that produced the suggestion
	Command   string // Suggested command
	Provider  string
	Accepted  bool // True when the user accepted the suggestion
}

// Store keeps suggestion history in SQLite. It feeds inline completions in
// the editor and the history command.
type Store struct {
	db         *sql.DB
	maxEntries int
}

const schema = `
CREATE TABLE IF NOT EXISTS entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    input TEXT NOT NULL,
    command TEXT NOT NULL,
    provider TEXT NOT NULL,
    accepted BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_entries_created_at ON entries(created_at DESC);
`

// NewStore opens (or creates) the history database at path. Entries beyond
// maxEntries are pruned on open; maxEntries <= 0 disables pruning.
func NewStore(path string, maxEntries int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	store := &Store{db: db, maxEntries: maxEntries}

	if err := store.prune(context.Background()); err != nil {
		// Pruning failure is not fatal; the store still works.
		fmt.Fprintf(os.Stderr, "warning: history pruning failed: %v\n", err)
	}

	return store, nil
}

// Add records a suggestion.
func (s *Store) Add(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (created_at, input, command, provider, accepted)
		VALUES (?, ?, ?, ?, ?)`,
		e.CreatedAt, e.Input, e.Command, e.Provider, e.Accepted)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, input, command, provider, accepted
		FROM entries
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Commands returns distinct accepted commands, most recent first. These feed
// the editor's inline completion when no model suggestion is active.
func (s *Store) Commands(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT command, MAX(id) AS last_id
		FROM entries
		WHERE accepted = TRUE
		GROUP BY command
		ORDER BY last_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query commands: %w", err)
	}
	defer rows.Close()

	var commands []string
	for rows.Next() {
		var command string
		var lastID int64
		if err := rows.Scan(&command, &lastID); err != nil {
			return nil, fmt.Errorf("scan command: %w", err)
		}
		commands = append(commands, command)
	}
	return commands, rows.Err()
}

// Search fuzzy-matches query against recent commands and inputs. An empty
// query returns the most recent entries unfiltered.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	if query == "" {
		return s.Recent(ctx, limit)
	}

	// Fuzzy ranking happens in memory over a recent window. History is
	// capped, so the window covers effectively everything.
	entries, err := s.Recent(ctx, 500)
	if err != nil {
		return nil, err
	}

	haystack := make([]string, len(entries))
	for i, e := range entries {
		haystack[i] = e.Command + " " + e.Input
	}

	matches := fuzzy.Find(query, haystack)
	results := make([]Entry, 0, limit)
	for _, match := range matches {
		results = append(results, entries[match.Index])
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}

// MarkAccepted flags the newest entry with this command as accepted.
func (s *Store) MarkAccepted(ctx context.Context, command string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE entries SET accepted = TRUE
		WHERE id = (SELECT MAX(id) FROM entries WHERE command = ?)`, command)
	return err
}

// Clear removes all history.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM entries")
	return err
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&n)
	return n, err
}

// prune drops the oldest rows beyond maxEntries.
func (s *Store) prune(ctx context.Context) error {
	if s.maxEntries <= 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM entries WHERE id IN (
			SELECT id FROM entries
			ORDER BY id DESC
			LIMIT -1 OFFSET ?
		)`, s.maxEntries)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.Input, &e.Command, &e.Provider, &e.Accepted); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
