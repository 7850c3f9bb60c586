package internal

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"
)

// CategoryExchange is the distinguished category model conversation
// exchanges are remapped to, regardless of the label they arrived
// with.
const CategoryExchange = "LLM"

// Store persists category visibility flags across viewer runs. Values
// at rest are the strings "true"/"false", one entry per category the
// user has ever toggled.
type Store interface {
	// Get returns the stored flag for category; ok is false when the
	// user has never toggled it.
	Get(category string) (visible bool, ok bool, err error)
	// Set records a preference. Idempotent and immediately readable.
	Set(category string, visible bool) error
	// All returns every stored preference.
	All() (map[string]bool, error)
	Close() error
}

// MemoryStore is an in-process Store, used in tests and as a fallback
// when the on-disk store cannot be opened.
type MemoryStore struct {
	flags map[string]bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{flags: make(map[string]bool)}
}

func (s *MemoryStore) Get(category string) (bool, bool, error) {
	visible, ok := s.flags[category]
	return visible, ok, nil
}

func (s *MemoryStore) Set(category string, visible bool) error {
	s.flags[category] = visible
	return nil
}

func (s *MemoryStore) All() (map[string]bool, error) {
	out := make(map[string]bool, len(s.flags))
	for k, v := range s.flags {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// SQLiteStore persists preferences in a single key/value table.
type SQLiteStore struct {
	db *sql.DB
}

// DefaultStorePath returns the preference database location in the
// user's home directory.
func DefaultStorePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".trace-view", "prefs.db"), nil
}

// OpenStore opens (creating if needed) the preference database.
func OpenStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &StoreError{Op: "open", Key: path, Err: err}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StoreError{Op: "open", Key: path, Err: err}
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StoreError{Op: "open", Key: path, Err: err}
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS prefs (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		db.Close()
		return nil, &StoreError{Op: "init", Key: path, Err: err}
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(category string) (bool, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM prefs WHERE key = ?`, category).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, &StoreError{Op: "get", Key: category, Err: err}
	}
	visible, err := strconv.ParseBool(value)
	if err != nil {
		return false, false, &StoreError{Op: "get", Key: category, Err: err}
	}
	return visible, true, nil
}

func (s *SQLiteStore) Set(category string, visible bool) error {
	_, err := s.db.Exec(
		`INSERT INTO prefs (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		category, strconv.FormatBool(visible),
	)
	if err != nil {
		return &StoreError{Op: "set", Key: category, Err: err}
	}
	return nil
}

func (s *SQLiteStore) All() (map[string]bool, error) {
	rows, err := s.db.Query(`SELECT key, value FROM prefs`)
	if err != nil {
		return nil, &StoreError{Op: "list", Key: "prefs", Err: err}
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, &StoreError{Op: "list", Key: "prefs", Err: err}
		}
		visible, err := strconv.ParseBool(value)
		if err != nil {
			continue
		}
		out[key] = visible
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "list", Key: "prefs", Err: err}
	}
	return out, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Visibility resolves per-category visibility: an explicit stored
// preference wins; otherwise the default policy applies against the
// set of categories actually present in the loaded stream.
type Visibility struct {
	store Store
	seen  []string
}

// NewVisibility creates a resolver over store for a stream whose seen
// categories are given in first-appearance order. store may be nil.
func NewVisibility(store Store, seen []string) *Visibility {
	return &Visibility{store: store, seen: seen}
}

// IsVisible reports whether nodes of the given category should show.
// The empty category is always visible and owns no control.
func (v *Visibility) IsVisible(category string) bool {
	if category == "" {
		return true
	}
	if v.store != nil {
		if visible, ok, err := v.store.Get(category); err == nil && ok {
			return visible
		}
	}
	return DefaultVisible(category, v.seen)
}

// DefaultVisible is the seed policy: the exchange category defaults to
// visible only when no other category is present in the stream (the
// common non-verbose capture shows model exchanges with no setup
// friction); everything else defaults to hidden.
func DefaultVisible(category string, seen []string) bool {
	if category != CategoryExchange {
		return false
	}
	for _, c := range seen {
		if c != CategoryExchange {
			return false
		}
	}
	return true
}
