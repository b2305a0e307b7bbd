// Package prefs persists UI preference flags in a per-profile SQLite
// database: theme mode, muted chats, pinned messages, per-message
// delivery status and reaction lists. It is a plain key/value surface;
// nothing in it is conversation data, which lives in the in-memory
// chat store.
package prefs

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store wraps the SQLite connection for a profile's prefs.db.
type Store struct {
	*sql.DB
}

// Open creates a SQLite connection with WAL mode and a busy timeout.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open prefs db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping prefs db: %w", err)
	}
	return &Store{db}, nil
}
