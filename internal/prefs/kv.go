package prefs

import (
	"database/sql"
	"errors"
	"time"
)

// Get returns the value stored under key. ok is false when the key has
// never been set; that is not an error.
func (s *Store) Get(key string) (value string, ok bool, err error) {
	err = s.QueryRow(`SELECT value FROM prefs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.Exec(`
		INSERT INTO prefs (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		key, value, time.Now().UnixMilli())
	return err
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	_, err := s.Exec(`DELETE FROM prefs WHERE key = ?`, key)
	return err
}
