// Package store persists invite records in a flat key-value table.
// Three logical namespaces share the table, distinguished by key prefix:
// plain invites under the bare code, web invites under "web:", and
// short aliases under "short:".
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"grouplink/internal/database"
	"grouplink/internal/models"
)

const (
	webPrefix   = "web:"
	shortPrefix = "short:"
)

// Store provides namespaced access to the key-value table
type Store struct {
	db database.DBTX
}

// New creates a store over a database connection or transaction
func New(db database.DBTX) *Store {
	return &Store{db: db}
}

// put serializes a value and upserts it under the given key.
// Last writer wins; there is no optimistic concurrency.
func (s *Store) put(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value for key %s: %w", key, err)
	}

	_, err = s.db.Exec(s.db.GetDialect().UpsertEntryQuery(), key, string(data))
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// get reads and deserializes the value under the given key. A stored
// value that fails to parse is logged and reported as not found, so
// corrupt data never propagates to callers.
func (s *Store) get(key string, out interface{}) (bool, error) {
	var raw string
	err := s.db.QueryRow("SELECT entry_value FROM kv_entries WHERE entry_key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read key %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Printf("Corrupt value stored under key %s, treating as not found: %v", key, err)
		return false, nil
	}
	return true, nil
}

// exists checks for a key without deserializing its value
func (s *Store) exists(key string) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM kv_entries WHERE entry_key = ?", key).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check key %s: %w", key, err)
	}
	return count > 0, nil
}

// PutInvite stores a plain invite record under its code
func (s *Store) PutInvite(code string, record *models.InviteRecord) error {
	return s.put(code, record)
}

// GetInvite retrieves a plain invite record, or nil if absent or corrupt
func (s *Store) GetInvite(code string) (*models.InviteRecord, error) {
	var record models.InviteRecord
	found, err := s.get(code, &record)
	if err != nil || !found {
		return nil, err
	}
	return &record, nil
}

// HasInvite checks whether a code exists in the plain namespace
func (s *Store) HasInvite(code string) (bool, error) {
	return s.exists(code)
}

// PutWebInvite stores a web invite record under its code
func (s *Store) PutWebInvite(code string, record *models.WebInviteRecord) error {
	return s.put(webPrefix+code, record)
}

// GetWebInvite retrieves a web invite record, or nil if absent or corrupt
func (s *Store) GetWebInvite(code string) (*models.WebInviteRecord, error) {
	var record models.WebInviteRecord
	found, err := s.get(webPrefix+code, &record)
	if err != nil || !found {
		return nil, err
	}
	return &record, nil
}

// HasWebInvite checks whether a code exists in the web namespace
func (s *Store) HasWebInvite(code string) (bool, error) {
	return s.exists(webPrefix + code)
}

// PutShortAlias stores a short alias pointing at a full invite code
func (s *Store) PutShortAlias(shortCode, targetCode string) error {
	return s.put(shortPrefix+shortCode, &models.ShortAlias{Code: targetCode})
}

// GetShortAlias retrieves the target code for a short alias, or ""
// if absent or corrupt
func (s *Store) GetShortAlias(shortCode string) (string, error) {
	var alias models.ShortAlias
	found, err := s.get(shortPrefix+shortCode, &alias)
	if err != nil || !found {
		return "", err
	}
	return alias.Code, nil
}

// HasShortAlias checks whether a short code exists in the alias namespace
func (s *Store) HasShortAlias(shortCode string) (bool, error) {
	return s.exists(shortPrefix + shortCode)
}
