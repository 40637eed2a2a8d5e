package service

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"grouplink/internal/database"
)

// BackupData represents a complete export of the invite keyspace
type BackupData struct {
	Version    string        `json:"version"`
	ExportedAt time.Time     `json:"exported_at"`
	Entries    []BackupEntry `json:"entries"`
}

// BackupEntry is a single key-value pair from the invite store
type BackupEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// BackupService exports and imports the raw invite keyspace
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes all key-value entries to a JSON file
func (s *BackupService) Export(outputPath string) (int, error) {
	rows, err := s.db.Query("SELECT entry_key, entry_value FROM kv_entries ORDER BY entry_key")
	if err != nil {
		return 0, fmt.Errorf("failed to read entries: %w", err)
	}
	defer rows.Close()

	backup := BackupData{
		Version:    "1",
		ExportedAt: time.Now().UTC(),
	}

	for rows.Next() {
		var entry BackupEntry
		if err := rows.Scan(&entry.Key, &entry.Value); err != nil {
			return 0, fmt.Errorf("failed to scan entry: %w", err)
		}
		backup.Entries = append(backup.Entries, entry)
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to iterate entries: %w", err)
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to serialize backup: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0600); err != nil {
		return 0, fmt.Errorf("failed to write backup file: %w", err)
	}

	return len(backup.Entries), nil
}

// Import loads entries from a JSON backup file. When clear is true the
// existing keyspace is dropped first; the whole import runs in a single
// transaction so a failed import leaves the store untouched.
func (s *BackupService) Import(inputPath string, clear bool) (int, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read backup file: %w", err)
	}

	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return 0, fmt.Errorf("failed to parse backup file: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if clear {
		if _, err := tx.Exec("DELETE FROM kv_entries"); err != nil {
			return 0, fmt.Errorf("failed to clear existing entries: %w", err)
		}
	}

	upsert := tx.GetDialect().UpsertEntryQuery()
	for _, entry := range backup.Entries {
		if _, err := tx.Exec(upsert, entry.Key, entry.Value); err != nil {
			return 0, fmt.Errorf("failed to import key %s: %w", entry.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}

	return len(backup.Entries), nil
}
