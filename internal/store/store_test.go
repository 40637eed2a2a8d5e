package store

import (
	"os"
	"path/filepath"
	"testing"

	"grouplink/internal/database"
	"grouplink/internal/models"
)

const createTableSQL = `
	CREATE TABLE IF NOT EXISTS kv_entries (
		entry_key TEXT PRIMARY KEY,
		entry_value TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
`

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "store_test.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create kv_entries table: %v", err)
	}

	return New(db)
}

func TestInviteRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	s := newTestStore(t)

	record := &models.InviteRecord{GroupID: "group123", Relay: "wss://relay.example.com"}
	if err := s.PutInvite("ABC12345", record); err != nil {
		t.Fatalf("PutInvite() error: %v", err)
	}

	got, err := s.GetInvite("ABC12345")
	if err != nil {
		t.Fatalf("GetInvite() error: %v", err)
	}
	if got == nil {
		t.Fatal("GetInvite() returned nil for stored code")
	}
	if got.GroupID != "group123" || got.Relay != "wss://relay.example.com" {
		t.Errorf("GetInvite() = %+v, want original record", got)
	}
}

func TestNamespacesDoNotCollide(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	s := newTestStore(t)

	// Same code string in all three namespaces
	plain := &models.InviteRecord{GroupID: "plain-group", Relay: "wss://a.example.com"}
	web := &models.WebInviteRecord{
		InviteRecord: models.InviteRecord{GroupID: "web-group", Relay: "wss://b.example.com"},
		Name:         "Web Group",
		CreatedAt:    1700000000000,
	}

	if err := s.PutInvite("SAME1234", plain); err != nil {
		t.Fatal(err)
	}
	if err := s.PutWebInvite("SAME1234", web); err != nil {
		t.Fatal(err)
	}
	if err := s.PutShortAlias("SAME1234", "TARGET01"); err != nil {
		t.Fatal(err)
	}

	gotPlain, err := s.GetInvite("SAME1234")
	if err != nil || gotPlain == nil {
		t.Fatalf("GetInvite() = %v, %v", gotPlain, err)
	}
	if gotPlain.GroupID != "plain-group" {
		t.Errorf("plain namespace returned %q", gotPlain.GroupID)
	}

	gotWeb, err := s.GetWebInvite("SAME1234")
	if err != nil || gotWeb == nil {
		t.Fatalf("GetWebInvite() = %v, %v", gotWeb, err)
	}
	if gotWeb.GroupID != "web-group" {
		t.Errorf("web namespace returned %q", gotWeb.GroupID)
	}

	target, err := s.GetShortAlias("SAME1234")
	if err != nil {
		t.Fatal(err)
	}
	if target != "TARGET01" {
		t.Errorf("short namespace returned %q", target)
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	s := newTestStore(t)

	record, err := s.GetInvite("doesnotexist")
	if err != nil {
		t.Fatalf("GetInvite() error: %v", err)
	}
	if record != nil {
		t.Errorf("GetInvite() = %+v, want nil", record)
	}

	target, err := s.GetShortAlias("none")
	if err != nil {
		t.Fatalf("GetShortAlias() error: %v", err)
	}
	if target != "" {
		t.Errorf("GetShortAlias() = %q, want empty", target)
	}
}

func TestCorruptValueDegradesToNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "corrupt_test.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatal(err)
	}

	// Plant malformed JSON in every namespace
	for _, key := range []string{"BADCODE1", "web:BADCODE1", "short:bad1"} {
		if _, err := db.Exec(db.Dialect.UpsertEntryQuery(), key, "{not json"); err != nil {
			t.Fatal(err)
		}
	}

	s := New(db)

	if record, err := s.GetInvite("BADCODE1"); err != nil || record != nil {
		t.Errorf("GetInvite() on corrupt value = %v, %v; want nil, nil", record, err)
	}
	if record, err := s.GetWebInvite("BADCODE1"); err != nil || record != nil {
		t.Errorf("GetWebInvite() on corrupt value = %v, %v; want nil, nil", record, err)
	}
	if target, err := s.GetShortAlias("bad1"); err != nil || target != "" {
		t.Errorf("GetShortAlias() on corrupt value = %q, %v; want empty, nil", target, err)
	}
}

func TestPutOverwritesLastWriterWins(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	s := newTestStore(t)

	first := &models.InviteRecord{GroupID: "first", Relay: "wss://a.example.com"}
	second := &models.InviteRecord{GroupID: "second", Relay: "wss://b.example.com"}

	if err := s.PutInvite("DUP12345", first); err != nil {
		t.Fatal(err)
	}
	if err := s.PutInvite("DUP12345", second); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetInvite("DUP12345")
	if err != nil || got == nil {
		t.Fatalf("GetInvite() = %v, %v", got, err)
	}
	if got.GroupID != "second" {
		t.Errorf("expected last write to win, got %q", got.GroupID)
	}
}

func TestHasHelpers(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	s := newTestStore(t)

	if err := s.PutWebInvite("WEB12345", &models.WebInviteRecord{
		InviteRecord: models.InviteRecord{GroupID: "g", Relay: "wss://r.example.com"},
	}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		check func() (bool, error)
		want  bool
	}{
		{"web invite present", func() (bool, error) { return s.HasWebInvite("WEB12345") }, true},
		{"plain namespace empty for same code", func() (bool, error) { return s.HasInvite("WEB12345") }, false},
		{"short alias absent", func() (bool, error) { return s.HasShortAlias("WEB12345") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.check()
			if err != nil {
				t.Fatalf("check error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
