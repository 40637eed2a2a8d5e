package service

import (
	"errors"
	"strings"
	"testing"

	"grouplink/internal/models"
)

// fakeStore is an in-memory InviteStore that counts writes
type fakeStore struct {
	invites    map[string]*models.InviteRecord
	webInvites map[string]*models.WebInviteRecord
	aliases    map[string]string
	putCalls   int
	failPuts   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		invites:    make(map[string]*models.InviteRecord),
		webInvites: make(map[string]*models.WebInviteRecord),
		aliases:    make(map[string]string),
	}
}

func (f *fakeStore) PutInvite(code string, record *models.InviteRecord) error {
	f.putCalls++
	if f.failPuts {
		return errors.New("store unavailable")
	}
	f.invites[code] = record
	return nil
}

func (f *fakeStore) GetInvite(code string) (*models.InviteRecord, error) {
	return f.invites[code], nil
}

func (f *fakeStore) HasInvite(code string) (bool, error) {
	_, ok := f.invites[code]
	return ok, nil
}

func (f *fakeStore) PutWebInvite(code string, record *models.WebInviteRecord) error {
	f.putCalls++
	if f.failPuts {
		return errors.New("store unavailable")
	}
	f.webInvites[code] = record
	return nil
}

func (f *fakeStore) GetWebInvite(code string) (*models.WebInviteRecord, error) {
	return f.webInvites[code], nil
}

func (f *fakeStore) HasWebInvite(code string) (bool, error) {
	_, ok := f.webInvites[code]
	return ok, nil
}

func (f *fakeStore) PutShortAlias(shortCode, targetCode string) error {
	f.putCalls++
	if f.failPuts {
		return errors.New("store unavailable")
	}
	f.aliases[shortCode] = targetCode
	return nil
}

func (f *fakeStore) GetShortAlias(shortCode string) (string, error) {
	return f.aliases[shortCode], nil
}

func (f *fakeStore) HasShortAlias(shortCode string) (bool, error) {
	_, ok := f.aliases[shortCode]
	return ok, nil
}

func TestCreateInviteRoundTrip(t *testing.T) {
	fs := newFakeStore()
	svc := NewInviteService(fs, "https://example.com")

	created, err := svc.CreateInvite("group123", "wss://relay.example.com")
	if err != nil {
		t.Fatalf("CreateInvite() error: %v", err)
	}
	if len(created.Code) != 8 {
		t.Errorf("code length = %d, want 8", len(created.Code))
	}
	if created.URL != "https://example.com/i/"+created.Code {
		t.Errorf("URL = %q", created.URL)
	}

	record, err := svc.GetInvite(created.Code)
	if err != nil {
		t.Fatalf("GetInvite() error: %v", err)
	}
	if record == nil {
		t.Fatal("GetInvite() returned nil for freshly minted code")
	}
	if record.GroupID != "group123" || record.Relay != "wss://relay.example.com" {
		t.Errorf("GetInvite() = %+v", record)
	}
}

func TestCreateInviteInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		groupID string
		relay   string
	}{
		{"empty group id", "", "wss://relay.example.com"},
		{"empty relay", "group123", ""},
		{"both empty", "", ""},
		{"whitespace group id", "  ", "wss://relay.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFakeStore()
			svc := NewInviteService(fs, "https://example.com")

			_, err := svc.CreateInvite(tt.groupID, tt.relay)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("CreateInvite() error = %v, want ErrInvalidInput", err)
			}
			if fs.putCalls != 0 {
				t.Errorf("invalid input caused %d store writes, want 0", fs.putCalls)
			}
		})
	}
}

func TestCreateWebInviteSetsCreatedAt(t *testing.T) {
	fs := newFakeStore()
	svc := NewInviteService(fs, "https://example.com")

	created, err := svc.CreateWebInvite("group123", "wss://relay.example.com", WebInviteMetadata{
		Name:        "Test Group",
		Description: "A test group",
	})
	if err != nil {
		t.Fatalf("CreateWebInvite() error: %v", err)
	}
	if !strings.HasPrefix(created.URL, "https://example.com/join/") {
		t.Errorf("URL = %q, want /join/ path", created.URL)
	}

	record, err := svc.GetWebInvite(created.Code)
	if err != nil || record == nil {
		t.Fatalf("GetWebInvite() = %v, %v", record, err)
	}
	if record.CreatedAt <= 0 {
		t.Error("CreatedAt was not set by the server")
	}
	if record.Name != "Test Group" {
		t.Errorf("Name = %q", record.Name)
	}
}

func TestShortAliasRoundTrip(t *testing.T) {
	fs := newFakeStore()
	svc := NewInviteService(fs, "https://example.com")

	created, err := svc.CreateInvite("group123", "wss://relay.example.com")
	if err != nil {
		t.Fatal(err)
	}

	short, err := svc.CreateShortInvite(created.Code)
	if err != nil {
		t.Fatalf("CreateShortInvite() error: %v", err)
	}
	if len(short.ShortCode) != 4 {
		t.Errorf("short code length = %d, want 4", len(short.ShortCode))
	}
	if short.URL != "https://example.com/j/"+short.ShortCode {
		t.Errorf("URL = %q", short.URL)
	}

	target, err := svc.ResolveShortCode(short.ShortCode)
	if err != nil {
		t.Fatalf("ResolveShortCode() error: %v", err)
	}
	if target != created.Code {
		t.Errorf("ResolveShortCode() = %q, want %q", target, created.Code)
	}
}

func TestResolveUnknownShortCode(t *testing.T) {
	svc := NewInviteService(newFakeStore(), "https://example.com")

	target, err := svc.ResolveShortCode("zzzz")
	if err != nil {
		t.Fatalf("ResolveShortCode() error: %v", err)
	}
	if target != "" {
		t.Errorf("ResolveShortCode() = %q, want empty", target)
	}
}

func TestCodeExistsChecksBothNamespaces(t *testing.T) {
	fs := newFakeStore()
	svc := NewInviteService(fs, "https://example.com")

	plain, err := svc.CreateInvite("g1", "wss://relay.example.com")
	if err != nil {
		t.Fatal(err)
	}
	web, err := svc.CreateWebInvite("g2", "wss://relay.example.com", WebInviteMetadata{Name: "G2"})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		code string
		want bool
	}{
		{"plain invite", plain.Code, true},
		{"web invite", web.Code, true},
		{"unknown code", "NOPE0000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.CodeExists(tt.code)
			if err != nil {
				t.Fatalf("CodeExists() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("CodeExists(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestCreateInviteStoreFailure(t *testing.T) {
	fs := newFakeStore()
	fs.failPuts = true
	svc := NewInviteService(fs, "https://example.com")

	_, err := svc.CreateInvite("group123", "wss://relay.example.com")
	if err == nil {
		t.Fatal("expected error when store write fails")
	}
	if errors.Is(err, ErrInvalidInput) {
		t.Error("store failure should not be reported as invalid input")
	}
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	fs := newFakeStore()
	svc := NewInviteService(fs, "https://example.com/")

	created, err := svc.CreateInvite("group123", "wss://relay.example.com")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(created.URL, "com//") {
		t.Errorf("URL has doubled slash: %q", created.URL)
	}
}
