package handlers

import (
	"errors"
	"html/template"
	"testing"

	"grouplink/internal/brand"
	"grouplink/internal/models"
	"grouplink/internal/service"
)

// fakeStore is an in-memory InviteStore for handler tests. failGets
// simulates an unreachable store on the read path.
type fakeStore struct {
	invites    map[string]*models.InviteRecord
	webInvites map[string]*models.WebInviteRecord
	aliases    map[string]string
	putCalls   int
	failGets   bool
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
	f.invites[code] = record
	return nil
}

func (f *fakeStore) GetInvite(code string) (*models.InviteRecord, error) {
	if f.failGets {
		return nil, errors.New("store unavailable")
	}
	return f.invites[code], nil
}

func (f *fakeStore) HasInvite(code string) (bool, error) {
	if f.failGets {
		return false, errors.New("store unavailable")
	}
	_, ok := f.invites[code]
	return ok, nil
}

func (f *fakeStore) PutWebInvite(code string, record *models.WebInviteRecord) error {
	f.putCalls++
	f.webInvites[code] = record
	return nil
}

func (f *fakeStore) GetWebInvite(code string) (*models.WebInviteRecord, error) {
	if f.failGets {
		return nil, errors.New("store unavailable")
	}
	return f.webInvites[code], nil
}

func (f *fakeStore) HasWebInvite(code string) (bool, error) {
	if f.failGets {
		return false, errors.New("store unavailable")
	}
	_, ok := f.webInvites[code]
	return ok, nil
}

func (f *fakeStore) PutShortAlias(shortCode, targetCode string) error {
	f.putCalls++
	f.aliases[shortCode] = targetCode
	return nil
}

func (f *fakeStore) GetShortAlias(shortCode string) (string, error) {
	if f.failGets {
		return "", errors.New("store unavailable")
	}
	return f.aliases[shortCode], nil
}

func (f *fakeStore) HasShortAlias(shortCode string) (bool, error) {
	if f.failGets {
		return false, errors.New("store unavailable")
	}
	_, ok := f.aliases[shortCode]
	return ok, nil
}

func newTestService(fs *fakeStore) *service.InviteService {
	return service.NewInviteService(fs, "https://example.com")
}

func loadTestTemplates(t *testing.T) *template.Template {
	t.Helper()
	tmpl, err := template.ParseGlob("../../templates/*.tmpl")
	if err != nil {
		t.Fatalf("Failed to parse templates: %v", err)
	}
	return tmpl
}

func testBrand() *brand.Brand {
	return brand.Default()
}
