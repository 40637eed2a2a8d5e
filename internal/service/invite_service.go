package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"grouplink/internal/codes"
	"grouplink/internal/models"
)

// ErrInvalidInput signals a create call with missing required fields.
// Absent records are reported as nil results, not errors.
var ErrInvalidInput = errors.New("groupId and relay are required")

// mintAttempts bounds the regenerate-on-collision loop when minting codes
const mintAttempts = 5

// InviteStore is the persistence capability the service depends on
type InviteStore interface {
	PutInvite(code string, record *models.InviteRecord) error
	GetInvite(code string) (*models.InviteRecord, error)
	HasInvite(code string) (bool, error)
	PutWebInvite(code string, record *models.WebInviteRecord) error
	GetWebInvite(code string) (*models.WebInviteRecord, error)
	HasWebInvite(code string) (bool, error)
	PutShortAlias(shortCode, targetCode string) error
	GetShortAlias(shortCode string) (string, error)
	HasShortAlias(shortCode string) (bool, error)
}

// WebInviteMetadata carries the optional display fields of a web invite
type WebInviteMetadata struct {
	Name          string
	Description   string
	Avatar        string
	CreatorPubkey string
}

// CreatedInvite is the result of minting an invite of any kind
type CreatedInvite struct {
	Code string `json:"code"`
	URL  string `json:"url"`
}

// CreatedShortInvite is the result of minting a short alias
type CreatedShortInvite struct {
	ShortCode string `json:"shortCode"`
	URL       string `json:"url"`
}

// InviteService mints invite codes and resolves them back to records
type InviteService struct {
	store   InviteStore
	baseURL string
}

// NewInviteService creates a new invite service. baseURL is the canonical
// origin invite links are built on, e.g. https://rabble.community
func NewInviteService(store InviteStore, baseURL string) *InviteService {
	return &InviteService{
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// CreateInvite validates and persists a plain invite, returning its code
// and canonical URL
func (s *InviteService) CreateInvite(groupID, relay string) (*CreatedInvite, error) {
	record := &models.InviteRecord{GroupID: groupID, Relay: relay}
	if err := record.Validate(); err != nil {
		return nil, ErrInvalidInput
	}

	code, err := s.mint(codes.GenerateCode, s.store.HasInvite)
	if err != nil {
		return nil, err
	}

	if err := s.store.PutInvite(code, record); err != nil {
		return nil, fmt.Errorf("failed to store invite: %w", err)
	}

	return &CreatedInvite{Code: code, URL: s.baseURL + "/i/" + code}, nil
}

// CreateWebInvite validates and persists a web invite with display
// metadata. CreatedAt is set here, never by the caller.
func (s *InviteService) CreateWebInvite(groupID, relay string, meta WebInviteMetadata) (*CreatedInvite, error) {
	record := &models.WebInviteRecord{
		InviteRecord:  models.InviteRecord{GroupID: groupID, Relay: relay},
		Name:          meta.Name,
		Description:   meta.Description,
		Avatar:        meta.Avatar,
		CreatorPubkey: meta.CreatorPubkey,
		CreatedAt:     time.Now().UnixMilli(),
	}
	if err := record.Validate(); err != nil {
		return nil, ErrInvalidInput
	}

	code, err := s.mint(codes.GenerateCode, s.store.HasWebInvite)
	if err != nil {
		return nil, err
	}

	if err := s.store.PutWebInvite(code, record); err != nil {
		return nil, fmt.Errorf("failed to store web invite: %w", err)
	}

	return &CreatedInvite{Code: code, URL: s.baseURL + "/join/" + code}, nil
}

// CreateShortInvite mints a 4-character alias for an existing invite
// code. It does not verify the target resolves; callers that need that
// guarantee check with CodeExists first.
func (s *InviteService) CreateShortInvite(targetCode string) (*CreatedShortInvite, error) {
	if strings.TrimSpace(targetCode) == "" {
		return nil, ErrInvalidInput
	}

	shortCode, err := s.mint(codes.GenerateShortCode, s.store.HasShortAlias)
	if err != nil {
		return nil, err
	}

	if err := s.store.PutShortAlias(shortCode, targetCode); err != nil {
		return nil, fmt.Errorf("failed to store short alias: %w", err)
	}

	return &CreatedShortInvite{ShortCode: shortCode, URL: s.baseURL + "/j/" + shortCode}, nil
}

// GetInvite resolves a code in the plain namespace; nil when absent
func (s *InviteService) GetInvite(code string) (*models.InviteRecord, error) {
	return s.store.GetInvite(code)
}

// GetWebInvite resolves a code in the web namespace; nil when absent
func (s *InviteService) GetWebInvite(code string) (*models.WebInviteRecord, error) {
	return s.store.GetWebInvite(code)
}

// ResolveShortCode resolves a short alias to its target code; "" when
// absent. It does not check that the target itself still resolves.
func (s *InviteService) ResolveShortCode(shortCode string) (string, error) {
	return s.store.GetShortAlias(shortCode)
}

// CodeExists reports whether a code resolves in the web or plain
// namespace
func (s *InviteService) CodeExists(code string) (bool, error) {
	if found, err := s.store.HasWebInvite(code); err != nil || found {
		return found, err
	}
	return s.store.HasInvite(code)
}

// mint generates codes until one is free in the target namespace,
// giving up after a bounded number of collisions
func (s *InviteService) mint(generate func() (string, error), taken func(string) (bool, error)) (string, error) {
	for i := 0; i < mintAttempts; i++ {
		code, err := generate()
		if err != nil {
			return "", fmt.Errorf("failed to generate code: %w", err)
		}

		exists, err := taken(code)
		if err != nil {
			return "", fmt.Errorf("failed to check code availability: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to mint a unique code after %d attempts", mintAttempts)
}
