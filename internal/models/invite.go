package models

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// DefaultGroupName is shown when a web invite has no name
const DefaultGroupName = "Community Group"

// DefaultGroupDescription is shown when a web invite has no description
const DefaultGroupDescription = "You've been invited to join this group."

// InviteRecord is a single invitation to join a community group.
// Both fields are required and immutable once stored.
type InviteRecord struct {
	GroupID string `json:"groupId"`
	Relay   string `json:"relay"`
}

// Validate checks that the required fields are present
func (r *InviteRecord) Validate() error {
	if strings.TrimSpace(r.GroupID) == "" {
		return fmt.Errorf("groupId is required")
	}
	if strings.TrimSpace(r.Relay) == "" {
		return fmt.Errorf("relay is required")
	}
	return nil
}

// WebInviteRecord extends InviteRecord with display metadata for the
// web landing page. CreatedAt is set by the server at creation time,
// in epoch milliseconds.
type WebInviteRecord struct {
	InviteRecord
	Name          string `json:"name,omitempty"`
	Description   string `json:"description,omitempty"`
	Avatar        string `json:"avatar,omitempty"`
	CreatorPubkey string `json:"creatorPubkey,omitempty"`
	CreatedAt     int64  `json:"createdAt"`
}

// HasMetadata reports whether any display metadata is set
func (r *WebInviteRecord) HasMetadata() bool {
	return r.Name != "" || r.Description != "" || r.Avatar != "" || r.CreatorPubkey != ""
}

// DisplayName returns the group name or the default fallback
func (r *WebInviteRecord) DisplayName() string {
	if strings.TrimSpace(r.Name) == "" {
		return DefaultGroupName
	}
	return r.Name
}

// DisplayDescription returns the description or the default fallback
func (r *WebInviteRecord) DisplayDescription() string {
	if strings.TrimSpace(r.Description) == "" {
		return DefaultGroupDescription
	}
	return r.Description
}

// Initial returns the first letter of the display name, uppercased,
// for the generated avatar badge when no avatar image is set
func (r *WebInviteRecord) Initial() string {
	for _, c := range r.DisplayName() {
		return string(unicode.ToUpper(c))
	}
	return "?"
}

// CreatedTime converts the stored epoch milliseconds to a time.Time
func (r *WebInviteRecord) CreatedTime() time.Time {
	return time.UnixMilli(r.CreatedAt)
}

// ShortAlias maps a 4-character short code to a previously minted
// invite code
type ShortAlias struct {
	Code string `json:"code"`
}
