package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"grouplink/internal/brand"
	"grouplink/internal/service"
)

// APIHandler serves the token-authenticated JSON API for minting
// invites and short links
type APIHandler struct {
	invites *service.InviteService
	email   *service.EmailService
	brand   *brand.Brand
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(invites *service.InviteService, email *service.EmailService, b *brand.Brand) *APIHandler {
	return &APIHandler{
		invites: invites,
		email:   email,
		brand:   b,
	}
}

type createInviteRequest struct {
	GroupID       string `json:"groupId"`
	Relay         string `json:"relay"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Avatar        string `json:"avatar"`
	CreatorPubkey string `json:"creatorPubkey"`
	Email         string `json:"email"`
}

// hasMetadata reports whether the request carries web-invite display fields
func (req *createInviteRequest) hasMetadata() bool {
	return req.Name != "" || req.Description != "" || req.Avatar != "" || req.CreatorPubkey != ""
}

// CreateInvite handles POST /api/invite. A request with display
// metadata mints a web invite; a bare request mints a plain invite.
func (h *APIHandler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	var req createInviteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64*1024)).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}

	var created *service.CreatedInvite
	var err error
	if req.hasMetadata() {
		created, err = h.invites.CreateWebInvite(req.GroupID, req.Relay, service.WebInviteMetadata{
			Name:          req.Name,
			Description:   req.Description,
			Avatar:        req.Avatar,
			CreatorPubkey: req.CreatorPubkey,
		})
	} else {
		created, err = h.invites.CreateInvite(req.GroupID, req.Relay)
	}

	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondWithError(w, http.StatusBadRequest, "groupId and relay are required", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError,
			"Failed to create invite", err)
		return
	}

	if req.Email != "" && h.email != nil {
		groupName := req.Name
		if groupName == "" {
			groupName = h.brand.Name
		}
		// Email delivery is best-effort; the invite already exists
		if err := h.email.SendInviteEmail(r.Context(), req.Email, groupName, created.URL, h.brand.Name); err != nil {
			log.Printf("Failed to email invite %s: %v", created.Code, err)
		}
	}

	respondWithJSON(w, http.StatusCreated, created)
}

type createShortURLRequest struct {
	Code string `json:"code"`
}

// CreateShortURL handles POST /api/shorturl. The target code must
// resolve in the web or plain namespace.
func (h *APIHandler) CreateShortURL(w http.ResponseWriter, r *http.Request) {
	var req createShortURLRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4*1024)).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}
	if req.Code == "" {
		respondWithError(w, http.StatusBadRequest, "code is required", "", nil)
		return
	}

	exists, err := h.invites.CodeExists(req.Code)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError,
			"Failed to check invite code", err)
		return
	}
	if !exists {
		respondWithError(w, http.StatusNotFound, ErrInviteNotFound, "", nil)
		return
	}

	created, err := h.invites.CreateShortInvite(req.Code)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError,
			"Failed to create short link", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

type inviteResponse struct {
	Code          string `json:"code"`
	Kind          string `json:"kind"`
	GroupID       string `json:"groupId"`
	Relay         string `json:"relay"`
	Name          string `json:"name,omitempty"`
	Description   string `json:"description,omitempty"`
	Avatar        string `json:"avatar,omitempty"`
	CreatorPubkey string `json:"creatorPubkey,omitempty"`
	CreatedAt     int64  `json:"createdAt,omitempty"`
}

// GetInvite handles GET /api/invite/{code}. The plain namespace is
// checked first, then the web namespace.
func (h *APIHandler) GetInvite(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	record, err := h.invites.GetInvite(code)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError,
			"Failed to read invite", err)
		return
	}
	if record != nil {
		respondWithJSON(w, http.StatusOK, inviteResponse{
			Code:    code,
			Kind:    "invite",
			GroupID: record.GroupID,
			Relay:   record.Relay,
		})
		return
	}

	webRecord, err := h.invites.GetWebInvite(code)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError,
			"Failed to read web invite", err)
		return
	}
	if webRecord != nil {
		respondWithJSON(w, http.StatusOK, inviteResponse{
			Code:          code,
			Kind:          "web-invite",
			GroupID:       webRecord.GroupID,
			Relay:         webRecord.Relay,
			Name:          webRecord.Name,
			Description:   webRecord.Description,
			Avatar:        webRecord.Avatar,
			CreatorPubkey: webRecord.CreatorPubkey,
			CreatedAt:     webRecord.CreatedAt,
		})
		return
	}

	respondWithError(w, http.StatusNotFound, ErrInviteNotFound, "", nil)
}
