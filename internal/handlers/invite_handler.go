package handlers

import (
	"html/template"
	"log"
	"net/http"
	"strings"

	"grouplink/internal/brand"
	"grouplink/internal/service"

	"github.com/google/uuid"
)

// InviteHandler serves the browser-facing invite routes: deep-link
// redirects, web invite pages, and short-code indirection. Every
// failure renders a branded HTML page; raw errors never reach the
// client.
type InviteHandler struct {
	invites   *service.InviteService
	brand     *brand.Brand
	baseURL   string
	templates *template.Template
}

// NewInviteHandler creates a new invite handler
func NewInviteHandler(invites *service.InviteService, b *brand.Brand, baseURL string, templates *template.Template) *InviteHandler {
	return &InviteHandler{
		invites:   invites,
		brand:     b,
		baseURL:   strings.TrimRight(baseURL, "/"),
		templates: templates,
	}
}

// Home renders the brand landing page
func (h *InviteHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := homePageData{
		Title: h.brand.Name,
		Brand: h.brand,
	}
	h.render(w, http.StatusOK, "home.tmpl", data)
}

// NotFound renders a branded page for unknown paths
func (h *InviteHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderErrorPage(w, http.StatusNotFound, "That page doesn't exist.", "")
}

// DeepLink handles GET /i/{code}: a plain invite resolves to a 302
// into the app's join screen
func (h *InviteHandler) DeepLink(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	record, err := h.invites.GetInvite(code)
	if err != nil {
		h.renderFailure(w, "Failed to resolve invite "+code, err)
		return
	}
	if record == nil {
		h.renderErrorPage(w, http.StatusNotFound, MsgInviteInvalid, "")
		return
	}

	http.Redirect(w, r, h.brand.DeepLink(record.GroupID, code, record.Relay), http.StatusFound)
}

// Join handles GET /join/{code}: a web invite renders the rich landing
// page with group metadata and platform links
func (h *InviteHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	record, err := h.invites.GetWebInvite(code)
	if err != nil {
		h.renderFailure(w, "Failed to resolve web invite "+code, err)
		return
	}
	if record == nil {
		h.renderErrorPage(w, http.StatusNotFound, MsgInviteInvalid, "")
		return
	}

	data := invitePageData{
		Title:       record.DisplayName() + " - " + h.brand.Name,
		Brand:       h.brand,
		Group:       record,
		Code:        code,
		DeepLink:    template.URL(h.brand.DeepLink(record.GroupID, code, record.Relay)),
		BrowserLink: h.brand.WebClientURL + "/join/" + code,
		CreatedDate: record.CreatedTime().Format("Jan 2, 2006"),
	}
	h.render(w, http.StatusOK, "invite.tmpl", data)
}

// ShortCode handles GET /j/{shortCode}: the alias is resolved to its
// target code, then redirected to the canonical route. The web
// namespace is checked first so the richer landing page wins when a
// code exists in both.
func (h *InviteHandler) ShortCode(w http.ResponseWriter, r *http.Request) {
	shortCode := r.PathValue("shortCode")

	targetCode, err := h.invites.ResolveShortCode(shortCode)
	if err != nil {
		h.renderFailure(w, "Failed to resolve short code "+shortCode, err)
		return
	}
	if targetCode == "" {
		h.renderErrorPage(w, http.StatusNotFound, MsgInviteInvalid, "")
		return
	}

	webRecord, err := h.invites.GetWebInvite(targetCode)
	if err != nil {
		h.renderFailure(w, "Failed to resolve short code target "+targetCode, err)
		return
	}
	if webRecord != nil {
		http.Redirect(w, r, h.baseURL+"/join/"+targetCode, http.StatusFound)
		return
	}

	record, err := h.invites.GetInvite(targetCode)
	if err != nil {
		h.renderFailure(w, "Failed to resolve short code target "+targetCode, err)
		return
	}
	if record != nil {
		http.Redirect(w, r, h.baseURL+"/i/"+targetCode, http.StatusFound)
		return
	}

	// Dangling alias: the target was never minted or is corrupt
	h.renderErrorPage(w, http.StatusNotFound, MsgInviteInvalid, "")
}

// render executes a page template with the given status
func (h *InviteHandler) render(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}

// renderErrorPage shows the branded error page
func (h *InviteHandler) renderErrorPage(w http.ResponseWriter, status int, message, referenceID string) {
	data := errorPageData{
		Title:       "Oops - " + h.brand.Name,
		Brand:       h.brand,
		Message:     message,
		ReferenceID: referenceID,
	}
	h.render(w, status, "error.tmpl", data)
}

// renderFailure logs a storage failure under a reference ID and shows
// the generic error page carrying that ID
func (h *InviteHandler) renderFailure(w http.ResponseWriter, logMsg string, err error) {
	referenceID := uuid.New().String()[:8]
	log.Printf("[ref %s] %s: %v", referenceID, logMsg, err)
	h.renderErrorPage(w, http.StatusInternalServerError, MsgInviteInternal, referenceID)
}

// Health reports liveness
func Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
