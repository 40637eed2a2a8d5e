package handlers

import (
	"html/template"

	"grouplink/internal/brand"
	"grouplink/internal/models"
)

// homePageData drives the brand landing page
type homePageData struct {
	Title string
	Brand *brand.Brand
}

// errorPageData drives the branded error page
type errorPageData struct {
	Title       string
	Brand       *brand.Brand
	Message     string
	ReferenceID string
}

// invitePageData drives the rich web invite page. DeepLink is typed
// template.URL because its custom scheme would otherwise be filtered
// out of the href by the template engine.
type invitePageData struct {
	Title       string
	Brand       *brand.Brand
	Group       *models.WebInviteRecord
	Code        string
	DeepLink    template.URL
	BrowserLink string
	CreatedDate string
}
