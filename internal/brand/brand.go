// Package brand holds the per-deployment page chrome. The same binary
// serves any of the branded sites; everything brand-specific is data
// loaded once at startup and passed into the render layer.
package brand

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
)

// Link is a labelled URL for the page footer
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Brand describes the chrome of one deployment
type Brand struct {
	Name            string `json:"name"`
	Tagline         string `json:"tagline"`
	AppScheme       string `json:"appScheme"`
	AndroidStoreURL string `json:"androidStoreUrl"`
	IOSStoreURL     string `json:"iosStoreUrl"`
	AccentColor     string `json:"accentColor"`
	BackgroundColor string `json:"backgroundColor"`
	SupportURL      string `json:"supportUrl"`
	WebClientURL    string `json:"webClientUrl"`
	FooterLinks     []Link `json:"footerLinks"`
}

// Default returns the stock brand used when no brand file is configured
func Default() *Brand {
	return &Brand{
		Name:            "Rabble",
		Tagline:         "Group messaging for communities that own their conversations.",
		AppScheme:       "plur",
		AndroidStoreURL: "https://play.google.com/store/apps/details?id=app.rabble",
		IOSStoreURL:     "https://apps.apple.com/app/rabble/id6444737693",
		AccentColor:     "#7c3aed",
		BackgroundColor: "#0f0f14",
		SupportURL:      "https://rabble.community",
		WebClientURL:    "https://app.rabble.community",
		FooterLinks: []Link{
			{Label: "About", URL: "/"},
			{Label: "Support", URL: "https://rabble.community"},
		},
	}
}

// Load reads a brand file, filling unset fields from the default brand.
// An empty path selects the default brand.
func Load(path string) (*Brand, error) {
	b := Default()
	if path == "" {
		return b, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read brand file: %w", err)
	}

	var loaded Brand
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse brand file %s: %w", path, err)
	}

	merge(b, &loaded)
	return b, nil
}

// merge copies non-empty fields from src over dst
func merge(dst, src *Brand) {
	if src.Name != "" {
		dst.Name = src.Name
	}
	if src.Tagline != "" {
		dst.Tagline = src.Tagline
	}
	if src.AppScheme != "" {
		dst.AppScheme = src.AppScheme
	}
	if src.AndroidStoreURL != "" {
		dst.AndroidStoreURL = src.AndroidStoreURL
	}
	if src.IOSStoreURL != "" {
		dst.IOSStoreURL = src.IOSStoreURL
	}
	if src.AccentColor != "" {
		dst.AccentColor = src.AccentColor
	}
	if src.BackgroundColor != "" {
		dst.BackgroundColor = src.BackgroundColor
	}
	if src.SupportURL != "" {
		dst.SupportURL = src.SupportURL
	}
	if src.WebClientURL != "" {
		dst.WebClientURL = src.WebClientURL
	}
	if len(src.FooterLinks) > 0 {
		dst.FooterLinks = src.FooterLinks
	}
}

// DeepLink builds the platform deep link that opens the app on the
// join screen, e.g. plur://join-community?group-id=...&code=...&relay=...
func (b *Brand) DeepLink(groupID, code, relay string) string {
	return fmt.Sprintf("%s://join-community?group-id=%s&code=%s&relay=%s",
		b.AppScheme,
		url.QueryEscape(groupID),
		url.QueryEscape(code),
		url.QueryEscape(relay),
	)
}
