// Package site serves the crawler and operational endpoints: sitemap.xml,
// robots.txt and the health check.
package site

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

const baseURL = "https://itbizone.com"

type page struct {
	Loc        string
	Priority   string
	Changefreq string
}

// pages is the public site map. Order matters: crawlers see it as written.
var pages = []page{
	{"/", "1.0", "daily"},
	{"/about", "0.8", "weekly"},
	{"/contact", "0.8", "weekly"},
	{"/portfolio", "0.9", "weekly"},
	{"/pricing", "0.9", "weekly"},
	{"/services/website-development", "0.9", "weekly"},
	{"/services/web-development", "0.9", "weekly"},
	{"/services/graphic-design", "0.9", "weekly"},
	{"/services/digital-marketing", "0.9", "weekly"},
	{"/services/ui-ux", "0.9", "weekly"},
	{"/quotation", "0.7", "monthly"},
}

// Handler serves the site endpoints.
type Handler struct {
	now func() time.Time
}

// NewHandler constructs a Handler instance.
func NewHandler() *Handler {
	return &Handler{now: time.Now}
}

// MountRoutes registers the site endpoints at the router root.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/sitemap.xml", h.Sitemap)
	r.Get("/robots.txt", h.Robots)
	r.Get("/health", h.Health)
	r.Get("/healthz", h.Health)
}

// Sitemap renders the fixed page list as a sitemap.
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	lastmod := h.now().UTC().Format("2006-01-02")

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\">\n")
	for _, p := range pages {
		b.WriteString("  <url>\n")
		b.WriteString("    <loc>" + baseURL + p.Loc + "</loc>\n")
		b.WriteString("    <lastmod>" + lastmod + "</lastmod>\n")
		b.WriteString("    <changefreq>" + p.Changefreq + "</changefreq>\n")
		b.WriteString("    <priority>" + p.Priority + "</priority>\n")
		b.WriteString("  </url>\n")
	}
	b.WriteString("</urlset>")

	w.Header().Set("Content-Type", "application/xml")
	_, _ = w.Write([]byte(b.String()))
}

// Robots serves the crawler policy.
func (h *Handler) Robots(w http.ResponseWriter, r *http.Request) {
	robots := "User-agent: *\nAllow: /\nSitemap: " + baseURL + "/sitemap.xml\n\n" +
		"User-agent: *\nDisallow: /admin/\nDisallow: /api/\n"
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(robots))
}

// Health reports liveness for the load balancer.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":    "OK",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}
