package site

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func siteRouter() http.Handler {
	h := NewHandler()
	h.now = func() time.Time {
		return time.Date(2025, time.September, 2, 10, 0, 0, 0, time.UTC)
	}
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestSitemap(t *testing.T) {
	rec := get(siteRouter(), "/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/xml", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	require.Contains(t, body, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	require.Contains(t, body, "<loc>https://itbizone.com/</loc>")
	require.Contains(t, body, "<loc>https://itbizone.com/quotation</loc>")
	require.Contains(t, body, "<lastmod>2025-09-02</lastmod>")
	require.Contains(t, body, "<changefreq>monthly</changefreq>")
}

func TestRobots(t *testing.T) {
	rec := get(siteRouter(), "/robots.txt")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.Contains(t, body, "User-agent: *")
	require.Contains(t, body, "Sitemap: https://itbizone.com/sitemap.xml")
	require.Contains(t, body, "Disallow: /admin/")
	require.Contains(t, body, "Disallow: /api/")
}

func TestHealth(t *testing.T) {
	rec := get(siteRouter(), "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"OK"`)
	require.Contains(t, rec.Body.String(), "2025-09-02T10:00:00Z")
}
