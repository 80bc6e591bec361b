package quotations

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/itbizone/itbizone-api/internal/platform/httpx"
)

// MountRoutes registers the quotation endpoints. adminGate protects the
// listing and status-update operations.
func (h *Handler) MountRoutes(r chi.Router, adminGate func(http.Handler) http.Handler) {
	tooMany := httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, http.StatusTooManyRequests, "too many requests, slow down")
	})
	createLimiter := httprate.Limit(30, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP), tooMany)
	pdfLimiter := httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP), tooMany)

	r.Group(func(gr chi.Router) {
		gr.Use(createLimiter)
		gr.Post("/quotation", h.Create)
	})
	r.Get("/quotation/{id}", h.Show)
	r.Group(func(gr chi.Router) {
		gr.Use(pdfLimiter)
		gr.Get("/quotation/{id}/pdf", h.DownloadPDF)
	})
	r.Group(func(gr chi.Router) {
		gr.Use(adminGate)
		gr.Get("/quotations", h.List)
		gr.Patch("/quotation/{id}/status", h.UpdateStatus)
	})
}
