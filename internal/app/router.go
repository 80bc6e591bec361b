package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/itbizone/itbizone-api/internal/auth"
	"github.com/itbizone/itbizone-api/internal/newsletter"
	"github.com/itbizone/itbizone-api/internal/observability"
	"github.com/itbizone/itbizone-api/internal/quotations"
	"github.com/itbizone/itbizone-api/internal/site"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	Metrics           *observability.Metrics
	AdminGate         *auth.APIKeyGate
	QuotationHandler  *quotations.Handler
	NewsletterHandler *newsletter.Handler
	SiteHandler       *site.Handler
}

// NewRouter constructs the chi.Router with the API defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	if !params.Config.IsProduction() {
		r.Use(chimw.Logger)
	}

	if params.SiteHandler != nil {
		params.SiteHandler.MountRoutes(r)
	}

	r.Route("/api", func(api chi.Router) {
		if params.QuotationHandler != nil {
			params.QuotationHandler.MountRoutes(api, params.AdminGate.Middleware)
		}
		if params.NewsletterHandler != nil {
			params.NewsletterHandler.MountRoutes(api, params.AdminGate.Middleware)
		}
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
