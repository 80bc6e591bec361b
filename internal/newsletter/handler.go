package newsletter

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/itbizone/itbizone-api/internal/platform/httpx"
)

// Handler wires the newsletter endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers the newsletter endpoints under /newsletter. adminGate
// protects the subscriber listing.
func (h *Handler) MountRoutes(r chi.Router, adminGate func(http.Handler) http.Handler) {
	r.Route("/newsletter", func(nr chi.Router) {
		nr.Post("/subscribe", h.Subscribe)
		nr.Post("/unsubscribe", h.Unsubscribe)
		nr.Group(func(gr chi.Router) {
			gr.Use(adminGate)
			gr.Get("/subscribers", h.List)
		})
	})
}

type emailRequest struct {
	Email string `json:"email"`
}

type listSubscribersResponse struct {
	Success     bool         `json:"success"`
	Count       int          `json:"count"`
	Subscribers []Subscriber `json:"subscribers"`
}

// Subscribe handles POST /newsletter/subscribe.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Email is required")
		return
	}

	outcome, err := h.service.Subscribe(r.Context(), req.Email)
	switch {
	case errors.Is(err, ErrAlreadySubscribed):
		httpx.Fail(w, http.StatusBadRequest, "This email is already subscribed to our newsletter")
	case err != nil:
		if !errors.Is(err, httpx.ErrValidation) {
			h.logger.Error("newsletter subscribe", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
	case outcome == OutcomeReactivated:
		httpx.JSON(w, http.StatusOK, httpx.Envelope{
			Success: true, Message: "Welcome back! Your subscription has been reactivated.",
		})
	default:
		httpx.JSON(w, http.StatusCreated, httpx.Envelope{
			Success: true, Message: "Thank you for subscribing! You will receive our latest updates.",
		})
	}
}

// Unsubscribe handles POST /newsletter/unsubscribe.
func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Email is required")
		return
	}

	if err := h.service.Unsubscribe(r.Context(), req.Email); err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			httpx.Fail(w, http.StatusNotFound, "Email not found in our subscriber list")
			return
		}
		if !errors.Is(err, httpx.ErrValidation) {
			h.logger.Error("newsletter unsubscribe", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.Envelope{
		Success: true, Message: "You have been unsubscribed from our newsletter",
	})
}

// List handles GET /newsletter/subscribers.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.ListActive(r.Context())
	if err != nil {
		h.logger.Error("list subscribers", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if subs == nil {
		subs = []Subscriber{}
	}
	httpx.JSON(w, http.StatusOK, listSubscribersResponse{Success: true, Count: len(subs), Subscribers: subs})
}
