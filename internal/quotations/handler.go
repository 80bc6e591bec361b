package quotations

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/itbizone/itbizone-api/internal/platform/httpx"
)

// Handler wires the quotation endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	pdfGroup singleflight.Group
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

type createResponse struct {
	Success         bool      `json:"success"`
	Message         string    `json:"message"`
	QuotationID     uuid.UUID `json:"quotationId"`
	QuotationNumber string    `json:"quotationNumber"`
}

type quotationResponse struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message,omitempty"`
	Quotation *Quotation `json:"quotation"`
}

type listResponse struct {
	Success    bool        `json:"success"`
	Count      int         `json:"count"`
	Quotations []Quotation `json:"quotations"`
}

// Create handles POST /quotation.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateQuotationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "client details and services are required")
		return
	}

	q, err := h.service.Create(r.Context(), req)
	if err != nil {
		if !errors.Is(err, httpx.ErrValidation) {
			h.logger.Error("create quotation", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, createResponse{
		Success:         true,
		Message:         "Quotation created successfully",
		QuotationID:     q.ID,
		QuotationNumber: q.Number,
	})
}

// Show handles GET /quotation/{id}.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := h.quotationID(w, r)
	if !ok {
		return
	}

	q, err := h.service.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, httpx.ErrNotFound) {
			h.logger.Error("get quotation", slog.String("id", id.String()), slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, quotationResponse{Success: true, Quotation: q})
}

// List handles GET /quotations.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	qs, err := h.service.ListRecent(r.Context())
	if err != nil {
		h.logger.Error("list quotations", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if qs == nil {
		qs = []Quotation{}
	}
	httpx.JSON(w, http.StatusOK, listResponse{Success: true, Count: len(qs), Quotations: qs})
}

// UpdateStatus handles PATCH /quotation/{id}/status.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.quotationID(w, r)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid status")
		return
	}

	q, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		if !errors.Is(err, httpx.ErrInvalidStatus) && !errors.Is(err, httpx.ErrNotFound) {
			h.logger.Error("update quotation status", slog.String("id", id.String()), slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, quotationResponse{Success: true, Message: "Quotation status updated", Quotation: q})
}

type pdfResult struct {
	data []byte
	name string
}

// DownloadPDF handles GET /quotation/{id}/pdf. Concurrent requests for the
// same document share one render. The attachment headers are only written
// once the full document exists, so a failure never leaks a partial file.
func (h *Handler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	id, ok := h.quotationID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	// The render is shared by every waiter on this key, so it must outlive
	// whichever request happens to lead the flight.
	renderCtx := context.WithoutCancel(ctx)
	resultChan := h.pdfGroup.DoChan(id.String(), func() (interface{}, error) {
		data, name, err := h.service.RenderPDF(renderCtx, id)
		if err != nil {
			return nil, err
		}
		return pdfResult{data: data, name: name}, nil
	})

	var res pdfResult
	select {
	case <-ctx.Done():
		return
	case out := <-resultChan:
		if out.Err != nil {
			httpx.RespondError(w, out.Err)
			return
		}
		res = out.Val.(pdfResult)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+res.name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.data)
}

// quotationID parses the id route parameter. Anything that is not a UUID can
// never match a record, so it reads as not found.
func (h *Handler) quotationID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, httpx.ErrNotFound)
		return uuid.Nil, false
	}
	return id, true
}
