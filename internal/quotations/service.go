package quotations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/itbizone/itbizone-api/internal/document"
	"github.com/itbizone/itbizone-api/internal/platform/httpx"
)

const (
	// allocationAttempts bounds the allocate-and-insert retry loop. Losing
	// this many races in a row indicates systemic contention, not bad luck.
	allocationAttempts = 3

	// recentLimit caps the admin listing.
	recentLimit = 50
)

// PDFGenerator renders a quotation document and returns its attachment name.
type PDFGenerator interface {
	Generate(ctx context.Context, d document.Data) ([]byte, string, error)
}

// TaskEnqueuer schedules background work after a successful create.
type TaskEnqueuer interface {
	EnqueuePDFWarmup(ctx context.Context, id uuid.UUID) error
}

// RenderMetrics counts document render outcomes.
type RenderMetrics interface {
	PDFRendered(outcome string)
}

// Service owns the quotation lifecycle.
type Service struct {
	repo     Repository
	cache    *Cache
	gen      PDFGenerator
	tasks    TaskEnqueuer
	metrics  RenderMetrics
	logger   *slog.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewService wires the quotation service. cache, tasks and metrics may be nil.
func NewService(repo Repository, cache *Cache, gen PDFGenerator, tasks TaskEnqueuer, metrics RenderMetrics, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		gen:      gen,
		tasks:    tasks,
		metrics:  metrics,
		logger:   logger,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Create validates and prices the request, allocates the next series and
// persists the record atomically. Nothing is written when validation fails.
func (s *Service) Create(ctx context.Context, req CreateQuotationRequest) (*Quotation, error) {
	if err := s.validateCreate(req); err != nil {
		return nil, err
	}

	details, services, validity := req.Normalize()
	totals := ComputeTotals(services, defaultDiscountPercentage)

	createdAt := s.now().UTC()
	q := &Quotation{
		ID:                 uuid.New(),
		ClientDetails:      details,
		Services:           services,
		Subtotal:           totals.Subtotal,
		DiscountPercentage: defaultDiscountPercentage,
		Discount:           totals.Discount,
		Total:              totals.Total,
		ValidityDays:       validity,
		ExpiryDate:         createdAt.AddDate(0, 0, validity),
		Status:             StatusDraft,
		CreatedAt:          createdAt,
	}

	for attempt := 1; attempt <= allocationAttempts; attempt++ {
		err := s.repo.Create(ctx, q)
		if err == nil {
			if err := s.cache.Bump(ctx); err != nil {
				s.logger.Warn("bump listing cache", slog.Any("error", err))
			}
			s.enqueueWarmup(ctx, q.ID)
			return q, nil
		}
		if !errors.Is(err, ErrSeriesConflict) {
			return nil, fmt.Errorf("create quotation: %w", err)
		}
		s.logger.Warn("series conflict, retrying allocation",
			slog.Int("attempt", attempt), slog.Int64("series", q.Series))
	}

	return nil, fmt.Errorf("%w: gave up after %d attempts", httpx.ErrSequenceExhausted, allocationAttempts)
}

// Get returns a quotation by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Quotation, error) {
	return s.repo.Get(ctx, id)
}

// ListRecent returns the newest quotations, most recent first.
func (s *Service) ListRecent(ctx context.Context) ([]Quotation, error) {
	return s.cache.FetchRecent(ctx, recentLimit, func(ctx context.Context) ([]Quotation, error) {
		return s.repo.ListRecent(ctx, recentLimit)
	})
}

// UpdateStatus moves a quotation to any of the five allowed statuses. The
// stored record is untouched when the value is outside the enum.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Quotation, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", httpx.ErrInvalidStatus, status)
	}
	q, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("bump listing cache", slog.Any("error", err))
	}
	return q, nil
}

// RenderPDF loads the record and produces its document, serving cached bytes
// when available. The renderer is never invoked for an unknown id.
func (s *Service) RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	q, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	if cached, err := s.cache.GetPDF(ctx, q.Number); err == nil && len(cached) > 0 {
		return cached, q.Number + ".pdf", nil
	}

	out, name, err := s.gen.Generate(ctx, DocumentData(q))
	if err != nil {
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
		s.countRender("failure")
		s.logger.Error("render quotation pdf", slog.String("id", id.String()), slog.Any("error", err))
		return nil, "", fmt.Errorf("%w: %s", httpx.ErrRenderFailure, q.Number)
	}
	s.countRender("success")

	if err := s.cache.SetPDF(ctx, q.Number, out); err != nil {
		s.logger.Warn("cache quotation pdf", slog.Any("error", err))
	}
	return out, name, nil
}

func (s *Service) countRender(outcome string) {
	if s.metrics != nil {
		s.metrics.PDFRendered(outcome)
	}
}

// DocumentData maps a record onto the renderer's input.
func DocumentData(q *Quotation) document.Data {
	items := make([]document.LineItem, 0, len(q.Services))
	for _, svc := range q.Services {
		items = append(items, document.LineItem{Name: svc.Name, Price: svc.Price})
	}
	return document.Data{
		Number:             q.Number,
		IssuedAt:           q.CreatedAt,
		ClientName:         q.ClientDetails.FullName,
		ClientCompany:      q.ClientDetails.Company,
		ClientEmail:        q.ClientDetails.Email,
		Items:              items,
		Subtotal:           q.Subtotal,
		DiscountPercentage: q.DiscountPercentage,
		Discount:           q.Discount,
		Total:              q.Total,
		Notes:              q.Notes,
	}
}

func (s *Service) enqueueWarmup(ctx context.Context, id uuid.UUID) {
	if s.tasks == nil {
		return
	}
	if err := s.tasks.EnqueuePDFWarmup(ctx, id); err != nil {
		s.logger.Warn("enqueue pdf warmup", slog.String("id", id.String()), slog.Any("error", err))
	}
}

func (s *Service) validateCreate(req CreateQuotationRequest) error {
	if len(req.Services) == 0 {
		return fmt.Errorf("%w: client details and services are required", httpx.ErrValidation)
	}
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			ns := fe.StructNamespace()
			switch {
			case strings.Contains(ns, "ClientDetails.FullName"), strings.Contains(ns, "ClientDetails.Email"):
				return fmt.Errorf("%w: full name and email are required", httpx.ErrValidation)
			case strings.Contains(ns, "Services") && fe.Field() == "Name":
				return fmt.Errorf("%w: every service requires a name", httpx.ErrValidation)
			}
		}
	}
	return fmt.Errorf("%w: invalid quotation data", httpx.ErrValidation)
}
