package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/itbizone/itbizone-api/internal/platform/httpx"
	"github.com/itbizone/itbizone-api/internal/quotations"
)

// PDFWarmupJob renders a freshly created quotation so the first download is
// served from cache.
type PDFWarmupJob struct {
	Quotations *quotations.Service
	Logger     *slog.Logger
}

// NewPDFWarmupJob wires dependencies for the warmup handler.
func NewPDFWarmupJob(svc *quotations.Service, logger *slog.Logger) *PDFWarmupJob {
	return &PDFWarmupJob{Quotations: svc, Logger: logger}
}

// Handle processes pdf:warmup tasks.
func (j *PDFWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Quotations == nil {
		return errors.New("pdf warmup: handler not configured")
	}
	var payload PDFWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	logger := j.logger().With(slog.String("quotation_id", payload.QuotationID.String()))
	start := time.Now()

	renderCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	data, name, err := j.Quotations.RenderPDF(renderCtx, payload.QuotationID)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		// A deleted record is not worth retrying; anything else is.
		if errors.Is(err, httpx.ErrNotFound) {
			logger.Warn("pdf warmup: quotation gone", slog.Any("error", err))
			return asynq.SkipRetry
		}
		logger.Error("pdf warmup render", slog.Any("error", err))
		return err
	}

	logger.Info("warmed quotation pdf",
		slog.String("file", name),
		slog.Int("bytes", len(data)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func (j *PDFWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskTypePDFWarmup))
	}
	return slog.Default().With(slog.String("job", TaskTypePDFWarmup))
}
