package newsletter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/itbizone/itbizone-api/internal/platform/httpx"
)

// ErrAlreadySubscribed reports a subscribe attempt for an active address.
var ErrAlreadySubscribed = errors.New("newsletter: email already subscribed")

// SubscribeOutcome distinguishes a fresh subscription from a reactivation.
type SubscribeOutcome int

const (
	OutcomeSubscribed SubscribeOutcome = iota
	OutcomeReactivated
)

// TaskEnqueuer schedules the welcome email after a successful subscribe.
type TaskEnqueuer interface {
	EnqueueWelcomeEmail(ctx context.Context, email string) error
}

// Service owns subscription rules.
type Service struct {
	repo     Repository
	tasks    TaskEnqueuer
	logger   *slog.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewService wires the newsletter service. tasks may be nil.
func NewService(repo Repository, tasks TaskEnqueuer, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		tasks:    tasks,
		logger:   logger,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Subscribe records a new subscriber or reactivates a lapsed one.
func (s *Service) Subscribe(ctx context.Context, email string) (SubscribeOutcome, error) {
	email, err := s.normalizeEmail(email)
	if err != nil {
		return 0, err
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.IsActive:
		return 0, ErrAlreadySubscribed
	case err == nil:
		if err := s.repo.SetActive(ctx, email, true, s.now().UTC()); err != nil {
			return 0, fmt.Errorf("reactivate subscriber: %w", err)
		}
		return OutcomeReactivated, nil
	case errors.Is(err, httpx.ErrNotFound):
		sub := &Subscriber{Email: email, IsActive: true, SubscribedAt: s.now().UTC()}
		if err := s.repo.Create(ctx, sub); err != nil {
			return 0, fmt.Errorf("create subscriber: %w", err)
		}
		s.enqueueWelcome(ctx, email)
		return OutcomeSubscribed, nil
	default:
		return 0, fmt.Errorf("lookup subscriber: %w", err)
	}
}

// Unsubscribe deactivates an address. The row is kept so the subscription
// history survives a later resubscribe.
func (s *Service) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("%w: Email is required", httpx.ErrValidation)
	}
	return s.repo.SetActive(ctx, email, false, s.now().UTC())
}

// ListActive returns active subscribers, newest first.
func (s *Service) ListActive(ctx context.Context) ([]Subscriber, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", fmt.Errorf("%w: Email is required", httpx.ErrValidation)
	}
	if err := s.validate.Var(email, "email"); err != nil {
		return "", fmt.Errorf("%w: Please provide a valid email address", httpx.ErrValidation)
	}
	return email, nil
}

func (s *Service) enqueueWelcome(ctx context.Context, email string) {
	if s.tasks == nil {
		return
	}
	if err := s.tasks.EnqueueWelcomeEmail(ctx, email); err != nil {
		s.logger.Warn("enqueue welcome email", slog.Any("error", err))
	}
}
