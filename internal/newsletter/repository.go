package newsletter

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/itbizone/itbizone-api/internal/platform/httpx"
)

// Repository persists subscribers.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*Subscriber, error)
	Create(ctx context.Context, sub *Subscriber) error
	SetActive(ctx context.Context, email string, active bool, at time.Time) error
	ListActive(ctx context.Context) ([]Subscriber, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the PostgreSQL-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Subscriber, error) {
	var sub Subscriber
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, is_active, subscribed_at
		FROM newsletter_subscribers WHERE email = $1`, email,
	).Scan(&sub.ID, &sub.Email, &sub.IsActive, &sub.SubscribedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, httpx.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *repository) Create(ctx context.Context, sub *Subscriber) error {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO newsletter_subscribers (id, email, is_active, subscribed_at)
		VALUES ($1, $2, $3, $4)`,
		sub.ID, sub.Email, sub.IsActive, sub.SubscribedAt,
	)
	return err
}

func (r *repository) SetActive(ctx context.Context, email string, active bool, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE newsletter_subscribers
		SET is_active = $2, subscribed_at = CASE WHEN $2 THEN $3 ELSE subscribed_at END
		WHERE email = $1`, email, active, at,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) ListActive(ctx context.Context) ([]Subscriber, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, is_active, subscribed_at
		FROM newsletter_subscribers
		WHERE is_active ORDER BY subscribed_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Subscriber
	for rows.Next() {
		var sub Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.IsActive, &sub.SubscribedAt); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}
