package quotations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/itbizone/itbizone-api/internal/platform/db"
	"github.com/itbizone/itbizone-api/internal/platform/httpx"
)

// ErrSeriesConflict reports that another writer claimed the series this
// attempt tried to insert. The service retries allocation on it.
var ErrSeriesConflict = errors.New("quotations: series already taken")

// Repository persists quotation records. Create allocates the next series and
// inserts the record in one transaction; a lost allocation race surfaces as
// ErrSeriesConflict.
type Repository interface {
	Create(ctx context.Context, q *Quotation) error
	Get(ctx context.Context, id uuid.UUID) (*Quotation, error)
	ListRecent(ctx context.Context, limit int) ([]Quotation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Quotation, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the PostgreSQL-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Create(ctx context.Context, q *Quotation) error {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var series int64
		row := tx.QueryRow(ctx, `SELECT COALESCE(MAX(series), $1) + 1 FROM quotations`, firstSeries-1)
		if err := row.Scan(&series); err != nil {
			return fmt.Errorf("next series: %w", err)
		}
		q.Series = series
		q.Number = FormatNumber(series)

		_, err := tx.Exec(ctx, `
			INSERT INTO quotations (
				id, quotation_number, series,
				full_name, email, company, phone, address,
				subtotal, discount_percentage, discount, total,
				validity_days, expiry_date, status, notes, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
			q.ID, q.Number, q.Series,
			q.ClientDetails.FullName, q.ClientDetails.Email, q.ClientDetails.Company,
			q.ClientDetails.Phone, q.ClientDetails.Address,
			q.Subtotal, q.DiscountPercentage, q.Discount, q.Total,
			q.ValidityDays, q.ExpiryDate, q.Status, q.Notes, q.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert quotation: %w", err)
		}

		for i, svc := range q.Services {
			_, err := tx.Exec(ctx, `
				INSERT INTO quotation_services (quotation_id, position, service_id, name, price, category)
				VALUES ($1,$2,$3,$4,$5,$6)`,
				q.ID, i, svc.ID, svc.Name, svc.Price, svc.Category,
			)
			if err != nil {
				return fmt.Errorf("insert service line: %w", err)
			}
		}
		return nil
	})
	if isUniqueViolation(err) {
		return ErrSeriesConflict
	}
	return err
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Quotation, error) {
	q, err := r.scanQuotation(r.pool.QueryRow(ctx, `
		SELECT id, quotation_number, series,
		       full_name, email, company, phone, address,
		       subtotal, discount_percentage, discount, total,
		       validity_days, expiry_date, status, notes, created_at
		FROM quotations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}

	services, err := r.loadServices(ctx, []uuid.UUID{q.ID})
	if err != nil {
		return nil, err
	}
	q.Services = services[q.ID]
	return q, nil
}

func (r *repository) ListRecent(ctx context.Context, limit int) ([]Quotation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, quotation_number, series,
		       full_name, email, company, phone, address,
		       subtotal, discount_percentage, discount, total,
		       validity_days, expiry_date, status, notes, created_at
		FROM quotations ORDER BY created_at DESC, series DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		out []Quotation
		ids []uuid.UUID
	)
	for rows.Next() {
		q, err := r.scanQuotation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
		ids = append(ids, q.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	services, err := r.loadServices(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Services = services[out[i].ID]
	}
	return out, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Quotation, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE quotations SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, httpx.ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *repository) scanQuotation(row pgx.Row) (*Quotation, error) {
	var q Quotation
	err := row.Scan(
		&q.ID, &q.Number, &q.Series,
		&q.ClientDetails.FullName, &q.ClientDetails.Email, &q.ClientDetails.Company,
		&q.ClientDetails.Phone, &q.ClientDetails.Address,
		&q.Subtotal, &q.DiscountPercentage, &q.Discount, &q.Total,
		&q.ValidityDays, &q.ExpiryDate, &q.Status, &q.Notes, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *repository) loadServices(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]ServiceItem, error) {
	if len(ids) == 0 {
		return map[uuid.UUID][]ServiceItem{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT quotation_id, service_id, name, price, category
		FROM quotation_services
		WHERE quotation_id = ANY($1)
		ORDER BY quotation_id, position`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]ServiceItem, len(ids))
	for rows.Next() {
		var (
			qid uuid.UUID
			svc ServiceItem
		)
		if err := rows.Scan(&qid, &svc.ID, &svc.Name, &svc.Price, &svc.Category); err != nil {
			return nil, err
		}
		out[qid] = append(out[qid], svc)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
