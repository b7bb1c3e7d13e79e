package payment

import (
	"context"
	"errors"

	"tailorshop/internal/domain"
	"tailorshop/internal/money"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const paymentColumns = `p.id::text, p.order_id::text, p.amount::text, o.currency, p.method, p.note, p.reversal_of::text, p.created_at`

func (r *postgresRepo) Create(ctx context.Context, in CreatePaymentInput) (*domain.Payment, error) {
	const q = `
WITH inserted AS (
    INSERT INTO payments (order_id, amount, method, note, reversal_of)
    VALUES ($1, $2::numeric, $3, $4, $5)
    RETURNING *
)
SELECT ` + paymentColumns + `
FROM inserted p
JOIN orders o ON o.id = p.order_id
`
	row := r.pool.QueryRow(ctx, q, in.OrderID, in.Amount.String(), string(in.Method), in.Note, in.ReversalOf)
	p, err := scanPayment(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23503" {
				return nil, domain.ErrNotFound
			}
			if pgErr.Code == "23505" {
				// The partial unique index on reversal_of: only one reversal
				// per original entry.
				return nil, domain.ErrAlreadyExists
			}
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	const q = `
SELECT ` + paymentColumns + `
FROM payments p
JOIN orders o ON o.id = p.order_id
WHERE p.id = $1
LIMIT 1
`
	return scanPayment(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) ListByOrder(ctx context.Context, orderID string) ([]domain.Payment, error) {
	const q = `
SELECT ` + paymentColumns + `
FROM payments p
JOIN orders o ON o.id = p.order_id
WHERE p.order_id = $1
ORDER BY p.created_at DESC, p.id DESC
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	var amountRaw, currency, method string
	err := row.Scan(
		&p.ID,
		&p.OrderID,
		&amountRaw,
		&currency,
		&method,
		&p.Note,
		&p.ReversalOf,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.Method = domain.PaymentMethod(method)
	if p.Amount, err = money.New(amountRaw, currency); err != nil {
		return nil, err
	}
	return &p, nil
}
