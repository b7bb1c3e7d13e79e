package attachment

import (
	"context"
	"errors"

	"tailorshop/internal/domain"

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

const attachmentColumns = `id::text, order_id::text, object_key, kind, created_at`

func (r *postgresRepo) Create(ctx context.Context, a domain.Attachment) (*domain.Attachment, error) {
	const q = `
INSERT INTO attachments (order_id, object_key, kind)
VALUES ($1, $2, $3)
RETURNING ` + attachmentColumns
	out, err := scanAttachment(r.pool.QueryRow(ctx, q, a.OrderID, a.ObjectKey, a.Kind))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Attachment, error) {
	const q = `
SELECT ` + attachmentColumns + `
FROM attachments
WHERE id = $1
LIMIT 1
`
	return scanAttachment(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) ListByOrder(ctx context.Context, orderID string) ([]domain.Attachment, error) {
	const q = `
SELECT ` + attachmentColumns + `
FROM attachments
WHERE order_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Attachment
	for rows.Next() {
		var a domain.Attachment
		if err := rows.Scan(&a.ID, &a.OrderID, &a.ObjectKey, &a.Kind, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM attachments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanAttachment(row pgx.Row) (*domain.Attachment, error) {
	var a domain.Attachment
	err := row.Scan(&a.ID, &a.OrderID, &a.ObjectKey, &a.Kind, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
