package operator

import (
	"context"
	"errors"
	"strings"

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

func (r *postgresRepo) Create(ctx context.Context, op domain.Operator) (*domain.Operator, error) {
	const q = `
INSERT INTO operators (email, password_hash, shop_name)
VALUES ($1, $2, $3)
RETURNING id::text, email, password_hash, shop_name, created_at
`
	return scanOperator(r.pool.QueryRow(ctx, q, strings.ToLower(op.Email), op.PasswordHash, op.ShopName))
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Operator, error) {
	const q = `
SELECT id::text, email, password_hash, shop_name, created_at
FROM operators
WHERE lower(email) = lower($1)
LIMIT 1
`
	return scanOperator(r.pool.QueryRow(ctx, q, email))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Operator, error) {
	const q = `
SELECT id::text, email, password_hash, shop_name, created_at
FROM operators
WHERE id = $1
LIMIT 1
`
	return scanOperator(r.pool.QueryRow(ctx, q, id))
}

func scanOperator(row pgx.Row) (*domain.Operator, error) {
	var op domain.Operator
	err := row.Scan(&op.ID, &op.Email, &op.PasswordHash, &op.ShopName, &op.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &op, nil
}
