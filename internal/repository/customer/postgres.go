package customer

import (
	"context"
	"errors"

	"tailorshop/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const customerColumns = `id::text, owner_id::text, name, phone, email, city, country_code, created_at`

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (owner_id, name, phone, email, city, country_code)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + customerColumns
	return scanCustomer(r.pool.QueryRow(ctx, q, c.OwnerID, c.Name, c.Phone, c.Email, c.City, c.CountryCode))
}

func (r *postgresRepo) GetByID(ctx context.Context, ownerID, id string) (*domain.Customer, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers
WHERE owner_id = $1 AND id = $2
LIMIT 1
`
	return scanCustomer(r.pool.QueryRow(ctx, q, ownerID, id))
}

func (r *postgresRepo) List(ctx context.Context, ownerID string) ([]domain.Customer, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers
WHERE owner_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Phone, &c.Email, &c.City, &c.CountryCode, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
UPDATE customers
SET name = $3, phone = $4, email = $5, city = $6, country_code = $7
WHERE owner_id = $1 AND id = $2
RETURNING ` + customerColumns
	return scanCustomer(r.pool.QueryRow(ctx, q, c.OwnerID, c.ID, c.Name, c.Phone, c.Email, c.City, c.CountryCode))
}

func (r *postgresRepo) Delete(ctx context.Context, ownerID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Phone, &c.Email, &c.City, &c.CountryCode, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
