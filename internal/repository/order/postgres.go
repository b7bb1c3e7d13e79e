package order

import (
	"context"
	"errors"
	"time"

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

// Amounts are stored as NUMERIC and scanned through text so the decimal value
// survives exactly.
const orderColumns = `
o.id::text, o.customer_id::text, c.owner_id::text, o.code, o.currency, o.status, o.notes,
o.tracking_token, o.tax_total::text, o.discount_total::text, o.shipping_total::text,
o.ready_at, o.created_at`

func (r *postgresRepo) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	const q = `
INSERT INTO orders (customer_id, currency, code, notes)
VALUES ($1, $2, $3, $4)
RETURNING id::text
`
	var id string
	if err := r.pool.QueryRow(ctx, q, in.CustomerID, in.Currency, in.Code, in.Notes).Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// 23503: the referenced customer row does not exist.
			if pgErr.Code == "23503" {
				return nil, domain.ErrNotFound
			}
			if pgErr.Code == "23505" {
				return nil, domain.ErrAlreadyExists
			}
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders o
JOIN customers c ON c.id = o.customer_id
WHERE o.id = $1
LIMIT 1
`
	return r.fetchOrder(ctx, q, id)
}

func (r *postgresRepo) GetByTrackingToken(ctx context.Context, token string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders o
JOIN customers c ON c.id = o.customer_id
WHERE o.tracking_token = $1
LIMIT 1
`
	return r.fetchOrder(ctx, q, token)
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders o
JOIN customers c ON c.id = o.customer_id
WHERE o.customer_id = $1
ORDER BY o.created_at DESC
`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) AddItem(ctx context.Context, orderID, description string, quantity int, unitPrice money.Amount) (*domain.OrderItem, error) {
	const q = `
INSERT INTO order_items (order_id, description, quantity, unit_price)
VALUES ($1, $2, $3, $4::numeric)
RETURNING id::text, order_id::text, description, quantity, unit_price::text, created_at
`
	row := r.pool.QueryRow(ctx, q, orderID, description, quantity, unitPrice.String())
	item, err := scanItem(row, unitPrice.Currency())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *postgresRepo) RemoveItem(ctx context.Context, orderID, itemID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM order_items WHERE id = $1 AND order_id = $2`, itemID, orderID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) SetStatus(ctx context.Context, orderID string, status domain.Status) error {
	return r.execOnOrder(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, orderID, string(status))
}

func (r *postgresRepo) SetReadyAt(ctx context.Context, orderID string, readyAt *time.Time) error {
	return r.execOnOrder(ctx, `UPDATE orders SET ready_at = $2 WHERE id = $1`, orderID, readyAt)
}

func (r *postgresRepo) SetAdjustments(ctx context.Context, orderID string, tax, discount, shipping money.Amount) error {
	return r.execOnOrder(ctx, `
UPDATE orders
SET tax_total = $2::numeric, discount_total = $3::numeric, shipping_total = $4::numeric
WHERE id = $1
`, orderID, tax.String(), discount.String(), shipping.String())
}

func (r *postgresRepo) UpdateDetails(ctx context.Context, orderID, code, notes string) error {
	return r.execOnOrder(ctx, `UPDATE orders SET code = $2, notes = $3 WHERE id = $1`, orderID, code, notes)
}

func (r *postgresRepo) ClaimTrackingToken(ctx context.Context, orderID, token string) (string, error) {
	cmd, err := r.pool.Exec(ctx, `
UPDATE orders
SET tracking_token = $2
WHERE id = $1 AND tracking_token IS NULL
`, orderID, token)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Token collision with another order; caller mints a fresh one.
			return "", domain.ErrAlreadyExists
		}
		return "", err
	}
	if cmd.RowsAffected() == 1 {
		return token, nil
	}

	// Lost the race or a token already existed: return the durable one.
	var existing *string
	err = r.pool.QueryRow(ctx, `SELECT tracking_token FROM orders WHERE id = $1`, orderID).Scan(&existing)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	if existing == nil {
		return "", domain.ErrNotFound
	}
	return *existing, nil
}

func (r *postgresRepo) execOnOrder(ctx context.Context, q, orderID string, args ...interface{}) error {
	cmd, err := r.pool.Exec(ctx, q, append([]interface{}{orderID}, args...)...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) fetchOrder(ctx context.Context, q string, arg interface{}) (*domain.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, q, arg))
	if err != nil {
		return nil, err
	}

	const itemsQuery = `
SELECT id::text, order_id::text, description, quantity, unit_price::text, created_at
FROM order_items
WHERE order_id = $1
ORDER BY created_at ASC, id ASC
`
	rows, err := r.pool.Query(ctx, itemsQuery, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanItem(rows, o.Currency)
		if err != nil {
			return nil, err
		}
		o.Items = append(o.Items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return o, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var status string
	var taxRaw, discountRaw, shippingRaw string
	err := row.Scan(
		&o.ID,
		&o.CustomerID,
		&o.OwnerID,
		&o.Code,
		&o.Currency,
		&status,
		&o.Notes,
		&o.TrackingToken,
		&taxRaw,
		&discountRaw,
		&shippingRaw,
		&o.ReadyAt,
		&o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	o.Status = domain.Status(status)
	if o.TaxTotal, err = money.New(taxRaw, o.Currency); err != nil {
		return nil, err
	}
	if o.DiscountTotal, err = money.New(discountRaw, o.Currency); err != nil {
		return nil, err
	}
	if o.ShippingTotal, err = money.New(shippingRaw, o.Currency); err != nil {
		return nil, err
	}
	return &o, nil
}

func scanItem(row pgx.Row, currency string) (*domain.OrderItem, error) {
	var item domain.OrderItem
	var priceRaw string
	err := row.Scan(
		&item.ID,
		&item.OrderID,
		&item.Description,
		&item.Quantity,
		&priceRaw,
		&item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if item.UnitPrice, err = money.New(priceRaw, currency); err != nil {
		return nil, err
	}
	return &item, nil
}
