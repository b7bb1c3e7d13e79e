package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type itemSeed struct {
	Description string
	Quantity    int
	UnitPrice   string
}

// Apply inserts basic seed data for manual testing: one operator account with
// a customer and an in-flight order. It is idempotent.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	operatorID, err := ensureOperator(ctx, pool, "demo@tailorshop.local", "Password1", "Demo Tailors")
	if err != nil {
		return fmt.Errorf("ensure operator: %w", err)
	}

	customerID, err := ensureCustomer(ctx, pool, operatorID, "Amina Okafor", "+254700000001", "Nairobi", "KE")
	if err != nil {
		return fmt.Errorf("ensure customer: %w", err)
	}

	orderID, err := ensureOrder(ctx, pool, customerID, "ORD-DEMO0001", "KES")
	if err != nil {
		return fmt.Errorf("ensure order: %w", err)
	}

	items := []itemSeed{
		{Description: "Three-piece suit", Quantity: 2, UnitPrice: "150.00"},
		{Description: "Alterations", Quantity: 1, UnitPrice: "25.50"},
	}
	for _, it := range items {
		if err := ensureItem(ctx, pool, orderID, it); err != nil {
			return fmt.Errorf("ensure item %q: %w", it.Description, err)
		}
	}

	if err := ensurePayment(ctx, pool, orderID, "200.00", "cash", "deposit"); err != nil {
		return fmt.Errorf("ensure payment: %w", err)
	}

	return nil
}

func ensureOperator(ctx context.Context, pool *pgxpool.Pool, email, password, shopName string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	const q = `
INSERT INTO operators (email, password_hash, shop_name)
VALUES ($1, $2, $3)
ON CONFLICT (email) DO UPDATE SET shop_name = EXCLUDED.shop_name
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, email, string(hash), shopName).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureCustomer(ctx context.Context, pool *pgxpool.Pool, ownerID, name, phone, city, countryCode string) (string, error) {
	const lookup = `SELECT id::text FROM customers WHERE owner_id = $1 AND name = $2`
	var id string
	err := pool.QueryRow(ctx, lookup, ownerID, name).Scan(&id)
	if err == nil {
		return id, nil
	}

	const insert = `
INSERT INTO customers (owner_id, name, phone, city, country_code)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text
`
	if err := pool.QueryRow(ctx, insert, ownerID, name, phone, city, countryCode).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureOrder(ctx context.Context, pool *pgxpool.Pool, customerID, code, currency string) (string, error) {
	const lookup = `SELECT id::text FROM orders WHERE customer_id = $1 AND code = $2`
	var id string
	err := pool.QueryRow(ctx, lookup, customerID, code).Scan(&id)
	if err == nil {
		return id, nil
	}

	const insert = `
INSERT INTO orders (customer_id, code, currency, notes)
VALUES ($1, $2, $3, 'customer prefers evening pickup')
RETURNING id::text
`
	if err := pool.QueryRow(ctx, insert, customerID, code, currency).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureItem(ctx context.Context, pool *pgxpool.Pool, orderID string, it itemSeed) error {
	const lookup = `SELECT count(*) FROM order_items WHERE order_id = $1 AND description = $2`
	var n int
	if err := pool.QueryRow(ctx, lookup, orderID, it.Description).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	const insert = `INSERT INTO order_items (order_id, description, quantity, unit_price) VALUES ($1, $2, $3, $4)`
	_, err := pool.Exec(ctx, insert, orderID, it.Description, it.Quantity, it.UnitPrice)
	return err
}

func ensurePayment(ctx context.Context, pool *pgxpool.Pool, orderID, amount, method, note string) error {
	const lookup = `SELECT count(*) FROM payments WHERE order_id = $1 AND note = $2`
	var n int
	if err := pool.QueryRow(ctx, lookup, orderID, note).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	const insert = `INSERT INTO payments (order_id, amount, method, note) VALUES ($1, $2, $3, $4)`
	_, err := pool.Exec(ctx, insert, orderID, amount, method, note)
	return err
}
