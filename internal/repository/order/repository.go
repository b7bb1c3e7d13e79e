package order

import (
	"context"
	"time"

	"tailorshop/internal/domain"
	"tailorshop/internal/money"
)

// CreateOrderInput carries the fields fixed at order creation. Currency is
// immutable afterwards.
type CreateOrderInput struct {
	CustomerID string
	Currency   string
	Code       string
	Notes      string
}

// Repository persists orders and their line items. Loads populate
// Order.OwnerID from the owning customer and Order.Items in insertion order.
type Repository interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByTrackingToken(ctx context.Context, token string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	Delete(ctx context.Context, id string) error

	AddItem(ctx context.Context, orderID, description string, quantity int, unitPrice money.Amount) (*domain.OrderItem, error)
	RemoveItem(ctx context.Context, orderID, itemID string) error

	SetStatus(ctx context.Context, orderID string, status domain.Status) error
	SetReadyAt(ctx context.Context, orderID string, readyAt *time.Time) error
	SetAdjustments(ctx context.Context, orderID string, tax, discount, shipping money.Amount) error
	UpdateDetails(ctx context.Context, orderID, code, notes string) error

	// ClaimTrackingToken atomically attaches token to an order that has none
	// and returns the durable token. When another caller won the race the
	// winner's token comes back instead of an error.
	ClaimTrackingToken(ctx context.Context, orderID, token string) (string, error)
}
