package payment

import (
	"context"

	"tailorshop/internal/domain"
	"tailorshop/internal/money"
)

// CreatePaymentInput carries one new ledger entry. Amount is signed: positive
// for a payment, negative for a reversal referencing the original.
type CreatePaymentInput struct {
	OrderID    string
	Amount     money.Amount
	Method     domain.PaymentMethod
	Note       string
	ReversalOf *string
}

// Repository is the append-only payment ledger. There is no update or delete;
// corrections are new rows.
type Repository interface {
	Create(ctx context.Context, in CreatePaymentInput) (*domain.Payment, error)
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	ListByOrder(ctx context.Context, orderID string) ([]domain.Payment, error)
}
