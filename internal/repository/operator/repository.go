package operator

import (
	"context"

	"tailorshop/internal/domain"
)

// Repository persists and fetches operator accounts.
type Repository interface {
	Create(ctx context.Context, op domain.Operator) (*domain.Operator, error)
	GetByEmail(ctx context.Context, email string) (*domain.Operator, error)
	GetByID(ctx context.Context, id string) (*domain.Operator, error)
}
