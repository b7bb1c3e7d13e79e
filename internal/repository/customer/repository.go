package customer

import (
	"context"

	"tailorshop/internal/domain"
)

// Repository persists and fetches customers, always scoped to the owning
// operator account.
type Repository interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, ownerID, id string) (*domain.Customer, error)
	List(ctx context.Context, ownerID string) ([]domain.Customer, error)
	Update(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	Delete(ctx context.Context, ownerID, id string) error
}
