package attachment

import (
	"context"

	"tailorshop/internal/domain"
)

// Repository persists attachment metadata. The binary itself lives in the
// object store under Attachment.ObjectKey.
type Repository interface {
	Create(ctx context.Context, a domain.Attachment) (*domain.Attachment, error)
	GetByID(ctx context.Context, id string) (*domain.Attachment, error)
	ListByOrder(ctx context.Context, orderID string) ([]domain.Attachment, error)
	Delete(ctx context.Context, id string) error
}
