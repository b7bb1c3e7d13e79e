package token

import (
	"context"
	"time"
)

// Session is one issued operator session token.
type Session struct {
	Token      string
	OperatorID string
	Kind       string
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// Repository persists operator session tokens.
type Repository interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}
