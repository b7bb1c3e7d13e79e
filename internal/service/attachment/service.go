package attachment

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"tailorshop/internal/domain"
)

// Service mediates every touch of attachment binaries. Stored object keys
// stay inside this package boundary; readers only ever see signed URLs.
type Service struct {
	repo   repo
	orders orderRepo
	store  objectStore
	urlTTL time.Duration
}

type repo interface {
	Create(ctx context.Context, a domain.Attachment) (*domain.Attachment, error)
	GetByID(ctx context.Context, id string) (*domain.Attachment, error)
	ListByOrder(ctx context.Context, orderID string) ([]domain.Attachment, error)
	Delete(ctx context.Context, id string) error
}

type orderRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}

type objectStore interface {
	Save(r io.Reader, ext string) (string, error)
	Remove(key string) error
	SignedURL(key string, ttl time.Duration) (string, error)
}

// New creates a Service. urlTTL is the lifetime of minted links.
func New(r repo, orders orderRepo, store objectStore, urlTTL time.Duration) *Service {
	if urlTTL <= 0 {
		urlTTL = time.Hour
	}
	return &Service{repo: r, orders: orders, store: store, urlTTL: urlTTL}
}

// WithURL pairs an attachment with a freshly signed link. URL is empty when
// signing failed.
type WithURL struct {
	domain.Attachment
	URL string `json:"url,omitempty"`
}

// Upload stores the binary and records the attachment row.
func (s *Service) Upload(ctx context.Context, operatorID, orderID, filename, kind string, r io.Reader) (*domain.Attachment, error) {
	if _, err := s.getOwned(ctx, operatorID, orderID); err != nil {
		return nil, err
	}
	key, err := s.store.Save(r, filepath.Ext(filename))
	if err != nil {
		return nil, err
	}
	a, err := s.repo.Create(ctx, domain.Attachment{
		OrderID:   orderID,
		ObjectKey: key,
		Kind:      strings.TrimSpace(kind),
	})
	if err != nil {
		_ = s.store.Remove(key)
		return nil, err
	}
	return a, nil
}

// List returns the order's attachments, each with a signed URL when signing
// succeeds.
func (s *Service) List(ctx context.Context, operatorID, orderID string) ([]WithURL, error) {
	if _, err := s.getOwned(ctx, operatorID, orderID); err != nil {
		return nil, err
	}
	stored, err := s.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]WithURL, 0, len(stored))
	for _, a := range stored {
		url, _ := s.SignedURL(&a, s.urlTTL)
		out = append(out, WithURL{Attachment: a, URL: url})
	}
	return out, nil
}

// Delete removes the row and then the stored object.
func (s *Service) Delete(ctx context.Context, operatorID, attachmentID string) error {
	a, err := s.repo.GetByID(ctx, attachmentID)
	if err != nil {
		return err
	}
	if _, err := s.getOwned(ctx, operatorID, a.OrderID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, a.ID); err != nil {
		return err
	}
	return s.store.Remove(a.ObjectKey)
}

// SignedURL mints a short-lived link for one attachment. It returns ok=false
// instead of an error on signing failure: attachment display is non-critical
// and callers render a placeholder.
func (s *Service) SignedURL(a *domain.Attachment, ttl time.Duration) (string, bool) {
	if ttl <= 0 {
		ttl = s.urlTTL
	}
	url, err := s.store.SignedURL(a.ObjectKey, ttl)
	if err != nil {
		return "", false
	}
	return url, true
}

func (s *Service) getOwned(ctx context.Context, operatorID, orderID string) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.OwnerID != operatorID {
		return nil, domain.ErrNotOwner
	}
	return o, nil
}
