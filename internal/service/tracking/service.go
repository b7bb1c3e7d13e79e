package tracking

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"tailorshop/internal/domain"
	"tailorshop/internal/money"
)

// Service mints tracking tokens and serves the anonymous read-only view of an
// order. Resolution fails closed: malformed tokens, unknown tokens and
// storage misses all collapse into domain.ErrNotFound so a caller cannot
// probe token validity.
type Service struct {
	orders      orderRepo
	payments    paymentRepo
	attachments attachmentRepo
	totals      totalsComputer
	signer      urlSigner
	urlTTL      time.Duration
}

type orderRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByTrackingToken(ctx context.Context, token string) (*domain.Order, error)
	ClaimTrackingToken(ctx context.Context, orderID, token string) (string, error)
}

type paymentRepo interface {
	ListByOrder(ctx context.Context, orderID string) ([]domain.Payment, error)
}

type attachmentRepo interface {
	ListByOrder(ctx context.Context, orderID string) ([]domain.Attachment, error)
}

type totalsComputer interface {
	Compute(ctx context.Context, o *domain.Order) (domain.Totals, error)
}

type urlSigner interface {
	SignedURL(key string, ttl time.Duration) (string, error)
}

// New creates a Service. urlTTL bounds how long attachment links stay valid.
func New(orders orderRepo, payments paymentRepo, attachments attachmentRepo, totals totalsComputer, signer urlSigner, urlTTL time.Duration) *Service {
	if urlTTL <= 0 {
		urlTTL = time.Hour
	}
	return &Service{
		orders:      orders,
		payments:    payments,
		attachments: attachments,
		totals:      totals,
		signer:      signer,
		urlTTL:      urlTTL,
	}
}

// PublicOrder is the strict field allow-list exposed to anonymous readers.
// No internal notes, no customer identity, no raw object keys.
type PublicOrder struct {
	Code        string             `json:"code,omitempty"`
	Status      domain.Status      `json:"status"`
	Currency    string             `json:"currency"`
	CreatedAt   time.Time          `json:"createdAt"`
	ReadyAt     *time.Time         `json:"readyAt,omitempty"`
	Items       []PublicItem       `json:"items"`
	Totals      domain.Totals      `json:"totals"`
	Payments    []PublicPayment    `json:"payments"`
	Attachments []PublicAttachment `json:"attachments"`
}

// PublicItem is one order line in the public view.
type PublicItem struct {
	Description string       `json:"description"`
	Quantity    int          `json:"quantity"`
	UnitPrice   money.Amount `json:"unitPrice"`
	LineTotal   money.Amount `json:"lineTotal"`
}

// PublicPayment summarizes a ledger entry without its internal note.
type PublicPayment struct {
	Amount    money.Amount         `json:"amount"`
	Method    domain.PaymentMethod `json:"method"`
	CreatedAt time.Time            `json:"createdAt"`
}

// PublicAttachment exposes a signed URL only. URL is empty when signing
// failed; callers render a placeholder.
type PublicAttachment struct {
	Kind string `json:"kind,omitempty"`
	URL  string `json:"url,omitempty"`
}

// IssueOrRetrieve returns the order's tracking token, minting one on first
// call. It is idempotent: a second call, or losing a concurrent first-call
// race, returns the already durable token.
func (s *Service) IssueOrRetrieve(ctx context.Context, operatorID, orderID string) (string, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if o.OwnerID != operatorID {
		return "", domain.ErrNotOwner
	}
	if o.TrackingToken != nil && *o.TrackingToken != "" {
		return *o.TrackingToken, nil
	}

	for i := 0; i < 5; i++ {
		candidate, err := randomToken()
		if err != nil {
			return "", err
		}
		token, err := s.orders.ClaimTrackingToken(ctx, orderID, candidate)
		if err == nil {
			return token, nil
		}
		// Collision with another order's token; mint a new one and retry.
		if errors.Is(err, domain.ErrAlreadyExists) {
			continue
		}
		return "", err
	}
	return "", errors.New("token collision")
}

// Resolve maps a tracking token to the public view of its order.
func (s *Service) Resolve(ctx context.Context, token string) (*PublicOrder, error) {
	if !plausibleToken(token) {
		return nil, domain.ErrNotFound
	}
	o, err := s.orders.GetByTrackingToken(ctx, token)
	if err != nil {
		// Every failure shape is a generic not-found to the caller.
		return nil, domain.ErrNotFound
	}

	totals, err := s.totals.Compute(ctx, o)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	entries, err := s.payments.ListByOrder(ctx, o.ID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	stored, err := s.attachments.ListByOrder(ctx, o.ID)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	view := &PublicOrder{
		Code:        o.Code,
		Status:      o.Status,
		Currency:    o.Currency,
		CreatedAt:   o.CreatedAt,
		ReadyAt:     o.ReadyAt,
		Items:       make([]PublicItem, 0, len(o.Items)),
		Totals:      totals,
		Payments:    make([]PublicPayment, 0, len(entries)),
		Attachments: make([]PublicAttachment, 0, len(stored)),
	}
	for _, item := range o.Items {
		view.Items = append(view.Items, PublicItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal(),
		})
	}
	for _, p := range entries {
		view.Payments = append(view.Payments, PublicPayment{
			Amount:    p.Amount,
			Method:    p.Method,
			CreatedAt: p.CreatedAt,
		})
	}
	for _, a := range stored {
		url, err := s.signer.SignedURL(a.ObjectKey, s.urlTTL)
		if err != nil {
			// Attachment display is non-critical; surface a placeholder.
			url = ""
		}
		view.Attachments = append(view.Attachments, PublicAttachment{Kind: a.Kind, URL: url})
	}
	return view, nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// plausibleToken bounds lookup input without leaking which check failed.
func plausibleToken(token string) bool {
	return len(token) >= 16 && len(token) <= 128
}
