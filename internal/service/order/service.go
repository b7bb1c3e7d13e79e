package order

import (
	"context"
	"strings"
	"time"

	"tailorshop/internal/domain"
	"tailorshop/internal/money"
	orderrepo "tailorshop/internal/repository/order"

	"github.com/google/uuid"
)

// Service owns the order item ledger and the status state machine. Every
// mutation verifies that the acting operator owns the order; mismatches come
// back as domain.ErrNotOwner, which the transport reports exactly like a
// missing order.
type Service struct {
	repo      repo
	customers customerRepo
}

type repo interface {
	Create(ctx context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	Delete(ctx context.Context, id string) error
	AddItem(ctx context.Context, orderID, description string, quantity int, unitPrice money.Amount) (*domain.OrderItem, error)
	RemoveItem(ctx context.Context, orderID, itemID string) error
	SetStatus(ctx context.Context, orderID string, status domain.Status) error
	SetReadyAt(ctx context.Context, orderID string, readyAt *time.Time) error
	SetAdjustments(ctx context.Context, orderID string, tax, discount, shipping money.Amount) error
	UpdateDetails(ctx context.Context, orderID, code, notes string) error
}

type customerRepo interface {
	GetByID(ctx context.Context, ownerID, id string) (*domain.Customer, error)
}

// New creates a Service.
func New(r repo, customers customerRepo) *Service {
	return &Service{repo: r, customers: customers}
}

// CreateInput carries the fields for a new order.
type CreateInput struct {
	CustomerID string `json:"customerId"`
	Currency   string `json:"currency"`
	Code       string `json:"code"`
	Notes      string `json:"notes"`
}

// ItemInput carries one new line item.
type ItemInput struct {
	Description string       `json:"description"`
	Quantity    int          `json:"quantity"`
	UnitPrice   money.Amount `json:"unitPrice"`
}

// AdjustmentsInput carries the external adjustment amounts.
type AdjustmentsInput struct {
	Tax      money.Amount `json:"tax"`
	Discount money.Amount `json:"discount"`
	Shipping money.Amount `json:"shipping"`
}

// Create opens a new order for one of the operator's customers. The currency
// is fixed here for the order's lifetime.
func (s *Service) Create(ctx context.Context, operatorID string, in CreateInput) (*domain.Order, error) {
	if strings.TrimSpace(in.CustomerID) == "" {
		return nil, &domain.ValidationError{Field: "customerId", Reason: "required"}
	}
	if _, err := money.New("0", in.Currency); err != nil {
		return nil, &domain.ValidationError{Field: "currency", Reason: "three-letter code required"}
	}

	// The customer lookup is owner-scoped, so a foreign customer id reads as
	// not found.
	if _, err := s.customers.GetByID(ctx, operatorID, in.CustomerID); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(in.Code)
	if code == "" {
		code = generateCode()
	}

	return s.repo.Create(ctx, orderrepo.CreateOrderInput{
		CustomerID: in.CustomerID,
		Currency:   strings.ToUpper(strings.TrimSpace(in.Currency)),
		Code:       code,
		Notes:      strings.TrimSpace(in.Notes),
	})
}

// Get fetches one order with its items, owner-gated.
func (s *Service) Get(ctx context.Context, operatorID, orderID string) (*domain.Order, error) {
	return s.getOwned(ctx, operatorID, orderID)
}

// ListByCustomer returns all orders of one of the operator's customers.
func (s *Service) ListByCustomer(ctx context.Context, operatorID, customerID string) ([]domain.Order, error) {
	if _, err := s.customers.GetByID(ctx, operatorID, customerID); err != nil {
		return nil, err
	}
	return s.repo.ListByCustomer(ctx, customerID)
}

// Delete removes an order and everything hanging off it.
func (s *Service) Delete(ctx context.Context, operatorID, orderID string) error {
	if _, err := s.getOwned(ctx, operatorID, orderID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, orderID)
}

// AddItem appends a line item. Items are frozen once the order is terminal so
// historical billing stays accurate.
func (s *Service) AddItem(ctx context.Context, operatorID, orderID string, in ItemInput) (*domain.OrderItem, error) {
	o, err := s.getOwned(ctx, operatorID, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status.Terminal() {
		return nil, &domain.InvalidStateError{Status: o.Status}
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return nil, &domain.ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if in.Quantity <= 0 {
		return nil, &domain.ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	if in.UnitPrice.IsNegative() {
		return nil, &domain.ValidationError{Field: "unitPrice", Reason: "must not be negative"}
	}
	if in.UnitPrice.Currency() != o.Currency {
		return nil, &money.CurrencyMismatchError{Want: o.Currency, Got: in.UnitPrice.Currency()}
	}
	return s.repo.AddItem(ctx, orderID, desc, in.Quantity, in.UnitPrice)
}

// RemoveItem deletes a line item from a non-terminal order.
func (s *Service) RemoveItem(ctx context.Context, operatorID, orderID, itemID string) error {
	o, err := s.getOwned(ctx, operatorID, orderID)
	if err != nil {
		return err
	}
	if o.Status.Terminal() {
		return &domain.InvalidStateError{Status: o.Status}
	}
	return s.repo.RemoveItem(ctx, orderID, itemID)
}

// ListItems returns the order's items in insertion order.
func (s *Service) ListItems(ctx context.Context, operatorID, orderID string) ([]domain.OrderItem, error) {
	o, err := s.getOwned(ctx, operatorID, orderID)
	if err != nil {
		return nil, err
	}
	return o.Items, nil
}

// SetStatus drives the state machine. Illegal moves fail with
// InvalidTransitionError and leave the order untouched.
func (s *Service) SetStatus(ctx context.Context, operatorID, orderID string, raw string) (*domain.Order, error) {
	to, err := domain.ParseStatus(raw)
	if err != nil {
		return nil, err
	}
	o, err := s.getOwned(ctx, operatorID, orderID)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanTransition(to) {
		return nil, &domain.InvalidTransitionError{From: o.Status, To: to}
	}
	if err := s.repo.SetStatus(ctx, orderID, to); err != nil {
		return nil, err
	}
	o.Status = to
	return o, nil
}

// SetReadyAt sets or clears the promised completion timestamp. It is not part
// of the state machine; only terminal orders refuse it.
func (s *Service) SetReadyAt(ctx context.Context, operatorID, orderID string, readyAt *time.Time) error {
	o, err := s.getOwned(ctx, operatorID, orderID)
	if err != nil {
		return err
	}
	if o.Status.Terminal() {
		return &domain.InvalidStateError{Status: o.Status}
	}
	return s.repo.SetReadyAt(ctx, orderID, readyAt)
}

// SetAdjustments replaces the tax/discount/shipping amounts.
func (s *Service) SetAdjustments(ctx context.Context, operatorID, orderID string, in AdjustmentsInput) error {
	o, err := s.getOwned(ctx, operatorID, orderID)
	if err != nil {
		return err
	}
	if o.Status.Terminal() {
		return &domain.InvalidStateError{Status: o.Status}
	}
	for _, adj := range []struct {
		field  string
		amount money.Amount
	}{
		{"tax", in.Tax},
		{"discount", in.Discount},
		{"shipping", in.Shipping},
	} {
		if adj.amount.Currency() != o.Currency {
			return &money.CurrencyMismatchError{Want: o.Currency, Got: adj.amount.Currency()}
		}
		if adj.amount.IsNegative() {
			return &domain.ValidationError{Field: adj.field, Reason: "must not be negative"}
		}
	}
	return s.repo.SetAdjustments(ctx, orderID, in.Tax, in.Discount, in.Shipping)
}

// UpdateDetails changes the human-readable code and free-text notes.
func (s *Service) UpdateDetails(ctx context.Context, operatorID, orderID, code, notes string) error {
	if _, err := s.getOwned(ctx, operatorID, orderID); err != nil {
		return err
	}
	return s.repo.UpdateDetails(ctx, orderID, strings.TrimSpace(code), strings.TrimSpace(notes))
}

func (s *Service) getOwned(ctx context.Context, operatorID, orderID string) (*domain.Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.OwnerID != operatorID {
		return nil, domain.ErrNotOwner
	}
	return o, nil
}

func generateCode() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}
