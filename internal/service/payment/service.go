package payment

import (
	"context"
	"strings"

	"tailorshop/internal/domain"
	"tailorshop/internal/money"
	paymentrepo "tailorshop/internal/repository/payment"
)

// Service is the append-only payment ledger. New entries must be positive
// whole units of the order's currency; corrections happen through Reverse,
// which writes a negative entry referencing the original.
type Service struct {
	repo   repo
	orders orderRepo
}

type repo interface {
	Create(ctx context.Context, in paymentrepo.CreatePaymentInput) (*domain.Payment, error)
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	ListByOrder(ctx context.Context, orderID string) ([]domain.Payment, error)
}

type orderRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}

// New creates a Service.
func New(r repo, orders orderRepo) *Service {
	return &Service{repo: r, orders: orders}
}

// Input carries one new payment.
type Input struct {
	Amount int64  `json:"amount"`
	Method string `json:"method"`
	Note   string `json:"note"`
}

// Add records a payment against the order.
func (s *Service) Add(ctx context.Context, operatorID, orderID string, in Input) (*domain.Payment, error) {
	o, err := s.getOwned(ctx, operatorID, orderID)
	if err != nil {
		return nil, err
	}
	if in.Amount <= 0 {
		return nil, &domain.ValidationError{Field: "amount", Reason: "must be a positive whole number of currency units"}
	}
	method, err := domain.ParsePaymentMethod(in.Method)
	if err != nil {
		return nil, err
	}
	amount, err := money.FromInt(in.Amount, o.Currency)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, paymentrepo.CreatePaymentInput{
		OrderID: orderID,
		Amount:  amount,
		Method:  method,
		Note:    strings.TrimSpace(in.Note),
	})
}

// Reverse appends a negative entry cancelling one earlier payment. A payment
// can be reversed once, and reversals cannot themselves be reversed.
func (s *Service) Reverse(ctx context.Context, operatorID, orderID, paymentID, note string) (*domain.Payment, error) {
	if _, err := s.getOwned(ctx, operatorID, orderID); err != nil {
		return nil, err
	}
	original, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if original.OrderID != orderID {
		return nil, domain.ErrNotFound
	}
	if original.ReversalOf != nil || original.Amount.IsNegative() {
		return nil, &domain.ValidationError{Field: "paymentId", Reason: "cannot reverse a reversal"}
	}
	ref := original.ID
	return s.repo.Create(ctx, paymentrepo.CreatePaymentInput{
		OrderID:    orderID,
		Amount:     original.Amount.Neg(),
		Method:     original.Method,
		Note:       strings.TrimSpace(note),
		ReversalOf: &ref,
	})
}

// List returns the order's payments, newest first.
func (s *Service) List(ctx context.Context, operatorID, orderID string) ([]domain.Payment, error) {
	if _, err := s.getOwned(ctx, operatorID, orderID); err != nil {
		return nil, err
	}
	return s.repo.ListByOrder(ctx, orderID)
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
