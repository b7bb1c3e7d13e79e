package billing

import (
	"context"

	"tailorshop/internal/domain"
	"tailorshop/internal/money"
)

// Service derives an order's totals snapshot. Totals are never stored: every
// read recomputes from the item ledger, the adjustment amounts on the order
// record and the payment ledger, so a concurrent mutation is visible on the
// next read instead of lingering in a stale cache.
type Service struct {
	payments paymentRepo
}

type paymentRepo interface {
	ListByOrder(ctx context.Context, orderID string) ([]domain.Payment, error)
}

// New creates a Service.
func New(payments paymentRepo) *Service {
	return &Service{payments: payments}
}

// Compute returns the totals for an order already loaded with its items.
// Every contributing amount must carry the order's currency; a mismatch is a
// data-integrity failure, never coerced.
func (s *Service) Compute(ctx context.Context, o *domain.Order) (domain.Totals, error) {
	subtotal := money.Zero(o.Currency)
	var err error
	for _, item := range o.Items {
		subtotal, err = subtotal.Add(item.LineTotal())
		if err != nil {
			return domain.Totals{}, err
		}
	}

	// computedTotal = subtotal + tax + shipping - discount, exact decimal all
	// the way; rounding happens only at presentation.
	total, err := subtotal.Add(o.TaxTotal)
	if err != nil {
		return domain.Totals{}, err
	}
	total, err = total.Add(o.ShippingTotal)
	if err != nil {
		return domain.Totals{}, err
	}
	total, err = total.Sub(o.DiscountTotal)
	if err != nil {
		return domain.Totals{}, err
	}

	entries, err := s.payments.ListByOrder(ctx, o.ID)
	if err != nil {
		return domain.Totals{}, err
	}
	paid := money.Zero(o.Currency)
	for _, p := range entries {
		// Signed sum: reversal entries carry negative amounts.
		paid, err = paid.Add(p.Amount)
		if err != nil {
			return domain.Totals{}, err
		}
	}

	// Balance may go negative on overpayment; callers decide presentation.
	balance, err := total.Sub(paid)
	if err != nil {
		return domain.Totals{}, err
	}

	return domain.Totals{
		Subtotal:      subtotal,
		Tax:           o.TaxTotal,
		Discount:      o.DiscountTotal,
		Shipping:      o.ShippingTotal,
		ComputedTotal: total,
		Paid:          paid,
		Balance:       balance,
	}, nil
}
