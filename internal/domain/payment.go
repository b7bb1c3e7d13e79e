package domain

import (
	"fmt"
	"time"

	"tailorshop/internal/money"
)

// PaymentMethod is the closed set of accepted payment channels.
type PaymentMethod string

const (
	MethodCash        PaymentMethod = "cash"
	MethodMobileMoney PaymentMethod = "mobile-money"
	MethodCard        PaymentMethod = "card"
)

// ParsePaymentMethod validates a raw method value against the closed set.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch m := PaymentMethod(raw); m {
	case MethodCash, MethodMobileMoney, MethodCard:
		return m, nil
	default:
		return "", &ValidationError{Field: "method", Reason: fmt.Sprintf("unknown payment method %q", raw)}
	}
}

// Payment is one append-only ledger entry against an order. New entries are
// restricted to positive whole units at the boundary; reversal entries carry a
// negative amount and reference the original, so amounts are summed signed.
type Payment struct {
	ID         string        `json:"id"`
	OrderID    string        `json:"orderId"`
	Amount     money.Amount  `json:"amount"`
	Method     PaymentMethod `json:"method"`
	Note       string        `json:"note,omitempty"`
	ReversalOf *string       `json:"reversalOf,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}
