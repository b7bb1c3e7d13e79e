package domain

import "tailorshop/internal/money"

// Totals is a derived snapshot of what an order costs and what is owed.
// It is recomputed on every read and never stored.
type Totals struct {
	Subtotal      money.Amount `json:"subtotal"`
	Tax           money.Amount `json:"tax"`
	Discount      money.Amount `json:"discount"`
	Shipping      money.Amount `json:"shipping"`
	ComputedTotal money.Amount `json:"computedTotal"`
	Paid          money.Amount `json:"paid"`
	Balance       money.Amount `json:"balance"`
}

// DisplayTotal floors the computed total at zero for presentation. The stored
// ComputedTotal keeps the true arithmetic result, negative or not.
func (t Totals) DisplayTotal() money.Amount {
	if t.ComputedTotal.IsNegative() {
		return money.Zero(t.ComputedTotal.Currency())
	}
	return t.ComputedTotal
}
