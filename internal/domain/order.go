package domain

import (
	"time"

	"tailorshop/internal/money"
)

// Order is the aggregate root: a single commission with items, a status and a
// currency fixed at creation. OwnerID is the operator account reached through
// the owning customer; repositories populate it on every load so services can
// gate access without a second query.
type Order struct {
	ID            string       `json:"id"`
	CustomerID    string       `json:"customerId"`
	OwnerID       string       `json:"-"`
	Code          string       `json:"code,omitempty"`
	Currency      string       `json:"currency"`
	Status        Status       `json:"status"`
	Notes         string       `json:"notes,omitempty"`
	TrackingToken *string      `json:"-"`
	TaxTotal      money.Amount `json:"taxTotal"`
	DiscountTotal money.Amount `json:"discountTotal"`
	ShippingTotal money.Amount `json:"shippingTotal"`
	ReadyAt       *time.Time   `json:"readyAt,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	Items         []OrderItem  `json:"items,omitempty"`
}

// OrderItem is one line of an order, priced in the order's currency.
type OrderItem struct {
	ID          string       `json:"id"`
	OrderID     string       `json:"orderId"`
	Description string       `json:"description"`
	Quantity    int          `json:"quantity"`
	UnitPrice   money.Amount `json:"unitPrice"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// LineTotal is quantity times unit price.
func (i OrderItem) LineTotal() money.Amount {
	return i.UnitPrice.MulInt(int64(i.Quantity))
}
