package domain

import "time"

// Operator is a shop account that owns customers and their orders.
type Operator struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	ShopName     string    `json:"shopName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
