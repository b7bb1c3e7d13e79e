package domain

import "time"

// Attachment is a stored binary asset tied to one order. ObjectKey is the
// permanent storage path and must never reach a client; readers get
// short-lived signed URLs instead.
type Attachment struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	ObjectKey string    `json:"-"`
	Kind      string    `json:"kind,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
