package model

import "time"

// Payment tracks one gateway transaction for an order.
type Payment struct {
	PaymentID     int64      `json:"payment_id"`
	OrderID       int64      `json:"order_id"`
	Amount        float64    `json:"amount"`
	PaymentStatus string     `json:"payment_status"`
	Provider      string     `json:"provider"`
	ProviderRef   string     `json:"provider_ref"`
	CreatedAt     time.Time  `json:"created_at"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}
