package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification event types recorded by the order engine.
const (
	EventNewOrder      = "new_order"
	EventNewCustomer   = "new_customer"
	EventOrderCanceled = "order_canceled"
	EventOrderRefunded = "order_refunded"
)

// Notification is an admin-facing event record.
type Notification struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	Type      string         `json:"type" db:"type"`
	Message   string         `json:"message" db:"message"`
	Data      map[string]any `json:"data,omitempty" db:"data"`
	IsRead    bool           `json:"isRead" db:"is_read"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
}
