// Package events fans out order lifecycle events to a message broker.
// Publishing is fire-and-forget from the order engine's point of view:
// a failed publish is logged and never fails the originating request.
package events

import (
	"time"

	"github.com/google/uuid"
)

// OrderEvent is the payload published for each order lifecycle change.
type OrderEvent struct {
	EventID   uuid.UUID  `json:"eventId"`
	Type      string     `json:"type"`
	OrderID   uuid.UUID  `json:"orderId"`
	UserID    *uuid.UUID `json:"userId,omitempty"`
	Status    string     `json:"status"`
	Total     float64    `json:"total"`
	Timestamp time.Time  `json:"timestamp"`
}
