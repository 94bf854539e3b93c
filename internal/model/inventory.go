package model

import (
	"time"

	"github.com/google/uuid"
)

// MovementType identifies the direction of an inventory movement.
type MovementType string

const (
	MovementIn     MovementType = "in"
	MovementOut    MovementType = "out"
	MovementAdjust MovementType = "adjust"
)

// Valid reports whether t is a known movement type.
func (t MovementType) Valid() bool {
	switch t {
	case MovementIn, MovementOut, MovementAdjust:
		return true
	}
	return false
}

// InventoryMovement is an immutable audit record of a stock change.
// Movements are append-only; they are never updated or deleted.
type InventoryMovement struct {
	ID        uuid.UUID    `json:"id" db:"id"`
	ProductID uuid.UUID    `json:"productId" db:"product_id"`
	Type      MovementType `json:"type" db:"type"`
	Quantity  int          `json:"quantity" db:"quantity"`
	Reason    *string      `json:"reason,omitempty" db:"reason"`
	OrderID   *uuid.UUID   `json:"orderId,omitempty" db:"order_id"`
	UserID    *uuid.UUID   `json:"userId,omitempty" db:"user_id"`
	CreatedAt time.Time    `json:"createdAt" db:"created_at"`

	// Expanded product reference for display, populated on the read path.
	ProductName string `json:"productName,omitempty" db:"product_name"`
	ProductSKU  string `json:"productSku,omitempty" db:"product_sku"`
	ProductSlug string `json:"productSlug,omitempty" db:"product_slug"`
}

// MovementFilter narrows an inventory movement listing.
type MovementFilter struct {
	ProductID *uuid.UUID
	Type      *MovementType
	From      *time.Time
	To        *time.Time
}
