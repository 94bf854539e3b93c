package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod identifies how an order is paid. Cash on delivery is the
// only supported method.
type PaymentMethod string

const (
	PaymentCOD PaymentMethod = "cod"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderProcessing OrderStatus = "processing"
	OrderPlaced     OrderStatus = "placed"
	OrderDelivered  OrderStatus = "delivered"
	OrderCanceled   OrderStatus = "canceled"
	OrderRefunded   OrderStatus = "refunded"
)

// orderTransitions encodes the legal status transition graph.
// CANCELED and REFUNDED are terminal; DELIVERED can only move to REFUNDED.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderProcessing: {OrderPlaced, OrderCanceled, OrderRefunded},
	OrderPlaced:     {OrderDelivered, OrderCanceled, OrderRefunded},
	OrderDelivered:  {OrderRefunded},
	OrderCanceled:   {},
	OrderRefunded:   {},
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransition reports whether an order in status s may move to target.
func (s OrderStatus) CanTransition(target OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible from s.
func (s OrderStatus) Terminal() bool {
	return s.Valid() && len(orderTransitions[s]) == 0
}

// Customer is the contact snapshot embedded in an order.
type Customer struct {
	Name        string  `json:"name" db:"customer_name"`
	Phone       string  `json:"phone" db:"customer_phone"`
	FullAddress string  `json:"fullAddress" db:"customer_address"`
	Email       *string `json:"email,omitempty" db:"customer_email"`
	Note        *string `json:"note,omitempty" db:"customer_note"`
}

// OrderItem is a line item in an order. Product details are snapshotted at
// checkout time and never re-derived from the live catalogue.
type OrderItem struct {
	ID             uuid.UUID `json:"-" db:"id"`
	OrderID        uuid.UUID `json:"-" db:"order_id"`
	ProductID      uuid.UUID `json:"productId" db:"product_id"`
	SKU            string    `json:"sku" db:"sku"`
	Name           string    `json:"name" db:"name"`
	Slug           string    `json:"slug" db:"slug"`
	Thumbnail      string    `json:"thumbnail,omitempty" db:"thumbnail"`
	UnitPrice      float64   `json:"unitPrice" db:"unit_price"`
	Quantity       int       `json:"quantity" db:"quantity"`
	TotalPrice     float64   `json:"totalPrice" db:"total_price"`
	VoucherBalance float64   `json:"voucherBalance" db:"voucher_balance"`
}

// Order represents a customer order with its embedded item and customer
// snapshots. Total always equals Subtotal + ShippingCost.
type Order struct {
	ID               uuid.UUID     `json:"id" db:"id"`
	UserID           *uuid.UUID    `json:"userId,omitempty" db:"user_id"`
	Items            []OrderItem   `json:"items"`
	Customer         Customer      `json:"customer"`
	PaymentMethod    PaymentMethod `json:"paymentMethod" db:"payment_method"`
	Status           OrderStatus   `json:"status" db:"status"`
	ShippingLocation *string       `json:"shippingLocation,omitempty" db:"shipping_location"`
	ShippingCost     float64       `json:"shippingCost" db:"shipping_cost"`
	Subtotal         float64       `json:"subtotal" db:"subtotal"`
	Total            float64       `json:"total" db:"total"`
	CreatedAt        time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time     `json:"updatedAt" db:"updated_at"`
}

// CheckoutItemRequest is a single requested line in a checkout payload.
type CheckoutItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// CheckoutRequest is the request payload for placing an order.
type CheckoutRequest struct {
	Items            []CheckoutItemRequest `json:"items"`
	Customer         Customer              `json:"customer"`
	PaymentMethod    PaymentMethod         `json:"paymentMethod"`
	ShippingLocation *string               `json:"shippingLocation,omitempty"`
}

// UpdateOrderStatusRequest is the request payload for a status change.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status"`
}
