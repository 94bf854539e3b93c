package model

import (
	"time"

	"github.com/google/uuid"
)

// DiscountKind identifies how a product discount is applied.
type DiscountKind string

const (
	DiscountPercent DiscountKind = "percent"
	DiscountFlat    DiscountKind = "flat"
)

// Discount is an optional price reduction configured on a product.
type Discount struct {
	Kind  DiscountKind `json:"kind"`
	Value float64      `json:"value"`
}

// ShippingKind identifies a product's shipping policy.
type ShippingKind string

const (
	ShippingFree          ShippingKind = "free"
	ShippingLocationBased ShippingKind = "location_based"
)

// LocationPrice is one entry in a location-based shipping price table.
type LocationPrice struct {
	Location string  `json:"location"`
	Price    float64 `json:"price"`
}

// Shipping describes how shipping cost is computed for a product.
type Shipping struct {
	Kind      ShippingKind    `json:"kind"`
	Locations []LocationPrice `json:"locations,omitempty"`
}

// FlashDeal is a time-boxed override price, active only within its window.
type FlashDeal struct {
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	DealPrice *float64  `json:"dealPrice,omitempty"`
}

// Product represents a catalogue product with pricing, stock and
// promotional state.
type Product struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	SKU            string     `json:"sku" db:"sku"`
	Slug           string     `json:"slug" db:"slug"`
	Description    string     `json:"description,omitempty" db:"description"`
	Thumbnail      string     `json:"thumbnail,omitempty" db:"thumbnail"`
	Price          float64    `json:"price" db:"price"`
	Stock          int        `json:"stock" db:"stock"`
	VoucherBalance float64    `json:"voucherBalance" db:"voucher_balance"`
	Discount       *Discount  `json:"discount,omitempty"`
	IsFlashDeal    bool       `json:"isFlashDeal" db:"is_flash_deal"`
	FlashDeal      *FlashDeal `json:"flashDeal,omitempty"`
	Shipping       Shipping   `json:"shipping"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
}

// StockAction identifies a manual stock adjustment operation.
type StockAction string

const (
	StockSet       StockAction = "set"
	StockIncrement StockAction = "increment"
	StockDecrement StockAction = "decrement"
)

// AdjustStockRequest is the payload for a manual stock adjustment.
type AdjustStockRequest struct {
	Action   StockAction `json:"action"`
	Quantity int         `json:"quantity"`
}

// FlashDealRequest is the payload for configuring a product flash deal.
type FlashDealRequest struct {
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	DealPrice *float64  `json:"dealPrice,omitempty"`
}
