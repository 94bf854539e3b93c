// Package pricing computes effective unit prices and per-line shipping
// costs from product snapshots. All functions are pure: they read the
// given product and instant only and never touch the datastore.
package pricing

import (
	"strings"
	"time"

	"shop-kart/internal/model"
)

// EffectiveUnitPrice returns the unit price a buyer pays for p at the
// given instant. An active flash deal with a configured deal price takes
// precedence over any discount; discounts are clamped so the price never
// goes below zero.
func EffectiveUnitPrice(p *model.Product, now time.Time) float64 {
	if p.IsFlashDeal && p.FlashDeal != nil && p.FlashDeal.DealPrice != nil {
		if !now.Before(p.FlashDeal.StartAt) && !now.After(p.FlashDeal.EndAt) {
			return *p.FlashDeal.DealPrice
		}
	}

	if p.Discount != nil {
		switch p.Discount.Kind {
		case model.DiscountPercent:
			return clampPrice(p.Price - p.Price*p.Discount.Value/100)
		case model.DiscountFlat:
			return clampPrice(p.Price - p.Discount.Value)
		}
	}

	return p.Price
}

// ShippingForLine returns the shipping cost for quantity units of p
// delivered to location. Free shipping costs nothing; location-based
// shipping requires a location that resolves case-insensitively against
// the product's price table. An unknown shipping policy defaults to zero.
func ShippingForLine(p *model.Product, quantity int, location string) (float64, error) {
	switch p.Shipping.Kind {
	case model.ShippingFree:
		return 0, nil
	case model.ShippingLocationBased:
		if location == "" {
			return 0, model.NewValidation(model.ErrCodeShippingLocationNeeded,
				"Shipping location is required for location based shipping")
		}
		for _, entry := range p.Shipping.Locations {
			if strings.EqualFold(entry.Location, location) {
				return entry.Price * float64(quantity), nil
			}
		}
		return 0, model.ErrNoShippingPrice(location)
	}
	return 0, nil
}

func clampPrice(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
