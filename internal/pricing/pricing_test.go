package pricing

import (
	"errors"
	"testing"
	"time"

	"shop-kart/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dealPrice(v float64) *float64 {
	return &v
}

func TestEffectiveUnitPrice_FlashDeal(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		product  model.Product
		expected float64
	}{
		{
			name: "Active flash deal wins over discount",
			product: model.Product{
				Price:       1200,
				Discount:    &model.Discount{Kind: model.DiscountPercent, Value: 50},
				IsFlashDeal: true,
				FlashDeal: &model.FlashDeal{
					StartAt:   now.Add(-time.Hour),
					EndAt:     now.Add(time.Hour),
					DealPrice: dealPrice(799),
				},
			},
			expected: 799,
		},
		{
			name: "Expired flash deal falls back to discount",
			product: model.Product{
				Price:       1000,
				Discount:    &model.Discount{Kind: model.DiscountPercent, Value: 10},
				IsFlashDeal: true,
				FlashDeal: &model.FlashDeal{
					StartAt:   now.Add(-3 * time.Hour),
					EndAt:     now.Add(-time.Hour),
					DealPrice: dealPrice(500),
				},
			},
			expected: 900,
		},
		{
			name: "Flash deal not yet started",
			product: model.Product{
				Price:       1000,
				IsFlashDeal: true,
				FlashDeal: &model.FlashDeal{
					StartAt:   now.Add(time.Hour),
					EndAt:     now.Add(2 * time.Hour),
					DealPrice: dealPrice(500),
				},
			},
			expected: 1000,
		},
		{
			name: "Flash deal flag set but no deal price",
			product: model.Product{
				Price:       1000,
				IsFlashDeal: true,
				FlashDeal: &model.FlashDeal{
					StartAt: now.Add(-time.Hour),
					EndAt:   now.Add(time.Hour),
				},
			},
			expected: 1000,
		},
		{
			name: "Deal active exactly at window start",
			product: model.Product{
				Price:       1000,
				IsFlashDeal: true,
				FlashDeal: &model.FlashDeal{
					StartAt:   now,
					EndAt:     now.Add(time.Hour),
					DealPrice: dealPrice(750),
				},
			},
			expected: 750,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EffectiveUnitPrice(&tt.product, now))
		})
	}
}

func TestEffectiveUnitPrice_Discounts(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		product  model.Product
		expected float64
	}{
		{
			name:     "No discount returns base price",
			product:  model.Product{Price: 1200},
			expected: 1200,
		},
		{
			name: "Percent discount",
			product: model.Product{
				Price:    200,
				Discount: &model.Discount{Kind: model.DiscountPercent, Value: 25},
			},
			expected: 150,
		},
		{
			name: "Flat discount",
			product: model.Product{
				Price:    200,
				Discount: &model.Discount{Kind: model.DiscountFlat, Value: 60},
			},
			expected: 140,
		},
		{
			name: "Flat discount clamped at zero",
			product: model.Product{
				Price:    50,
				Discount: &model.Discount{Kind: model.DiscountFlat, Value: 80},
			},
			expected: 0,
		},
		{
			name: "Unknown discount kind ignored",
			product: model.Product{
				Price:    100,
				Discount: &model.Discount{Kind: "bogus", Value: 50},
			},
			expected: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EffectiveUnitPrice(&tt.product, now))
		})
	}
}

func TestShippingForLine_Free(t *testing.T) {
	p := model.Product{Shipping: model.Shipping{Kind: model.ShippingFree}}

	cost, err := ShippingForLine(&p, 5, "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, cost)
}

func TestShippingForLine_LocationBased(t *testing.T) {
	p := model.Product{
		Shipping: model.Shipping{
			Kind: model.ShippingLocationBased,
			Locations: []model.LocationPrice{
				{Location: "Dhaka", Price: 60},
				{Location: "Sylhet", Price: 110},
			},
		},
	}

	t.Run("Case-insensitive match", func(t *testing.T) {
		cost, err := ShippingForLine(&p, 2, "dhaka")
		require.NoError(t, err)
		assert.Equal(t, 120.0, cost)
	})

	t.Run("Exact match", func(t *testing.T) {
		cost, err := ShippingForLine(&p, 1, "Sylhet")
		require.NoError(t, err)
		assert.Equal(t, 110.0, cost)
	})

	t.Run("Missing location", func(t *testing.T) {
		_, err := ShippingForLine(&p, 1, "")
		require.Error(t, err)

		var domainErr *model.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, model.KindValidation, domainErr.Kind)
		assert.Equal(t, model.ErrCodeShippingLocationNeeded, domainErr.Code)
	})

	t.Run("Unknown location", func(t *testing.T) {
		_, err := ShippingForLine(&p, 1, "Chittagong")
		require.Error(t, err)

		var domainErr *model.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, model.KindValidation, domainErr.Kind)
		assert.Equal(t, model.ErrCodeUnknownShippingRegion, domainErr.Code)
	})
}

func TestShippingForLine_UnknownPolicyDefaultsToZero(t *testing.T) {
	p := model.Product{Shipping: model.Shipping{Kind: "pickup"}}

	cost, err := ShippingForLine(&p, 3, "Dhaka")
	require.NoError(t, err)
	assert.Equal(t, 0.0, cost)
}
