package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderProcessing, OrderPlaced, true},
		{OrderProcessing, OrderCanceled, true},
		{OrderProcessing, OrderRefunded, true},
		{OrderProcessing, OrderDelivered, false},
		{OrderPlaced, OrderDelivered, true},
		{OrderPlaced, OrderCanceled, true},
		{OrderPlaced, OrderRefunded, true},
		{OrderPlaced, OrderProcessing, false},
		{OrderDelivered, OrderRefunded, true},
		{OrderDelivered, OrderCanceled, false},
		{OrderCanceled, OrderRefunded, false},
		{OrderCanceled, OrderProcessing, false},
		{OrderRefunded, OrderCanceled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"→"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to))
		})
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, OrderCanceled.Terminal())
	assert.True(t, OrderRefunded.Terminal())
	assert.False(t, OrderProcessing.Terminal())
	assert.False(t, OrderPlaced.Terminal())
	assert.False(t, OrderDelivered.Terminal())
	assert.False(t, OrderStatus("bogus").Terminal())
}

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range []OrderStatus{OrderProcessing, OrderPlaced, OrderDelivered, OrderCanceled, OrderRefunded} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, OrderStatus("shipped").Valid())
}
