package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"placed to accepted", OrderPlaced, OrderAccepted, true},
		{"accepted to preparing", OrderAccepted, OrderPreparing, true},
		{"preparing to ready", OrderPreparing, OrderReady, true},
		{"ready to assigned", OrderReady, OrderAssigned, true},
		{"assigned to picked_up", OrderAssigned, OrderPickedUp, true},
		{"picked_up to delivered", OrderPickedUp, OrderDelivered, true},
		{"placed to cancelled", OrderPlaced, OrderCancelled, true},
		{"accepted to cancelled", OrderAccepted, OrderCancelled, true},
		{"no skipping forward", OrderPlaced, OrderPreparing, false},
		{"no jumping to delivered", OrderPlaced, OrderDelivered, false},
		{"no moving backward", OrderReady, OrderAccepted, false},
		{"preparing cannot cancel", OrderPreparing, OrderCancelled, false},
		{"ready cannot cancel", OrderReady, OrderCancelled, false},
		{"delivered is terminal", OrderDelivered, OrderCancelled, false},
		{"cancelled is terminal", OrderCancelled, OrderAccepted, false},
		{"no self transition", OrderAccepted, OrderAccepted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_Next(t *testing.T) {
	assert.Equal(t, OrderAccepted, OrderPlaced.Next())
	assert.Equal(t, OrderDelivered, OrderPickedUp.Next())
	assert.Empty(t, OrderDelivered.Next())
	assert.Empty(t, OrderCancelled.Next())
	assert.Empty(t, OrderStatus("bogus").Next())
}

func TestOrderStatus_SellerAdvanceable(t *testing.T) {
	assert.True(t, OrderPlaced.SellerAdvanceable())
	assert.True(t, OrderAccepted.SellerAdvanceable())
	assert.True(t, OrderPreparing.SellerAdvanceable())

	// From ready onward the driver owns the lifecycle.
	assert.False(t, OrderReady.SellerAdvanceable())
	assert.False(t, OrderAssigned.SellerAdvanceable())
	assert.False(t, OrderDelivered.SellerAdvanceable())
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, OrderDelivered.Terminal())
	assert.True(t, OrderCancelled.Terminal())
	assert.False(t, OrderPlaced.Terminal())
	assert.False(t, OrderPickedUp.Terminal())
}

func TestOrderStatus_IsValid(t *testing.T) {
	for _, s := range []OrderStatus{OrderPlaced, OrderAccepted, OrderPreparing, OrderReady, OrderAssigned, OrderPickedUp, OrderDelivered, OrderCancelled} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, OrderStatus("shipped").IsValid())
}

func TestOrder_Totals(t *testing.T) {
	item := &OrderItem{
		Quantity:  3,
		UnitPrice: decimal.RequireFromString("2.50"),
	}
	require.True(t, item.Subtotal().Equal(decimal.RequireFromString("7.50")))

	order := &Order{
		TotalAmount: decimal.RequireFromString("7.50"),
		DeliveryFee: decimal.RequireFromString("1.50"),
	}
	require.True(t, order.GrandTotal().Equal(decimal.RequireFromString("9.00")))
}
