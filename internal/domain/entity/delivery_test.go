package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDeliveryStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    DeliveryStatus
		to      DeliveryStatus
		allowed bool
	}{
		{"available to assigned", DeliveryAvailable, DeliveryAssigned, true},
		{"assigned to picked_up", DeliveryAssigned, DeliveryPickedUp, true},
		{"picked_up to delivered", DeliveryPickedUp, DeliveryDelivered, true},
		{"available to cancelled", DeliveryAvailable, DeliveryCancelled, true},
		{"assigned to cancelled", DeliveryAssigned, DeliveryCancelled, true},
		{"no skipping to picked_up", DeliveryAvailable, DeliveryPickedUp, false},
		{"no skipping to delivered", DeliveryAssigned, DeliveryDelivered, false},
		{"picked_up cannot cancel", DeliveryPickedUp, DeliveryCancelled, false},
		{"delivered is terminal", DeliveryDelivered, DeliveryCancelled, false},
		{"no backward moves", DeliveryPickedUp, DeliveryAssigned, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestDelivery_OwnedBy(t *testing.T) {
	driverID := uuid.New()

	unassigned := &Delivery{}
	assert.False(t, unassigned.OwnedBy(driverID))

	assigned := &Delivery{DriverID: &driverID}
	assert.True(t, assigned.OwnedBy(driverID))
	assert.False(t, assigned.OwnedBy(uuid.New()))
}
