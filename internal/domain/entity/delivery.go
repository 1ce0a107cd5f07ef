package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryStatus is the lifecycle state of a delivery task.
type DeliveryStatus string

const (
	DeliveryAvailable DeliveryStatus = "available"
	DeliveryAssigned  DeliveryStatus = "assigned"
	DeliveryPickedUp  DeliveryStatus = "picked_up"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryCancelled DeliveryStatus = "cancelled"
)

// String returns the string representation of the status.
func (s DeliveryStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether moving from s to next is a legal edge.
// Cancellation is possible only before pickup.
func (s DeliveryStatus) CanTransitionTo(next DeliveryStatus) bool {
	switch next {
	case DeliveryAssigned:
		return s == DeliveryAvailable
	case DeliveryPickedUp:
		return s == DeliveryAssigned
	case DeliveryDelivered:
		return s == DeliveryPickedUp
	case DeliveryCancelled:
		return s == DeliveryAvailable || s == DeliveryAssigned
	default:
		return false
	}
}

// Delivery is the companion logistics task of an order (1:1).
// DriverID is set exactly once: the first successful accept wins and later
// accepts fail against the conditional assignment.
type Delivery struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	DriverID      *uuid.UUID
	Status        DeliveryStatus
	PickupAddress string
	DropAddress   string
	CashCollected decimal.Decimal
	AssignedAt    *time.Time
	PickedUpAt    *time.Time
	DeliveredAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OwnedBy reports whether the delivery is assigned to the given driver.
func (d *Delivery) OwnedBy(driverID uuid.UUID) bool {
	return d.DriverID != nil && *d.DriverID == driverID
}
