package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order. Transitions are forward-only
// along a fixed chain; cancellation is reachable only before preparation starts.
type OrderStatus string

const (
	OrderPlaced    OrderStatus = "placed"
	OrderAccepted  OrderStatus = "accepted"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderAssigned  OrderStatus = "assigned"
	OrderPickedUp  OrderStatus = "picked_up"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// orderChain defines the only forward path an order may take.
var orderChain = []OrderStatus{
	OrderPlaced,
	OrderAccepted,
	OrderPreparing,
	OrderReady,
	OrderAssigned,
	OrderPickedUp,
	OrderDelivered,
}

// String returns the string representation of the status.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a known value.
func (s OrderStatus) IsValid() bool {
	if s == OrderCancelled {
		return true
	}
	for _, st := range orderChain {
		if s == st {
			return true
		}
	}

	return false
}

// Next returns the immediate successor in the forward chain, or empty when the
// status is terminal or off-chain.
func (s OrderStatus) Next() OrderStatus {
	for i, st := range orderChain {
		if s == st && i+1 < len(orderChain) {
			return orderChain[i+1]
		}
	}

	return ""
}

// CanTransitionTo reports whether moving from s to next is a legal edge.
// Cancellation is permitted only from placed or accepted.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if next == OrderCancelled {
		return s.Cancellable()
	}

	return s.Next() == next
}

// Cancellable reports whether an order in this status may still be cancelled.
func (s OrderStatus) Cancellable() bool {
	return s == OrderPlaced || s == OrderAccepted
}

// Terminal reports whether the status ends the order lifecycle.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// SellerAdvanceable reports whether the owning seller may move the order out of
// this status. The seller drives placed through ready; the assigned driver owns
// everything after that.
func (s OrderStatus) SellerAdvanceable() bool {
	switch s {
	case OrderPlaced, OrderAccepted, OrderPreparing:
		return true
	default:
		return false
	}
}

// Order is a buyer's purchase from a single seller. SellerID is fixed at
// creation; TotalAmount and DeliveryFee carry decimal money values.
type Order struct {
	ID              uuid.UUID
	BuyerID         uuid.UUID
	SellerID        uuid.UUID
	Status          OrderStatus
	TotalAmount     decimal.Decimal
	DeliveryFee     decimal.Decimal
	DeliveryAddress string
	Items           []*OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem is a line item created atomically with its order.
// UnitPrice is a snapshot of the product price at order time and never changes.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal returns quantity times the snapshotted unit price.
func (it *OrderItem) Subtotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// GrandTotal returns the order total including the delivery fee.
func (o *Order) GrandTotal() decimal.Decimal {
	return o.TotalAmount.Add(o.DeliveryFee)
}
