package repository

import (
	"context"
	"errors"
	"time"

	"jordanmarket/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Domain-specific errors for delivery persistence.
var (
	// ErrDeliveryNotFound is returned when a delivery is not found.
	ErrDeliveryNotFound = errors.New("delivery not found")
	// ErrAlreadyAssigned is returned when a conditional assignment matched no
	// row: another driver accepted first, or the delivery left the available state.
	ErrAlreadyAssigned = errors.New("delivery already assigned")
)

// DeliveryRepository defines the interface for delivery-task persistence.
type DeliveryRepository interface {
	// Create persists a new delivery task (status available).
	Create(ctx context.Context, delivery *entity.Delivery) error

	// FindByID retrieves a delivery by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Delivery, error)

	// FindByOrderID retrieves the companion delivery of an order.
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Delivery, error)

	// ListAvailable returns unassigned deliveries for the driver board.
	ListAvailable(ctx context.Context, limit, offset int) ([]*entity.Delivery, error)

	// ListByDriver returns a driver's deliveries, newest first.
	ListByDriver(ctx context.Context, driverID uuid.UUID, limit, offset int) ([]*entity.Delivery, error)

	// Assign sets the driver with a single conditional update guarded by
	// status = available AND driver unset. The first accept wins; later
	// attempts get ErrAlreadyAssigned.
	Assign(ctx context.Context, id, driverID uuid.UUID, at time.Time) error

	// MarkPickedUp advances assigned -> picked_up for the owning driver.
	// Returns ErrStaleStatus on an ownership or state mismatch.
	MarkPickedUp(ctx context.Context, id, driverID uuid.UUID, at time.Time) error

	// MarkDelivered advances picked_up -> delivered for the owning driver and
	// records the cash taken at the door.
	MarkDelivered(ctx context.Context, id, driverID uuid.UUID, at time.Time, cashCollected decimal.Decimal) error

	// Cancel moves an unstarted delivery (available or assigned) to cancelled.
	Cancel(ctx context.Context, id uuid.UUID) error
}
