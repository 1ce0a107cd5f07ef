package usecase

import (
	"context"

	"jordanmarket/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryUsecase defines the interface for the driver-facing delivery flow.
// Every operation requires a verified driver capability.
type DeliveryUsecase interface {
	ListAvailableDeliveries(ctx context.Context, driverID uuid.UUID, page Page) ([]*entity.Delivery, error)
	ListMyDeliveries(ctx context.Context, driverID uuid.UUID, page Page) ([]*entity.Delivery, error)

	// AcceptDelivery claims an available delivery. The claim is one conditional
	// update, so of N concurrent accepts exactly one driver wins; the rest get
	// an invalid-state error. A win mirrors the order to assigned and opens the
	// pending cash collection.
	AcceptDelivery(ctx context.Context, driverID, deliveryID uuid.UUID) (*entity.Delivery, error)

	// MarkPickedUp stamps pickup for the owning driver and mirrors the order.
	MarkPickedUp(ctx context.Context, driverID, deliveryID uuid.UUID) (*entity.Delivery, error)

	// CompleteDelivery stamps completion, records the cash taken at the door,
	// marks the cash collection as collected, and mirrors the order to delivered.
	CompleteDelivery(ctx context.Context, driverID, deliveryID uuid.UUID, cashCollected decimal.Decimal) (*entity.Delivery, error)
}
