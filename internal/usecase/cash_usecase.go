package usecase

import (
	"context"

	"jordanmarket/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashUsecase defines the interface for the cash-on-delivery reconciliation
// ledger: pending with the driver, collected at the door, confirmed at the
// counting desk.
type CashUsecase interface {
	ListMyCollections(ctx context.Context, driverID uuid.UUID, page Page) ([]*entity.CashCollection, error)

	// MarkCollected records the amount the owning driver physically holds.
	MarkCollected(ctx context.Context, driverID, collectionID uuid.UUID, amount decimal.Decimal) (*entity.CashCollection, error)

	// ConfirmReceipt is the admin acknowledging the handed-over cash. It also
	// settles the order: the seller's wallet is credited with the order total
	// and the driver's with the delivery fee. Confirming a collection that is
	// not in the collected state fails and changes nothing.
	ConfirmReceipt(ctx context.Context, adminID, collectionID uuid.UUID) (*entity.CashCollection, error)

	ListByStatus(ctx context.Context, status entity.CashStatus, page Page) ([]*entity.CashCollection, error)

	// Summary aggregates outstanding cash per reconciliation state.
	Summary(ctx context.Context) (*entity.CashSummary, error)
}
