package repository

import (
	"context"
	"errors"
	"time"

	"jordanmarket/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrCashCollectionNotFound is returned when a cash collection is not found.
var ErrCashCollectionNotFound = errors.New("cash collection not found")

// CashCollectionRepository defines the interface for the COD reconciliation ledger.
type CashCollectionRepository interface {
	// Create persists a new pending cash collection.
	Create(ctx context.Context, collection *entity.CashCollection) error

	// FindByID retrieves a collection by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CashCollection, error)

	// FindByOrderID retrieves the collection attached to an order.
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.CashCollection, error)

	// ListByDriver returns a driver's collections, newest first.
	ListByDriver(ctx context.Context, driverID uuid.UUID, limit, offset int) ([]*entity.CashCollection, error)

	// ListByStatus returns collections in one reconciliation state for admin review.
	ListByStatus(ctx context.Context, status entity.CashStatus, limit, offset int) ([]*entity.CashCollection, error)

	// MarkCollected advances pending -> collected for the owning driver and
	// records the collected amount. Returns ErrStaleStatus when the collection
	// is not pending or is owned by another driver.
	MarkCollected(ctx context.Context, id, driverID uuid.UUID, amount decimal.Decimal, at time.Time) error

	// Confirm advances collected -> confirmed and stamps the confirming admin.
	// Returns ErrStaleStatus when the collection is not in the collected state.
	Confirm(ctx context.Context, id, adminID uuid.UUID, at time.Time) error

	// Summary aggregates expected/collected amounts per reconciliation state.
	Summary(ctx context.Context) (*entity.CashSummary, error)
}
