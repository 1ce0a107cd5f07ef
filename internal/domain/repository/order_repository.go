package repository

import (
	"context"
	"errors"

	"jordanmarket/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for order persistence.
var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrStaleStatus is returned when a conditional status update matched no
	// row: the record moved out of the expected state before the update ran.
	ErrStaleStatus = errors.New("record not in expected status")
)

// OrderRepository defines the interface for order persistence.
type OrderRepository interface {
	// Create persists a new order together with its line items.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order with its items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// ListByBuyer returns a buyer's orders, newest first.
	ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]*entity.Order, error)

	// ListBySeller returns a seller's incoming orders, newest first.
	ListBySeller(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]*entity.Order, error)

	// UpdateStatus moves an order from the expected current status to the next
	// one with a single conditional update. Returns ErrStaleStatus when the
	// order was not in the expected status.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) error
}
