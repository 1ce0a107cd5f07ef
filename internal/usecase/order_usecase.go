package usecase

import (
	"context"

	"jordanmarket/internal/domain/entity"

	"github.com/google/uuid"
)

// CheckoutInput defines the data required to turn the cart into an order.
type CheckoutInput struct {
	DeliveryAddress string
}

// OrderUsecase defines the interface for the order lifecycle.
type OrderUsecase interface {
	// Checkout turns the buyer's cart into a placed order in one transaction:
	// order + items with unit-price snapshots + companion delivery task, with
	// guarded stock decrements. Any failure rolls the whole thing back and
	// leaves the cart untouched.
	Checkout(ctx context.Context, buyerID uuid.UUID, input *CheckoutInput) (*entity.Order, error)

	// GetOrder returns an order visible to the actor (its buyer, its seller,
	// or an admin).
	GetOrder(ctx context.Context, actorID, orderID uuid.UUID) (*entity.Order, error)

	ListBuyerOrders(ctx context.Context, buyerID uuid.UUID, page Page) ([]*entity.Order, error)
	ListSellerOrders(ctx context.Context, sellerID uuid.UUID, page Page) ([]*entity.Order, error)

	// AdvanceOrder moves the order to the exact next status on the chain.
	// Only the owning seller may advance, and only through placed -> accepted
	// -> preparing -> ready; later statuses belong to the delivery flow.
	AdvanceOrder(ctx context.Context, sellerID, orderID uuid.UUID, next entity.OrderStatus) (*entity.Order, error)

	// CancelOrder cancels while still placed or accepted. The buyer or the
	// owning seller may cancel; the companion delivery is cancelled with it.
	CancelOrder(ctx context.Context, actorID, orderID uuid.UUID) (*entity.Order, error)
}
