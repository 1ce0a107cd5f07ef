package usecase

import (
	"context"

	"jordanmarket/internal/cart"

	"github.com/google/uuid"
)

// CartUsecase defines the interface for cart operations. The cart is
// in-memory per user; checkout re-validates everything, so these operations
// only keep the scratch state consistent.
type CartUsecase interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*cart.Cart, error)

	// AddToCart validates the product (active, in stock, same seller as the
	// rest of the cart) and appends or merges the line.
	AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*cart.Cart, error)

	// UpdateCartItem replaces a line's quantity; zero removes the line.
	UpdateCartItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*cart.Cart, error)

	ClearCart(ctx context.Context, userID uuid.UUID) error
}
