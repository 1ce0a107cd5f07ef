package repository

import (
	"context"
	"errors"

	"jordanmarket/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for product persistence.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrStockInsufficient is returned when a conditional stock decrement
	// matched no row, i.e. the remaining stock cannot cover the quantity.
	ErrStockInsufficient = errors.New("insufficient stock")
)

// ProductRepository defines the interface for product persistence.
type ProductRepository interface {
	// FindByID retrieves a product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// ListActive returns active products for the public storefront.
	ListActive(ctx context.Context, limit, offset int) ([]*entity.Product, error)

	// ListBySeller returns a seller's products, optionally including inactive ones.
	ListBySeller(ctx context.Context, sellerID uuid.UUID, includeInactive bool) ([]*entity.Product, error)

	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// DecrementStock atomically decrements stock by quantity, guarded by
	// stock >= quantity. Returns ErrStockInsufficient when no row matched.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error

	// SetActive flips the is_active flag. Products are never hard-deleted
	// once referenced by an order item.
	SetActive(ctx context.Context, id uuid.UUID, sellerID uuid.UUID, active bool) error
}
