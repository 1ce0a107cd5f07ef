package usecase

import (
	"context"

	"jordanmarket/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductInput defines the data required to list a new product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
}

// UpdateProductInput defines the mutable fields of a product.
// Nil pointers leave the current value untouched.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
}

// CatalogUsecase defines the interface for product catalog operations.
// Seller-side mutations require a verified seller capability.
type CatalogUsecase interface {
	CreateProduct(ctx context.Context, sellerID uuid.UUID, input *CreateProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, sellerID, productID uuid.UUID, input *UpdateProductInput) (*entity.Product, error)

	// SetProductActive flips visibility. Products referenced by order items are
	// deactivated this way, never deleted.
	SetProductActive(ctx context.Context, sellerID, productID uuid.UUID, active bool) error

	GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error)
	ListActiveProducts(ctx context.Context, page Page) ([]*entity.Product, error)
	ListSellerProducts(ctx context.Context, sellerID uuid.UUID, includeInactive bool) ([]*entity.Product, error)
}
