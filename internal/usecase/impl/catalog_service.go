package impl

import (
	"context"
	"log/slog"

	deliverycontext "jordanmarket/internal/delivery/context"
	"jordanmarket/internal/domain/entity"
	domainerrors "jordanmarket/internal/domain/errors"
	"jordanmarket/internal/domain/repository"
	"jordanmarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	logger      *slog.Logger
}

// CatalogServiceParams holds dependencies for catalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	UserRepo    repository.UserRepository
	Logger      *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		productRepo: params.ProductRepo,
		userRepo:    params.UserRepo,
		logger:      params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// requireVerifiedSeller loads the account and checks the seller capability.
// A missing profile reads as forbidden; an unverified one points at onboarding.
func (srv *catalogService) requireVerifiedSeller(ctx context.Context, sellerID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load seller account")
	}

	if user.SellerProfile == nil {
		return nil, domainerrors.ErrForbidden.WrapMessage("seller capability required")
	}
	if !user.CanSell() {
		return nil, domainerrors.ErrSellerNotVerified
	}

	return user, nil
}

// CreateProduct lists a new product for a verified seller.
func (srv *catalogService) CreateProduct(ctx context.Context, sellerID uuid.UUID, input *usecase.CreateProductInput) (*entity.Product, error) {
	if _, err := srv.requireVerifiedSeller(ctx, sellerID); err != nil {
		return nil, err
	}

	if input.Name == "" {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("product name is required")
	}
	if input.Price.LessThanOrEqual(decimal.Zero) {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("price must be positive")
	}
	if input.Stock < 0 {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("stock cannot be negative")
	}

	product := &entity.Product{
		SellerID:    sellerID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		IsActive:    true,
	}
	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Product created", slog.Any("productID", product.ID), slog.Any("sellerID", sellerID))

	return product, nil
}

// UpdateProduct mutates a product owned by the seller. Nil fields are kept.
// Order items snapshot the unit price at checkout, so price changes here never
// touch historical orders.
func (srv *catalogService) UpdateProduct(ctx context.Context, sellerID, productID uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	if _, err := srv.requireVerifiedSeller(ctx, sellerID); err != nil {
		return nil, err
	}

	product, err := srv.findOwnedProduct(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, domainerrors.ErrInvalidInput.WrapMessage("product name cannot be empty")
		}
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if input.Price.LessThanOrEqual(decimal.Zero) {
			return nil, domainerrors.ErrInvalidInput.WrapMessage("price must be positive")
		}
		product.Price = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, domainerrors.ErrInvalidInput.WrapMessage("stock cannot be negative")
		}
		product.Stock = *input.Stock
	}

	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// SetProductActive flips storefront visibility for a product owned by the seller.
func (srv *catalogService) SetProductActive(ctx context.Context, sellerID, productID uuid.UUID, active bool) error {
	if _, err := srv.requireVerifiedSeller(ctx, sellerID); err != nil {
		return err
	}

	if err := srv.productRepo.SetActive(ctx, productID, sellerID, active); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("product not found")
		}

		return err
	}

	srv.log(ctx).Info("Product visibility changed",
		slog.Any("productID", productID),
		slog.Bool("active", active),
	)

	return nil
}

// GetProduct returns one product.
func (srv *catalogService) GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("product not found")
		}

		return nil, errors.Wrap(err, "failed to load product")
	}

	return product, nil
}

// ListActiveProducts returns the public storefront page.
func (srv *catalogService) ListActiveProducts(ctx context.Context, page usecase.Page) ([]*entity.Product, error) {
	page = page.Normalize()

	return srv.productRepo.ListActive(ctx, page.Limit, page.Offset)
}

// ListSellerProducts returns a seller's own products.
func (srv *catalogService) ListSellerProducts(ctx context.Context, sellerID uuid.UUID, includeInactive bool) ([]*entity.Product, error) {
	return srv.productRepo.ListBySeller(ctx, sellerID, includeInactive)
}

func (srv *catalogService) findOwnedProduct(ctx context.Context, sellerID, productID uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("product not found")
		}

		return nil, errors.Wrap(err, "failed to load product")
	}
	// Ownership mismatches read as not found so sellers cannot probe each
	// other's catalogs.
	if product.SellerID != sellerID {
		return nil, domainerrors.ErrNotFound.WrapMessage("product not found")
	}

	return product, nil
}
