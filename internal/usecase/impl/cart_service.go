package impl

import (
	"context"
	"log/slog"

	"jordanmarket/internal/cart"
	deliverycontext "jordanmarket/internal/delivery/context"
	domainerrors "jordanmarket/internal/domain/errors"
	"jordanmarket/internal/domain/repository"
	"jordanmarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface on top of the in-memory
// cart store. Product facts are validated against the catalog on every add;
// checkout revalidates them again.
type cartService struct {
	store       *cart.Store
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for cartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	Store       *cart.Store
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		store:       params.Store,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetCart returns the user's current cart snapshot.
func (srv *cartService) GetCart(_ context.Context, userID uuid.UUID) (*cart.Cart, error) {
	return srv.store.Get(userID), nil
}

// AddToCart validates the product and appends or merges the line.
func (srv *cartService) AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*cart.Cart, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("product not found")
		}

		return nil, errors.Wrap(err, "failed to load product for cart")
	}
	if !product.IsActive {
		return nil, domainerrors.ErrNotFound.WrapMessage("product not found")
	}
	if !product.Available(quantity) {
		if quantity <= 0 {
			return nil, domainerrors.ErrInvalidInput.WrapMessage("quantity must be positive")
		}

		return nil, domainerrors.ErrInsufficientStock
	}

	updated, err := srv.store.AddItem(userID, product.SellerID, cart.Item{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  quantity,
	})
	if err != nil {
		return nil, mapCartError(err)
	}

	srv.log(ctx).Debug("Cart item added",
		slog.Any("userID", userID),
		slog.Any("productID", productID),
		slog.Int("quantity", quantity),
	)

	return updated, nil
}

// UpdateCartItem replaces a line's quantity; zero removes the line.
func (srv *cartService) UpdateCartItem(_ context.Context, userID, productID uuid.UUID, quantity int) (*cart.Cart, error) {
	updated, err := srv.store.SetQuantity(userID, productID, quantity)
	if err != nil {
		return nil, mapCartError(err)
	}

	return updated, nil
}

// ClearCart drops the user's cart.
func (srv *cartService) ClearCart(_ context.Context, userID uuid.UUID) error {
	srv.store.Clear(userID)

	return nil
}

func mapCartError(err error) error {
	switch {
	case errors.Is(err, cart.ErrSellerMismatch):
		return domainerrors.ErrCartSellerMismatch
	case errors.Is(err, cart.ErrItemNotFound):
		return domainerrors.ErrNotFound.WrapMessage("item not in cart")
	case errors.Is(err, cart.ErrInvalidQuantity):
		return domainerrors.ErrInvalidInput.WrapMessage("quantity must be positive")
	default:
		return err
	}
}
