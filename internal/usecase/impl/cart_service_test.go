package impl

import (
	"context"
	"testing"

	"jordanmarket/internal/cart"
	"jordanmarket/internal/domain/entity"
	domainerrors "jordanmarket/internal/domain/errors"
	"jordanmarket/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartFixture() (*cartService, *fakeProductRepo) {
	productRepo := &fakeProductRepo{}

	return &cartService{
		store:       cart.NewStore(),
		productRepo: productRepo,
		logger:      testLogger(),
	}, productRepo
}

func TestCartService_AddToCart(t *testing.T) {
	srv, productRepo := newCartFixture()
	userID := uuid.New()
	sellerID := uuid.New()

	productRepo.findByIDFn = func(_ context.Context, id uuid.UUID) (*entity.Product, error) {
		return &entity.Product{
			ID:       id,
			SellerID: sellerID,
			Name:     "Shawarma plate",
			Price:    decimal.RequireFromString("3.50"),
			Stock:    10,
			IsActive: true,
		}, nil
	}

	updated, err := srv.AddToCart(context.Background(), userID, uuid.New(), 2)
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, sellerID, updated.SellerID)
	assert.True(t, updated.Total().Equal(decimal.RequireFromString("7.00")))
}

func TestCartService_AddToCart_SellerMismatch(t *testing.T) {
	srv, productRepo := newCartFixture()
	userID := uuid.New()

	productRepo.findByIDFn = func(_ context.Context, id uuid.UUID) (*entity.Product, error) {
		// A fresh seller per product forces the mismatch on the second add.
		return &entity.Product{
			ID:       id,
			SellerID: uuid.New(),
			Price:    decimal.RequireFromString("1.00"),
			Stock:    10,
			IsActive: true,
		}, nil
	}

	_, err := srv.AddToCart(context.Background(), userID, uuid.New(), 1)
	require.NoError(t, err)

	_, err = srv.AddToCart(context.Background(), userID, uuid.New(), 1)
	assert.ErrorIs(t, err, domainerrors.ErrCartSellerMismatch)
}

func TestCartService_AddToCart_InactiveProductHidden(t *testing.T) {
	srv, productRepo := newCartFixture()

	productRepo.findByIDFn = func(_ context.Context, id uuid.UUID) (*entity.Product, error) {
		return &entity.Product{ID: id, Stock: 10}, nil
	}

	_, err := srv.AddToCart(context.Background(), uuid.New(), uuid.New(), 1)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCartService_AddToCart_StockAndQuantity(t *testing.T) {
	srv, productRepo := newCartFixture()

	productRepo.findByIDFn = func(_ context.Context, id uuid.UUID) (*entity.Product, error) {
		return &entity.Product{ID: id, Stock: 3, IsActive: true, Price: decimal.RequireFromString("1.00")}, nil
	}

	_, err := srv.AddToCart(context.Background(), uuid.New(), uuid.New(), 4)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)

	_, err = srv.AddToCart(context.Background(), uuid.New(), uuid.New(), 0)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestCartService_AddToCart_UnknownProduct(t *testing.T) {
	srv, productRepo := newCartFixture()

	productRepo.findByIDFn = func(_ context.Context, _ uuid.UUID) (*entity.Product, error) {
		return nil, repository.ErrProductNotFound
	}

	_, err := srv.AddToCart(context.Background(), uuid.New(), uuid.New(), 1)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCartService_UpdateCartItem(t *testing.T) {
	srv, productRepo := newCartFixture()
	userID := uuid.New()
	productID := uuid.New()

	productRepo.findByIDFn = func(_ context.Context, id uuid.UUID) (*entity.Product, error) {
		return &entity.Product{
			ID:       productID,
			SellerID: uuid.New(),
			Price:    decimal.RequireFromString("2.00"),
			Stock:    10,
			IsActive: true,
		}, nil
	}
	_, err := srv.AddToCart(context.Background(), userID, productID, 1)
	require.NoError(t, err)

	updated, err := srv.UpdateCartItem(context.Background(), userID, productID, 5)
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 5, updated.Items[0].Quantity)

	// Zero removes the line.
	updated, err = srv.UpdateCartItem(context.Background(), userID, productID, 0)
	require.NoError(t, err)
	assert.True(t, updated.Empty())

	_, err = srv.UpdateCartItem(context.Background(), userID, uuid.New(), 2)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCartService_ClearCart(t *testing.T) {
	srv, productRepo := newCartFixture()
	userID := uuid.New()

	productRepo.findByIDFn = func(_ context.Context, id uuid.UUID) (*entity.Product, error) {
		return &entity.Product{ID: id, SellerID: uuid.New(), Price: decimal.RequireFromString("1.00"), Stock: 5, IsActive: true}, nil
	}
	_, err := srv.AddToCart(context.Background(), userID, uuid.New(), 1)
	require.NoError(t, err)

	require.NoError(t, srv.ClearCart(context.Background(), userID))

	current, err := srv.GetCart(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, current.Empty())
}
