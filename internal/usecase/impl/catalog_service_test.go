package impl

import (
	"context"
	"testing"

	"jordanmarket/internal/domain/entity"
	domainerrors "jordanmarket/internal/domain/errors"
	"jordanmarket/internal/domain/repository"
	"jordanmarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogFixture(seller *entity.User) (*catalogService, *fakeProductRepo) {
	productRepo := &fakeProductRepo{}
	userRepo := &fakeUserRepo{
		findByIDFn: func(_ context.Context, _ uuid.UUID) (*entity.User, error) {
			if seller == nil {
				return nil, repository.ErrUserNotFound
			}

			return seller, nil
		},
	}

	return &catalogService{
		productRepo: productRepo,
		userRepo:    userRepo,
		logger:      testLogger(),
	}, productRepo
}

func verifiedSeller() *entity.User {
	return &entity.User{
		ID:            uuid.New(),
		SellerProfile: &entity.SellerProfile{IsVerified: true},
	}
}

func TestCatalogService_CreateProduct(t *testing.T) {
	seller := verifiedSeller()
	srv, productRepo := newCatalogFixture(seller)

	productRepo.createFn = func(_ context.Context, product *entity.Product) error {
		product.ID = uuid.New()

		return nil
	}

	product, err := srv.CreateProduct(context.Background(), seller.ID, &usecase.CreateProductInput{
		Name:  "Za'atar manakish",
		Price: decimal.RequireFromString("1.25"),
		Stock: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, seller.ID, product.SellerID)
	assert.True(t, product.IsActive)
}

func TestCatalogService_CreateProduct_UnverifiedSeller(t *testing.T) {
	seller := verifiedSeller()
	seller.SellerProfile.IsVerified = false
	srv, _ := newCatalogFixture(seller)

	_, err := srv.CreateProduct(context.Background(), seller.ID, &usecase.CreateProductInput{
		Name:  "Knafeh slice",
		Price: decimal.RequireFromString("2.00"),
	})
	assert.ErrorIs(t, err, domainerrors.ErrSellerNotVerified)
}

func TestCatalogService_CreateProduct_NoSellerProfile(t *testing.T) {
	buyer := &entity.User{ID: uuid.New()}
	srv, _ := newCatalogFixture(buyer)

	_, err := srv.CreateProduct(context.Background(), buyer.ID, &usecase.CreateProductInput{
		Name:  "Knafeh slice",
		Price: decimal.RequireFromString("2.00"),
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestCatalogService_CreateProduct_RejectsBadValues(t *testing.T) {
	seller := verifiedSeller()
	srv, _ := newCatalogFixture(seller)

	_, err := srv.CreateProduct(context.Background(), seller.ID, &usecase.CreateProductInput{
		Price: decimal.RequireFromString("1.00"),
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	_, err = srv.CreateProduct(context.Background(), seller.ID, &usecase.CreateProductInput{
		Name:  "Free lunch",
		Price: decimal.Zero,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	_, err = srv.CreateProduct(context.Background(), seller.ID, &usecase.CreateProductInput{
		Name:  "Anti-stock",
		Price: decimal.RequireFromString("1.00"),
		Stock: -1,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestCatalogService_UpdateProduct_PartialFields(t *testing.T) {
	seller := verifiedSeller()
	srv, productRepo := newCatalogFixture(seller)

	productID := uuid.New()
	productRepo.findByIDFn = func(_ context.Context, _ uuid.UUID) (*entity.Product, error) {
		return &entity.Product{
			ID:       productID,
			SellerID: seller.ID,
			Name:     "Mansaf tray",
			Price:    decimal.RequireFromString("12.00"),
			Stock:    5,
		}, nil
	}
	var saved *entity.Product
	productRepo.updateFn = func(_ context.Context, product *entity.Product) error {
		saved = product

		return nil
	}

	newStock := 8
	_, err := srv.UpdateProduct(context.Background(), seller.ID, productID, &usecase.UpdateProductInput{
		Stock: &newStock,
	})
	require.NoError(t, err)
	assert.Equal(t, 8, saved.Stock)
	// Untouched fields keep their values.
	assert.Equal(t, "Mansaf tray", saved.Name)
	assert.True(t, saved.Price.Equal(decimal.RequireFromString("12.00")))
}

func TestCatalogService_UpdateProduct_ForeignProductReadsAsNotFound(t *testing.T) {
	seller := verifiedSeller()
	srv, productRepo := newCatalogFixture(seller)

	productRepo.findByIDFn = func(_ context.Context, id uuid.UUID) (*entity.Product, error) {
		return &entity.Product{ID: id, SellerID: uuid.New()}, nil
	}

	name := "Hijacked"
	_, err := srv.UpdateProduct(context.Background(), seller.ID, uuid.New(), &usecase.UpdateProductInput{Name: &name})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCatalogService_SetProductActive(t *testing.T) {
	seller := verifiedSeller()
	srv, productRepo := newCatalogFixture(seller)

	productRepo.setActiveFn = func(_ context.Context, _, _ uuid.UUID, active bool) error {
		assert.False(t, active)

		return nil
	}
	require.NoError(t, srv.SetProductActive(context.Background(), seller.ID, uuid.New(), false))

	productRepo.setActiveFn = func(_ context.Context, _, _ uuid.UUID, _ bool) error {
		return repository.ErrProductNotFound
	}
	err := srv.SetProductActive(context.Background(), seller.ID, uuid.New(), true)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCatalogService_ListActiveProducts_NormalizesPage(t *testing.T) {
	srv, productRepo := newCatalogFixture(nil)

	productRepo.listActiveFn = func(_ context.Context, limit, offset int) ([]*entity.Product, error) {
		assert.Equal(t, 20, limit)
		assert.Equal(t, 0, offset)

		return []*entity.Product{}, nil
	}

	_, err := srv.ListActiveProducts(context.Background(), usecase.Page{Limit: -3, Offset: -9})
	require.NoError(t, err)
}
