package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"jordanmarket/internal/domain/entity"
	domainerrors "jordanmarket/internal/domain/errors"
	"jordanmarket/internal/domain/repository"
	"jordanmarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type walletFixture struct {
	srv       *walletService
	factory   *fakeRepoFactory
	publisher *fakePublisher
}

func newWalletFixture(actor *entity.User) *walletFixture {
	factory := &fakeRepoFactory{
		userRepo: &fakeUserRepo{
			findByIDFn: func(_ context.Context, _ uuid.UUID) (*entity.User, error) {
				return actor, nil
			},
		},
		walletRepo:    &fakeWalletRepo{},
		topupCodeRepo: &fakeTopupCodeRepo{},
	}
	publisher := &fakePublisher{}

	return &walletFixture{
		srv: &walletService{
			txManager:  &fakeTxManager{factory: factory},
			walletRepo: factory.walletRepo,
			topupRepo:  factory.topupCodeRepo,
			userRepo:   factory.userRepo,
			qrService:  &fakeQRService{png: []byte("png")},
			publisher:  publisher,
			codeLength: defaultCodeLength,
			logger:     testLogger(),
		},
		factory:   factory,
		publisher: publisher,
	}
}

func TestWalletService_GetBalance_NoWalletRowIsZero(t *testing.T) {
	fix := newWalletFixture(nil)

	fix.factory.walletRepo.findByOwnerFn = func(_ context.Context, _ uuid.UUID) (*entity.Wallet, error) {
		return nil, repository.ErrWalletNotFound
	}

	balance, err := fix.srv.GetBalance(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestWalletService_ListTransactions_NoWalletRow(t *testing.T) {
	fix := newWalletFixture(nil)

	fix.factory.walletRepo.findByOwnerFn = func(_ context.Context, _ uuid.UUID) (*entity.Wallet, error) {
		return nil, repository.ErrWalletNotFound
	}

	movements, err := fix.srv.ListTransactions(context.Background(), uuid.New(), usecase.Page{})
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestWalletService_RedeemCode(t *testing.T) {
	fix := newWalletFixture(nil)
	ownerID := uuid.New()
	codeID := uuid.New()
	walletID := uuid.New()
	amount := decimal.RequireFromString("25.00")

	fix.factory.topupCodeRepo.redeemFn = func(_ context.Context, code string, userID uuid.UUID, _ time.Time) (*entity.TopupCode, error) {
		assert.Equal(t, "QANZ123456", code)
		assert.Equal(t, ownerID, userID)

		return &entity.TopupCode{ID: codeID, Code: code, Amount: amount}, nil
	}
	fix.factory.walletRepo.findByOwnerFn = func(_ context.Context, _ uuid.UUID) (*entity.Wallet, error) {
		return &entity.Wallet{ID: walletID, OwnerID: ownerID, Balance: decimal.RequireFromString("5.00")}, nil
	}
	fix.factory.walletRepo.addToBalanceFn = func(_ context.Context, id uuid.UUID, got decimal.Decimal) error {
		assert.Equal(t, walletID, id)
		assert.True(t, got.Equal(amount))

		return nil
	}
	var movement *entity.WalletTransaction
	fix.factory.walletRepo.createTransactionFn = func(_ context.Context, tx *entity.WalletTransaction) error {
		movement = tx

		return nil
	}

	out, err := fix.srv.RedeemCode(context.Background(), ownerID, "QANZ123456")
	require.NoError(t, err)
	assert.True(t, out.Amount.Equal(amount))
	assert.True(t, out.Balance.Equal(decimal.RequireFromString("30.00")))

	require.NotNil(t, movement)
	assert.Equal(t, entity.TxTopup, movement.Type)
	assert.Equal(t, walletID, movement.WalletID)
	require.NotNil(t, movement.RefID)
	assert.Equal(t, codeID, *movement.RefID)

	require.Len(t, fix.publisher.events, 1)
	assert.Equal(t, string(entity.NotifyWalletCredited), fix.publisher.events[0].Type)
}

func TestWalletService_RedeemCode_LazyWalletCreation(t *testing.T) {
	fix := newWalletFixture(nil)
	ownerID := uuid.New()

	fix.factory.topupCodeRepo.redeemFn = func(_ context.Context, code string, _ uuid.UUID, _ time.Time) (*entity.TopupCode, error) {
		return &entity.TopupCode{ID: uuid.New(), Code: code, Amount: decimal.RequireFromString("10.00")}, nil
	}
	fix.factory.walletRepo.findByOwnerFn = func(_ context.Context, _ uuid.UUID) (*entity.Wallet, error) {
		return nil, repository.ErrWalletNotFound
	}
	var created *entity.Wallet
	fix.factory.walletRepo.createFn = func(_ context.Context, wallet *entity.Wallet) error {
		wallet.ID = uuid.New()
		created = wallet

		return nil
	}
	fix.factory.walletRepo.addToBalanceFn = func(_ context.Context, _ uuid.UUID, _ decimal.Decimal) error {
		return nil
	}
	fix.factory.walletRepo.createTransactionFn = func(_ context.Context, _ *entity.WalletTransaction) error {
		return nil
	}

	out, err := fix.srv.RedeemCode(context.Background(), ownerID, "FRESH00001")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, ownerID, created.OwnerID)
	assert.True(t, out.Balance.Equal(decimal.RequireFromString("10.00")))
}

func TestWalletService_RedeemCode_UsedOrUnknown(t *testing.T) {
	fix := newWalletFixture(nil)

	fix.factory.topupCodeRepo.redeemFn = func(_ context.Context, _ string, _ uuid.UUID, _ time.Time) (*entity.TopupCode, error) {
		return nil, repository.ErrCodeUnavailable
	}

	_, err := fix.srv.RedeemCode(context.Background(), uuid.New(), "USED000001")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOrUsedCode)
	assert.Empty(t, fix.publisher.events)
}

func TestWalletService_RedeemCode_EmptyCode(t *testing.T) {
	fix := newWalletFixture(nil)

	_, err := fix.srv.RedeemCode(context.Background(), uuid.New(), "")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestWalletService_IssueCode(t *testing.T) {
	admin := &entity.User{ID: uuid.New(), IsAdmin: true}
	fix := newWalletFixture(admin)

	attempts := 0
	fix.factory.topupCodeRepo.createFn = func(_ context.Context, code *entity.TopupCode) error {
		attempts++
		// First draw collides with an existing code.
		if attempts == 1 {
			return domainerrors.ErrConflict
		}
		code.ID = uuid.New()

		return nil
	}

	out, err := fix.srv.IssueCode(context.Background(), admin.ID, decimal.RequireFromString("50.00"))
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.True(t, strings.HasPrefix(out.Code.Code, "QZ-"))
	assert.Equal(t, admin.ID, out.Code.CreatedBy)
	assert.Equal(t, []byte("png"), out.QRPNG)
}

func TestWalletService_IssueCode_NonAdmin(t *testing.T) {
	fix := newWalletFixture(&entity.User{ID: uuid.New()})

	_, err := fix.srv.IssueCode(context.Background(), uuid.New(), decimal.RequireFromString("50.00"))
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestWalletService_IssueCode_NonPositiveAmount(t *testing.T) {
	admin := &entity.User{ID: uuid.New(), IsAdmin: true}
	fix := newWalletFixture(admin)

	_, err := fix.srv.IssueCode(context.Background(), admin.ID, decimal.Zero)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestWalletService_IssueCode_CollisionsExhausted(t *testing.T) {
	admin := &entity.User{ID: uuid.New(), IsAdmin: true}
	fix := newWalletFixture(admin)

	fix.factory.topupCodeRepo.createFn = func(_ context.Context, _ *entity.TopupCode) error {
		return domainerrors.ErrConflict
	}

	_, err := fix.srv.IssueCode(context.Background(), admin.ID, decimal.RequireFromString("50.00"))
	assert.ErrorIs(t, err, domainerrors.ErrInternalError)
}
