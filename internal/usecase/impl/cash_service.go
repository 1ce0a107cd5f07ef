package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "jordanmarket/internal/delivery/context"
	"jordanmarket/internal/domain/entity"
	domainerrors "jordanmarket/internal/domain/errors"
	"jordanmarket/internal/domain/repository"
	"jordanmarket/internal/domain/service"
	"jordanmarket/internal/usecase"
	"jordanmarket/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// cashService implements the CashUsecase interface.
type cashService struct {
	txManager repository.TransactionManager
	cashRepo  repository.CashCollectionRepository
	userRepo  repository.UserRepository
	publisher service.EventPublisher
	logger    *slog.Logger
}

// CashServiceParams holds dependencies for cashService, injected by Fx.
type CashServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	CashRepo  repository.CashCollectionRepository
	UserRepo  repository.UserRepository
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewCashService is the constructor for cashService.
func NewCashService(params CashServiceParams) usecase.CashUsecase {
	return &cashService{
		txManager: params.TxManager,
		cashRepo:  params.CashRepo,
		userRepo:  params.UserRepo,
		publisher: params.Publisher,
		logger:    params.Logger,
	}
}

func (srv *cashService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListMyCollections returns the driver's cash collections, newest first.
func (srv *cashService) ListMyCollections(ctx context.Context, driverID uuid.UUID, page usecase.Page) ([]*entity.CashCollection, error) {
	if _, err := requireVerifiedDriver(ctx, srv.userRepo, driverID); err != nil {
		return nil, err
	}
	page = page.Normalize()

	return srv.cashRepo.ListByDriver(ctx, driverID, page.Limit, page.Offset)
}

// MarkCollected records the amount the owning driver physically holds.
// CompleteDelivery already does this as part of the delivery settlement; this
// path exists for corrections before pickup bookkeeping catches up, and fails
// once the collection has advanced.
func (srv *cashService) MarkCollected(ctx context.Context, driverID, collectionID uuid.UUID, amount decimal.Decimal) (*entity.CashCollection, error) {
	if _, err := requireVerifiedDriver(ctx, srv.userRepo, driverID); err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("collected amount cannot be negative")
	}

	if err := srv.cashRepo.MarkCollected(ctx, collectionID, driverID, amount, time.Now()); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, domainerrors.ErrInvalidState.WrapMessage("cash collection is not yours or not pending")
		}

		return nil, errors.Wrap(err, "failed to mark cash collected")
	}

	collection, err := srv.cashRepo.FindByID(ctx, collectionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cash collection")
	}

	srv.log(ctx).Info("Cash collected",
		slog.Any("collectionID", collectionID),
		slog.Any("driverID", driverID),
		slog.String("amount", util.FormatAmount(amount)),
	)

	return collection, nil
}

// ConfirmReceipt acknowledges the handed-over cash at the counting desk and
// settles the order: the seller's wallet is credited with the order total and
// the driver's with the delivery fee, all in one transaction.
func (srv *cashService) ConfirmReceipt(ctx context.Context, adminID, collectionID uuid.UUID) (*entity.CashCollection, error) {
	if _, err := requireAdmin(ctx, srv.userRepo, adminID); err != nil {
		return nil, err
	}

	var (
		collection *entity.CashCollection
		order      *entity.Order
	)
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cashRepo := repoFactory.CashRepo()

		if err := cashRepo.Confirm(ctx, collectionID, adminID, time.Now()); err != nil {
			if errors.Is(err, repository.ErrStaleStatus) {
				return domainerrors.ErrInvalidState.WrapMessage("cash collection is not in the collected state")
			}

			return errors.Wrap(err, "failed to confirm cash receipt")
		}

		loaded, err := cashRepo.FindByID(ctx, collectionID)
		if err != nil {
			return errors.Wrap(err, "failed to load cash collection")
		}
		collection = loaded

		order, err = repoFactory.OrderRepo().FindByID(ctx, collection.OrderID)
		if err != nil {
			return errors.Wrap(err, "failed to load order for cash collection")
		}

		walletRepo := repoFactory.WalletRepo()
		orderID := order.ID

		if order.TotalAmount.IsPositive() {
			if _, err := creditWallet(ctx, walletRepo, order.SellerID, order.TotalAmount, &entity.WalletTransaction{
				Type:        entity.TxSaleCredit,
				Amount:      order.TotalAmount,
				Description: "Sale proceeds for confirmed cash order",
				RefType:     "order",
				RefID:       &orderID,
			}); err != nil {
				return err
			}
		}

		if order.DeliveryFee.IsPositive() {
			if _, err := creditWallet(ctx, walletRepo, collection.DriverID, order.DeliveryFee, &entity.WalletTransaction{
				Type:        entity.TxDeliveryFee,
				Amount:      order.DeliveryFee,
				Description: "Delivery fee for confirmed cash order",
				RefType:     "order",
				RefID:       &orderID,
			}); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Cash receipt confirmed",
		slog.Any("collectionID", collectionID),
		slog.Any("adminID", adminID),
		slog.String("amount", util.FormatAmount(collection.AmountCollected)),
	)

	publishNotification(ctx, srv.publisher, srv.logger,
		[]uuid.UUID{collection.DriverID},
		entity.NotifyCashConfirmed,
		"Cash handover confirmed",
		util.FormatAmount(collection.AmountCollected)+" JOD confirmed received",
		"cash_collection", collection.ID,
	)
	if order.TotalAmount.IsPositive() {
		publishNotification(ctx, srv.publisher, srv.logger,
			[]uuid.UUID{order.SellerID},
			entity.NotifyWalletCredited,
			"Sale proceeds credited",
			util.FormatAmount(order.TotalAmount)+" QANZ credited for your sale",
			"order", order.ID,
		)
	}
	if order.DeliveryFee.IsPositive() {
		publishNotification(ctx, srv.publisher, srv.logger,
			[]uuid.UUID{collection.DriverID},
			entity.NotifyWalletCredited,
			"Delivery fee credited",
			util.FormatAmount(order.DeliveryFee)+" QANZ credited for the delivery",
			"order", order.ID,
		)
	}

	return collection, nil
}

// ListByStatus returns collections in one reconciliation state for admin review.
func (srv *cashService) ListByStatus(ctx context.Context, status entity.CashStatus, page usecase.Page) ([]*entity.CashCollection, error) {
	switch status {
	case entity.CashPending, entity.CashCollected, entity.CashConfirmed:
	default:
		return nil, domainerrors.ErrInvalidInput.WrapMessage("unknown cash collection status")
	}
	page = page.Normalize()

	return srv.cashRepo.ListByStatus(ctx, status, page.Limit, page.Offset)
}

// Summary aggregates outstanding cash per reconciliation state.
func (srv *cashService) Summary(ctx context.Context) (*entity.CashSummary, error) {
	return srv.cashRepo.Summary(ctx)
}
