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

// deliveryService implements the DeliveryUsecase interface.
type deliveryService struct {
	txManager    repository.TransactionManager
	deliveryRepo repository.DeliveryRepository
	userRepo     repository.UserRepository
	publisher    service.EventPublisher
	logger       *slog.Logger
}

// DeliveryServiceParams holds dependencies for deliveryService, injected by Fx.
type DeliveryServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	DeliveryRepo repository.DeliveryRepository
	UserRepo     repository.UserRepository
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewDeliveryService is the constructor for deliveryService.
func NewDeliveryService(params DeliveryServiceParams) usecase.DeliveryUsecase {
	return &deliveryService{
		txManager:    params.TxManager,
		deliveryRepo: params.DeliveryRepo,
		userRepo:     params.UserRepo,
		publisher:    params.Publisher,
		logger:       params.Logger,
	}
}

func (srv *deliveryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListAvailableDeliveries returns the open delivery board for verified drivers.
func (srv *deliveryService) ListAvailableDeliveries(ctx context.Context, driverID uuid.UUID, page usecase.Page) ([]*entity.Delivery, error) {
	if _, err := requireVerifiedDriver(ctx, srv.userRepo, driverID); err != nil {
		return nil, err
	}
	page = page.Normalize()

	return srv.deliveryRepo.ListAvailable(ctx, page.Limit, page.Offset)
}

// ListMyDeliveries returns the driver's own deliveries.
func (srv *deliveryService) ListMyDeliveries(ctx context.Context, driverID uuid.UUID, page usecase.Page) ([]*entity.Delivery, error) {
	if _, err := requireVerifiedDriver(ctx, srv.userRepo, driverID); err != nil {
		return nil, err
	}
	page = page.Normalize()

	return srv.deliveryRepo.ListByDriver(ctx, driverID, page.Limit, page.Offset)
}

// AcceptDelivery claims an available delivery for the driver. The conditional
// assignment is the whole race: whichever transaction matches the row first
// wins, and everything else in here rides on that win or rolls back with it.
func (srv *deliveryService) AcceptDelivery(ctx context.Context, driverID, deliveryID uuid.UUID) (*entity.Delivery, error) {
	if _, err := requireVerifiedDriver(ctx, srv.userRepo, driverID); err != nil {
		return nil, err
	}

	var (
		delivery *entity.Delivery
		order    *entity.Order
	)
	now := time.Now()
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		deliveryRepo := repoFactory.DeliveryRepo()

		if err := deliveryRepo.Assign(ctx, deliveryID, driverID, now); err != nil {
			if errors.Is(err, repository.ErrAlreadyAssigned) {
				return domainerrors.ErrInvalidState.WrapMessage("delivery is no longer available")
			}

			return errors.Wrap(err, "failed to assign delivery")
		}

		loaded, err := deliveryRepo.FindByID(ctx, deliveryID)
		if err != nil {
			return errors.Wrap(err, "failed to load assigned delivery")
		}
		delivery = loaded

		orderRepo := repoFactory.OrderRepo()
		order, err = orderRepo.FindByID(ctx, delivery.OrderID)
		if err != nil {
			return errors.Wrap(err, "failed to load order for delivery")
		}

		// The order must be ready before a driver can take it out.
		if err := orderRepo.UpdateStatus(ctx, order.ID, entity.OrderReady, entity.OrderAssigned); err != nil {
			if errors.Is(err, repository.ErrStaleStatus) {
				return domainerrors.ErrInvalidState.WrapMessage("order is not ready for pickup")
			}

			return errors.Wrap(err, "failed to mirror order assignment")
		}
		order.Status = entity.OrderAssigned

		collection := &entity.CashCollection{
			OrderID:        order.ID,
			DriverID:       driverID,
			Status:         entity.CashPending,
			AmountExpected: order.GrandTotal(),
		}
		if err := repoFactory.CashRepo().Create(ctx, collection); err != nil {
			return errors.Wrap(err, "failed to open cash collection")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Delivery accepted",
		slog.Any("deliveryID", deliveryID),
		slog.Any("driverID", driverID),
		slog.String("expectedCash", util.FormatAmount(order.GrandTotal())),
	)

	publishNotification(ctx, srv.publisher, srv.logger,
		[]uuid.UUID{order.BuyerID, order.SellerID},
		entity.NotifyDeliveryUpdate,
		"Driver assigned",
		"A driver accepted the delivery for your order",
		"order", order.ID,
	)

	return delivery, nil
}

// MarkPickedUp stamps pickup for the owning driver and mirrors the order.
func (srv *deliveryService) MarkPickedUp(ctx context.Context, driverID, deliveryID uuid.UUID) (*entity.Delivery, error) {
	if _, err := requireVerifiedDriver(ctx, srv.userRepo, driverID); err != nil {
		return nil, err
	}

	var (
		delivery *entity.Delivery
		order    *entity.Order
	)
	now := time.Now()
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		deliveryRepo := repoFactory.DeliveryRepo()

		if err := deliveryRepo.MarkPickedUp(ctx, deliveryID, driverID, now); err != nil {
			if errors.Is(err, repository.ErrStaleStatus) {
				return domainerrors.ErrInvalidState.WrapMessage("delivery is not yours or not assigned")
			}

			return errors.Wrap(err, "failed to mark delivery picked up")
		}

		loaded, err := deliveryRepo.FindByID(ctx, deliveryID)
		if err != nil {
			return errors.Wrap(err, "failed to load delivery")
		}
		delivery = loaded

		orderRepo := repoFactory.OrderRepo()
		order, err = orderRepo.FindByID(ctx, delivery.OrderID)
		if err != nil {
			return errors.Wrap(err, "failed to load order for delivery")
		}
		if err := orderRepo.UpdateStatus(ctx, order.ID, entity.OrderAssigned, entity.OrderPickedUp); err != nil {
			if errors.Is(err, repository.ErrStaleStatus) {
				return domainerrors.ErrInvalidState.WrapMessage("order is not in the assigned state")
			}

			return errors.Wrap(err, "failed to mirror order pickup")
		}
		order.Status = entity.OrderPickedUp

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Delivery picked up", slog.Any("deliveryID", deliveryID), slog.Any("driverID", driverID))

	publishNotification(ctx, srv.publisher, srv.logger,
		[]uuid.UUID{order.BuyerID},
		entity.NotifyDeliveryUpdate,
		"Order picked up",
		"Your order is on its way",
		"order", order.ID,
	)

	return delivery, nil
}

// CompleteDelivery stamps completion, records the cash taken at the door, and
// settles the delivery side: the cash collection moves to collected and the
// order to delivered in the same transaction.
func (srv *deliveryService) CompleteDelivery(ctx context.Context, driverID, deliveryID uuid.UUID, cashCollected decimal.Decimal) (*entity.Delivery, error) {
	if _, err := requireVerifiedDriver(ctx, srv.userRepo, driverID); err != nil {
		return nil, err
	}
	if cashCollected.IsNegative() {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("collected cash cannot be negative")
	}

	var (
		delivery *entity.Delivery
		order    *entity.Order
	)
	now := time.Now()
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		deliveryRepo := repoFactory.DeliveryRepo()

		if err := deliveryRepo.MarkDelivered(ctx, deliveryID, driverID, now, cashCollected); err != nil {
			if errors.Is(err, repository.ErrStaleStatus) {
				return domainerrors.ErrInvalidState.WrapMessage("delivery is not yours or not picked up")
			}

			return errors.Wrap(err, "failed to mark delivery delivered")
		}

		loaded, err := deliveryRepo.FindByID(ctx, deliveryID)
		if err != nil {
			return errors.Wrap(err, "failed to load delivery")
		}
		delivery = loaded

		orderRepo := repoFactory.OrderRepo()
		order, err = orderRepo.FindByID(ctx, delivery.OrderID)
		if err != nil {
			return errors.Wrap(err, "failed to load order for delivery")
		}
		if err := orderRepo.UpdateStatus(ctx, order.ID, entity.OrderPickedUp, entity.OrderDelivered); err != nil {
			if errors.Is(err, repository.ErrStaleStatus) {
				return domainerrors.ErrInvalidState.WrapMessage("order is not in the picked up state")
			}

			return errors.Wrap(err, "failed to mirror order delivery")
		}
		order.Status = entity.OrderDelivered

		cashRepo := repoFactory.CashRepo()
		collection, err := cashRepo.FindByOrderID(ctx, order.ID)
		if err != nil {
			return errors.Wrap(err, "failed to load cash collection")
		}
		if err := cashRepo.MarkCollected(ctx, collection.ID, driverID, cashCollected, now); err != nil {
			if errors.Is(err, repository.ErrStaleStatus) {
				return domainerrors.ErrInvalidState.WrapMessage("cash collection already advanced")
			}

			return errors.Wrap(err, "failed to mark cash collected")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Delivery completed",
		slog.Any("deliveryID", deliveryID),
		slog.Any("driverID", driverID),
		slog.String("cashCollected", util.FormatAmount(cashCollected)),
	)

	publishNotification(ctx, srv.publisher, srv.logger,
		[]uuid.UUID{order.BuyerID, order.SellerID},
		entity.NotifyDeliveryUpdate,
		"Order delivered",
		"The order was delivered and "+util.FormatAmount(cashCollected)+" JOD collected",
		"order", order.ID,
	)

	return delivery, nil
}
