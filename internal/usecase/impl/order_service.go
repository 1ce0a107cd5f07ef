package impl

import (
	"context"
	"log/slog"

	"jordanmarket/config"
	"jordanmarket/internal/cart"
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

const defaultMaxItemsPerOrder = 50

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager   repository.TransactionManager
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	cartStore   *cart.Store
	publisher   service.EventPublisher
	deliveryFee decimal.Decimal
	maxItems    int
	logger      *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	UserRepo  repository.UserRepository
	CartStore *cart.Store
	Publisher service.EventPublisher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) (usecase.OrderUsecase, error) {
	deliveryFee := decimal.Zero
	maxItems := defaultMaxItemsPerOrder
	if params.Config != nil && params.Config.Market != nil {
		if params.Config.Market.DefaultDeliveryFee != "" {
			fee, err := decimal.NewFromString(params.Config.Market.DefaultDeliveryFee)
			if err != nil {
				return nil, errors.Wrap(err, "invalid default delivery fee")
			}
			deliveryFee = fee
		}
		if params.Config.Market.MaxItemsPerOrder > 0 {
			maxItems = params.Config.Market.MaxItemsPerOrder
		}
	}

	return &orderService{
		txManager:   params.TxManager,
		orderRepo:   params.OrderRepo,
		userRepo:    params.UserRepo,
		cartStore:   params.CartStore,
		publisher:   params.Publisher,
		deliveryFee: deliveryFee,
		maxItems:    maxItems,
		logger:      params.Logger,
	}, nil
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Checkout turns the buyer's cart into a placed order in one transaction.
// Stock decrements are guarded per line; any miss rolls the whole order back
// and leaves both stock and the cart untouched.
func (srv *orderService) Checkout(ctx context.Context, buyerID uuid.UUID, input *usecase.CheckoutInput) (*entity.Order, error) {
	userCart := srv.cartStore.Get(buyerID)
	if userCart.Empty() {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("cart is empty")
	}
	if len(userCart.Items) > srv.maxItems {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("too many items in one order")
	}
	if input.DeliveryAddress == "" {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("delivery address is required")
	}

	var order *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		seller, err := repoFactory.UserRepo().FindByID(ctx, userCart.SellerID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("seller not found")
			}

			return errors.Wrap(err, "failed to load seller for checkout")
		}
		if !seller.CanSell() {
			return domainerrors.ErrSellerNotVerified
		}

		productRepo := repoFactory.ProductRepo()
		total := decimal.Zero
		items := make([]*entity.OrderItem, 0, len(userCart.Items))
		for _, line := range userCart.Items {
			product, err := productRepo.FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return domainerrors.ErrNotFound.WrapMessage("product no longer available")
				}

				return errors.Wrap(err, "failed to load product for checkout")
			}
			if !product.Available(line.Quantity) {
				return domainerrors.ErrInsufficientStock.WrapMessage(product.Name)
			}

			// The guarded decrement is the authority; Available above only
			// produces a friendlier error for the common case.
			if err := productRepo.DecrementStock(ctx, product.ID, line.Quantity); err != nil {
				if errors.Is(err, repository.ErrStockInsufficient) {
					return domainerrors.ErrInsufficientStock.WrapMessage(product.Name)
				}

				return errors.Wrap(err, "failed to decrement stock")
			}

			item := &entity.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
			}
			total = total.Add(item.Subtotal())
			items = append(items, item)
		}

		order = &entity.Order{
			BuyerID:         buyerID,
			SellerID:        userCart.SellerID,
			Status:          entity.OrderPlaced,
			TotalAmount:     total,
			DeliveryFee:     srv.deliveryFee,
			DeliveryAddress: input.DeliveryAddress,
			Items:           items,
		}
		if err := repoFactory.OrderRepo().Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		pickupAddress := ""
		if seller.SellerProfile != nil {
			pickupAddress = seller.SellerProfile.BusinessAddress
		}
		delivery := &entity.Delivery{
			OrderID:       order.ID,
			Status:        entity.DeliveryAvailable,
			PickupAddress: pickupAddress,
			DropAddress:   input.DeliveryAddress,
			CashCollected: decimal.Zero,
		}
		if err := repoFactory.DeliveryRepo().Create(ctx, delivery); err != nil {
			return errors.Wrap(err, "failed to create delivery task")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.cartStore.Clear(buyerID)
	srv.log(ctx).Info("Order placed",
		slog.Any("orderID", order.ID),
		slog.Any("buyerID", buyerID),
		slog.Any("sellerID", order.SellerID),
		slog.String("total", util.FormatAmount(order.GrandTotal())),
	)

	publishNotification(ctx, srv.publisher, srv.logger,
		[]uuid.UUID{order.SellerID},
		entity.NotifyOrderPlaced,
		"New order received",
		"A buyer placed an order worth "+util.FormatAmount(order.TotalAmount)+" JOD",
		"order", order.ID,
	)

	return order, nil
}

// GetOrder returns an order visible to the actor.
func (srv *orderService) GetOrder(ctx context.Context, actorID, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("order not found")
		}

		return nil, errors.Wrap(err, "failed to load order")
	}

	if order.BuyerID != actorID && order.SellerID != actorID {
		actor, err := srv.userRepo.FindByID(ctx, actorID)
		if err != nil || !actor.IsAdmin {
			// Hide existence from unrelated accounts.
			return nil, domainerrors.ErrNotFound.WrapMessage("order not found")
		}
	}

	return order, nil
}

// ListBuyerOrders returns the buyer's own orders.
func (srv *orderService) ListBuyerOrders(ctx context.Context, buyerID uuid.UUID, page usecase.Page) ([]*entity.Order, error) {
	page = page.Normalize()

	return srv.orderRepo.ListByBuyer(ctx, buyerID, page.Limit, page.Offset)
}

// ListSellerOrders returns the seller's incoming orders.
func (srv *orderService) ListSellerOrders(ctx context.Context, sellerID uuid.UUID, page usecase.Page) ([]*entity.Order, error) {
	page = page.Normalize()

	return srv.orderRepo.ListBySeller(ctx, sellerID, page.Limit, page.Offset)
}

// AdvanceOrder moves the order to the exact next status on the chain.
func (srv *orderService) AdvanceOrder(ctx context.Context, sellerID, orderID uuid.UUID, next entity.OrderStatus) (*entity.Order, error) {
	if !next.IsValid() || next == entity.OrderCancelled {
		return nil, domainerrors.ErrInvalidTransition.WrapMessage("unknown target status")
	}

	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("order not found")
		}

		return nil, errors.Wrap(err, "failed to load order")
	}
	if order.SellerID != sellerID {
		return nil, domainerrors.ErrNotFound.WrapMessage("order not found")
	}

	// Sellers drive the order only up to ready; the assigned driver owns the
	// rest of the chain.
	if !order.Status.SellerAdvanceable() || !order.Status.CanTransitionTo(next) {
		return nil, domainerrors.ErrInvalidTransition.WrapMessage(
			"cannot move order from " + order.Status.String() + " to " + next.String())
	}

	if err := srv.orderRepo.UpdateStatus(ctx, orderID, order.Status, next); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, domainerrors.ErrInvalidTransition.WrapMessage("order status changed concurrently")
		}

		return nil, errors.Wrap(err, "failed to advance order")
	}
	order.Status = next

	srv.log(ctx).Info("Order advanced",
		slog.Any("orderID", orderID),
		slog.String("status", next.String()),
	)

	publishNotification(ctx, srv.publisher, srv.logger,
		[]uuid.UUID{order.BuyerID},
		entity.NotifyOrderStatus,
		"Order update",
		"Your order is now "+next.String(),
		"order", order.ID,
	)

	return order, nil
}

// CancelOrder cancels while still placed or accepted, mirroring the companion
// delivery task.
func (srv *orderService) CancelOrder(ctx context.Context, actorID, orderID uuid.UUID) (*entity.Order, error) {
	var order *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		loaded, err := orderRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("order not found")
			}

			return errors.Wrap(err, "failed to load order")
		}
		if loaded.BuyerID != actorID && loaded.SellerID != actorID {
			return domainerrors.ErrNotFound.WrapMessage("order not found")
		}
		if !loaded.Status.Cancellable() {
			return domainerrors.ErrInvalidTransition.WrapMessage(
				"order can no longer be cancelled from " + loaded.Status.String())
		}

		if err := orderRepo.UpdateStatus(ctx, orderID, loaded.Status, entity.OrderCancelled); err != nil {
			if errors.Is(err, repository.ErrStaleStatus) {
				return domainerrors.ErrInvalidTransition.WrapMessage("order status changed concurrently")
			}

			return errors.Wrap(err, "failed to cancel order")
		}

		deliveryRepo := repoFactory.DeliveryRepo()
		delivery, err := deliveryRepo.FindByOrderID(ctx, orderID)
		if err != nil {
			return errors.Wrap(err, "failed to load companion delivery")
		}
		if err := deliveryRepo.Cancel(ctx, delivery.ID); err != nil {
			return errors.Wrap(err, "failed to cancel companion delivery")
		}

		loaded.Status = entity.OrderCancelled
		order = loaded

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Order cancelled", slog.Any("orderID", orderID), slog.Any("actorID", actorID))

	// Notify the counterpart of whoever cancelled.
	recipient := order.SellerID
	if actorID == order.SellerID {
		recipient = order.BuyerID
	}
	publishNotification(ctx, srv.publisher, srv.logger,
		[]uuid.UUID{recipient},
		entity.NotifyOrderCancelled,
		"Order cancelled",
		"Order was cancelled before preparation",
		"order", order.ID,
	)

	return order, nil
}
