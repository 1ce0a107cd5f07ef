package postgres

import (
	"context"

	"jordanmarket/internal/domain/entity"
	domainerrors "jordanmarket/internal/domain/errors"
	"jordanmarket/internal/domain/repository"
	"jordanmarket/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the domain.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create persists a new order together with its line items.
// GORM's Create with associations inserts the order and its items together.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrInvalidInput.WrapMessage("unknown buyer, seller or product reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvalidInput.WrapMessage("missing required order information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	for i, itemM := range orderM.Items {
		if i < len(order.Items) {
			order.Items[i].ID = itemM.ID
			order.Items[i].OrderID = itemM.OrderID
		}
	}

	return nil
}

// FindByID retrieves an order with its items.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&orderM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// ListByBuyer returns a buyer's orders, newest first.
func (repo *orderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	return repo.list(ctx, "buyer_id = ?", buyerID, limit, offset)
}

// ListBySeller returns a seller's incoming orders, newest first.
func (repo *orderRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	return repo.list(ctx, "seller_id = ?", sellerID, limit, offset)
}

func (repo *orderRepository) list(ctx context.Context, cond string, id uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	var orderMs []*model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Where(cond, id).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orderMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderMs))
	for _, orderM := range orderMs {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// UpdateStatus moves an order from the expected current status to the next one.
// The WHERE clause pins the expected status so concurrent writers cannot both
// win; a miss means the order already moved and the caller gets ErrStaleStatus.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND status = ?", id, from.String()).
		Update("status", to.String())
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStaleStatus
	}

	return nil
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]*entity.OrderItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, &entity.OrderItem{
			ID:        itemM.ID,
			OrderID:   itemM.OrderID,
			ProductID: itemM.ProductID,
			Name:      itemM.Name,
			Quantity:  itemM.Quantity,
			UnitPrice: itemM.UnitPrice,
		})
	}

	return &entity.Order{
		ID:              data.ID,
		BuyerID:         data.BuyerID,
		SellerID:        data.SellerID,
		Status:          entity.OrderStatus(data.Status),
		TotalAmount:     data.TotalAmount,
		DeliveryFee:     data.DeliveryFee,
		DeliveryAddress: data.DeliveryAddress,
		Items:           items,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]*model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, &model.OrderItemModel{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return &model.OrderModel{
		ID:              data.ID,
		BuyerID:         data.BuyerID,
		SellerID:        data.SellerID,
		Status:          data.Status.String(),
		TotalAmount:     data.TotalAmount,
		DeliveryFee:     data.DeliveryFee,
		DeliveryAddress: data.DeliveryAddress,
		Items:           items,
	}
}
