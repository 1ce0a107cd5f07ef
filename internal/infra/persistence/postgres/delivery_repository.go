package postgres

import (
	"context"
	"time"

	"jordanmarket/internal/domain/entity"
	domainerrors "jordanmarket/internal/domain/errors"
	"jordanmarket/internal/domain/repository"
	"jordanmarket/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// deliveryRepository implements the domain.DeliveryRepository interface using GORM.
type deliveryRepository struct {
	db *gorm.DB
}

// NewDeliveryRepository is the constructor for deliveryRepository.
func NewDeliveryRepository(db *gorm.DB) repository.DeliveryRepository {
	return &deliveryRepository{db: db}
}

// Create persists a new delivery task (status available).
func (repo *deliveryRepository) Create(ctx context.Context, delivery *entity.Delivery) error {
	deliveryM := fromDeliveryDomain(delivery)

	if err := repo.db.WithContext(ctx).Create(deliveryM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("delivery already exists for order")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrInvalidInput.WrapMessage("unknown order reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create delivery")
	}

	delivery.ID = deliveryM.ID
	delivery.CreatedAt = deliveryM.CreatedAt
	delivery.UpdatedAt = deliveryM.UpdatedAt

	return nil
}

// FindByID retrieves a delivery by its unique ID.
func (repo *deliveryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Delivery, error) {
	var deliveryM model.DeliveryModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&deliveryM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDeliveryNotFound
		}

		return nil, errors.Wrap(err, "failed to find delivery by id")
	}

	return toDeliveryDomain(&deliveryM), nil
}

// FindByOrderID retrieves the companion delivery of an order.
func (repo *deliveryRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Delivery, error) {
	var deliveryM model.DeliveryModel
	err := repo.db.WithContext(ctx).Where("order_id = ?", orderID).First(&deliveryM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDeliveryNotFound
		}

		return nil, errors.Wrap(err, "failed to find delivery by order id")
	}

	return toDeliveryDomain(&deliveryM), nil
}

// ListAvailable returns unassigned deliveries for the driver board.
func (repo *deliveryRepository) ListAvailable(ctx context.Context, limit, offset int) ([]*entity.Delivery, error) {
	var deliveryMs []*model.DeliveryModel
	err := repo.db.WithContext(ctx).
		Where("status = ? AND driver_id IS NULL", entity.DeliveryAvailable.String()).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&deliveryMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list available deliveries")
	}

	return toDeliveryDomains(deliveryMs), nil
}

// ListByDriver returns a driver's deliveries, newest first.
func (repo *deliveryRepository) ListByDriver(ctx context.Context, driverID uuid.UUID, limit, offset int) ([]*entity.Delivery, error) {
	var deliveryMs []*model.DeliveryModel
	err := repo.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&deliveryMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list driver deliveries")
	}

	return toDeliveryDomains(deliveryMs), nil
}

// Assign sets the driver with a single conditional update.
// The guard pins status = available AND driver_id IS NULL, so of any number of
// concurrent accepts exactly one matches a row. The losers see zero rows
// affected and get ErrAlreadyAssigned.
func (repo *deliveryRepository) Assign(ctx context.Context, id, driverID uuid.UUID, at time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.DeliveryModel{}).
		Where("id = ? AND status = ? AND driver_id IS NULL", id, entity.DeliveryAvailable.String()).
		Updates(map[string]any{
			"driver_id":   driverID,
			"status":      entity.DeliveryAssigned.String(),
			"assigned_at": at,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to assign delivery")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAlreadyAssigned
	}

	return nil
}

// MarkPickedUp advances assigned -> picked_up for the owning driver.
func (repo *deliveryRepository) MarkPickedUp(ctx context.Context, id, driverID uuid.UUID, at time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.DeliveryModel{}).
		Where("id = ? AND driver_id = ? AND status = ?", id, driverID, entity.DeliveryAssigned.String()).
		Updates(map[string]any{
			"status":       entity.DeliveryPickedUp.String(),
			"picked_up_at": at,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to mark delivery picked up")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStaleStatus
	}

	return nil
}

// MarkDelivered advances picked_up -> delivered for the owning driver and
// records the cash taken at the door.
func (repo *deliveryRepository) MarkDelivered(ctx context.Context, id, driverID uuid.UUID, at time.Time, cashCollected decimal.Decimal) error {
	result := repo.db.WithContext(ctx).
		Model(&model.DeliveryModel{}).
		Where("id = ? AND driver_id = ? AND status = ?", id, driverID, entity.DeliveryPickedUp.String()).
		Updates(map[string]any{
			"status":         entity.DeliveryDelivered.String(),
			"delivered_at":   at,
			"cash_collected": cashCollected,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to mark delivery delivered")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStaleStatus
	}

	return nil
}

// Cancel moves an unstarted delivery (available or assigned) to cancelled.
func (repo *deliveryRepository) Cancel(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.DeliveryModel{}).
		Where("id = ? AND status IN ?", id, []string{
			entity.DeliveryAvailable.String(),
			entity.DeliveryAssigned.String(),
		}).
		Update("status", entity.DeliveryCancelled.String())
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to cancel delivery")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStaleStatus
	}

	return nil
}

// --- Mapper Functions ---

func toDeliveryDomain(data *model.DeliveryModel) *entity.Delivery {
	if data == nil {
		return nil
	}

	return &entity.Delivery{
		ID:            data.ID,
		OrderID:       data.OrderID,
		DriverID:      data.DriverID,
		Status:        entity.DeliveryStatus(data.Status),
		PickupAddress: data.PickupAddress,
		DropAddress:   data.DropAddress,
		CashCollected: data.CashCollected,
		AssignedAt:    data.AssignedAt,
		PickedUpAt:    data.PickedUpAt,
		DeliveredAt:   data.DeliveredAt,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func toDeliveryDomains(data []*model.DeliveryModel) []*entity.Delivery {
	deliveries := make([]*entity.Delivery, 0, len(data))
	for _, deliveryM := range data {
		deliveries = append(deliveries, toDeliveryDomain(deliveryM))
	}

	return deliveries
}

func fromDeliveryDomain(data *entity.Delivery) *model.DeliveryModel {
	if data == nil {
		return nil
	}

	return &model.DeliveryModel{
		ID:            data.ID,
		OrderID:       data.OrderID,
		DriverID:      data.DriverID,
		Status:        data.Status.String(),
		PickupAddress: data.PickupAddress,
		DropAddress:   data.DropAddress,
		CashCollected: data.CashCollected,
		AssignedAt:    data.AssignedAt,
		PickedUpAt:    data.PickedUpAt,
		DeliveredAt:   data.DeliveredAt,
	}
}
