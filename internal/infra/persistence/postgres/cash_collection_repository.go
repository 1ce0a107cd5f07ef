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

// cashCollectionRepository implements the domain.CashCollectionRepository interface using GORM.
type cashCollectionRepository struct {
	db *gorm.DB
}

// NewCashCollectionRepository is the constructor for cashCollectionRepository.
func NewCashCollectionRepository(db *gorm.DB) repository.CashCollectionRepository {
	return &cashCollectionRepository{db: db}
}

// Create persists a new pending cash collection.
func (repo *cashCollectionRepository) Create(ctx context.Context, collection *entity.CashCollection) error {
	collectionM := fromCashCollectionDomain(collection)

	if err := repo.db.WithContext(ctx).Create(collectionM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("cash collection already exists for order")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrInvalidInput.WrapMessage("unknown order or driver reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create cash collection")
	}

	collection.ID = collectionM.ID
	collection.CreatedAt = collectionM.CreatedAt
	collection.UpdatedAt = collectionM.UpdatedAt

	return nil
}

// FindByID retrieves a collection by its unique ID.
func (repo *cashCollectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CashCollection, error) {
	var collectionM model.CashCollectionModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&collectionM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCashCollectionNotFound
		}

		return nil, errors.Wrap(err, "failed to find cash collection by id")
	}

	return toCashCollectionDomain(&collectionM), nil
}

// FindByOrderID retrieves the collection attached to an order.
func (repo *cashCollectionRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.CashCollection, error) {
	var collectionM model.CashCollectionModel
	err := repo.db.WithContext(ctx).Where("order_id = ?", orderID).First(&collectionM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCashCollectionNotFound
		}

		return nil, errors.Wrap(err, "failed to find cash collection by order id")
	}

	return toCashCollectionDomain(&collectionM), nil
}

// ListByDriver returns a driver's collections, newest first.
func (repo *cashCollectionRepository) ListByDriver(ctx context.Context, driverID uuid.UUID, limit, offset int) ([]*entity.CashCollection, error) {
	var collectionMs []*model.CashCollectionModel
	err := repo.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&collectionMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list driver cash collections")
	}

	return toCashCollectionDomains(collectionMs), nil
}

// ListByStatus returns collections in one reconciliation state for admin review.
func (repo *cashCollectionRepository) ListByStatus(ctx context.Context, status entity.CashStatus, limit, offset int) ([]*entity.CashCollection, error) {
	var collectionMs []*model.CashCollectionModel
	err := repo.db.WithContext(ctx).
		Where("status = ?", status.String()).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&collectionMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cash collections by status")
	}

	return toCashCollectionDomains(collectionMs), nil
}

// MarkCollected advances pending -> collected for the owning driver and
// records the collected amount. Ownership and state are both pinned in the
// WHERE clause so a mismatch affects zero rows.
func (repo *cashCollectionRepository) MarkCollected(ctx context.Context, id, driverID uuid.UUID, amount decimal.Decimal, at time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CashCollectionModel{}).
		Where("id = ? AND driver_id = ? AND status = ?", id, driverID, entity.CashPending.String()).
		Updates(map[string]any{
			"status":           entity.CashCollected.String(),
			"amount_collected": amount,
			"collected_at":     at,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to mark cash collected")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStaleStatus
	}

	return nil
}

// Confirm advances collected -> confirmed and stamps the confirming admin.
func (repo *cashCollectionRepository) Confirm(ctx context.Context, id, adminID uuid.UUID, at time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CashCollectionModel{}).
		Where("id = ? AND status = ?", id, entity.CashCollected.String()).
		Updates(map[string]any{
			"status":       entity.CashConfirmed.String(),
			"confirmed_at": at,
			"confirmed_by": adminID,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to confirm cash collection")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStaleStatus
	}

	return nil
}

// Summary aggregates expected/collected amounts per reconciliation state.
// Pending rows count the expected amount; collected and confirmed rows count
// what the driver actually took at the door.
func (repo *cashCollectionRepository) Summary(ctx context.Context) (*entity.CashSummary, error) {
	var row struct {
		Pending   decimal.Decimal
		Collected decimal.Decimal
		Confirmed decimal.Decimal
	}

	err := repo.db.WithContext(ctx).
		Model(&model.CashCollectionModel{}).
		Select(`
			COALESCE(SUM(amount_expected) FILTER (WHERE status = ?), 0) AS pending,
			COALESCE(SUM(amount_collected) FILTER (WHERE status = ?), 0) AS collected,
			COALESCE(SUM(amount_collected) FILTER (WHERE status = ?), 0) AS confirmed`,
			entity.CashPending.String(),
			entity.CashCollected.String(),
			entity.CashConfirmed.String(),
		).
		Scan(&row).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate cash summary")
	}

	return &entity.CashSummary{
		PendingWithDrivers:   row.Pending,
		AwaitingConfirmation: row.Collected,
		Confirmed:            row.Confirmed,
	}, nil
}

// --- Mapper Functions ---

func toCashCollectionDomain(data *model.CashCollectionModel) *entity.CashCollection {
	if data == nil {
		return nil
	}

	return &entity.CashCollection{
		ID:              data.ID,
		OrderID:         data.OrderID,
		DriverID:        data.DriverID,
		Status:          entity.CashStatus(data.Status),
		AmountExpected:  data.AmountExpected,
		AmountCollected: data.AmountCollected,
		CollectedAt:     data.CollectedAt,
		ConfirmedAt:     data.ConfirmedAt,
		ConfirmedBy:     data.ConfirmedBy,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func toCashCollectionDomains(data []*model.CashCollectionModel) []*entity.CashCollection {
	collections := make([]*entity.CashCollection, 0, len(data))
	for _, collectionM := range data {
		collections = append(collections, toCashCollectionDomain(collectionM))
	}

	return collections
}

func fromCashCollectionDomain(data *entity.CashCollection) *model.CashCollectionModel {
	if data == nil {
		return nil
	}

	return &model.CashCollectionModel{
		ID:              data.ID,
		OrderID:         data.OrderID,
		DriverID:        data.DriverID,
		Status:          data.Status.String(),
		AmountExpected:  data.AmountExpected,
		AmountCollected: data.AmountCollected,
		CollectedAt:     data.CollectedAt,
		ConfirmedAt:     data.ConfirmedAt,
		ConfirmedBy:     data.ConfirmedBy,
	}
}
