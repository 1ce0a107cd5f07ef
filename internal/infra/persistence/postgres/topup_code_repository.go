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
	"gorm.io/gorm"
)

// topupCodeRepository implements the domain.TopupCodeRepository interface using GORM.
type topupCodeRepository struct {
	db *gorm.DB
}

// NewTopupCodeRepository is the constructor for topupCodeRepository.
func NewTopupCodeRepository(db *gorm.DB) repository.TopupCodeRepository {
	return &topupCodeRepository{db: db}
}

// Create persists a new admin-issued code.
func (repo *topupCodeRepository) Create(ctx context.Context, code *entity.TopupCode) error {
	codeM := fromTopupCodeDomain(code)

	if err := repo.db.WithContext(ctx).Create(codeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("code already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create topup code")
	}

	code.ID = codeM.ID
	code.CreatedAt = codeM.CreatedAt

	return nil
}

// List returns issued codes, newest first, for the admin view.
func (repo *topupCodeRepository) List(ctx context.Context, limit, offset int) ([]*entity.TopupCode, error) {
	var codeMs []*model.TopupCodeModel
	err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&codeMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list topup codes")
	}

	codes := make([]*entity.TopupCode, 0, len(codeMs))
	for _, codeM := range codeMs {
		codes = append(codes, toTopupCodeDomain(codeM))
	}

	return codes, nil
}

// Redeem consumes the code with a single conditional update guarded by
// redeemed_by IS NULL. Concurrent redemptions race on the same row and only
// one matches; a miss is reported as ErrCodeUnavailable whether the code is
// absent or already used.
func (repo *topupCodeRepository) Redeem(ctx context.Context, code string, userID uuid.UUID, at time.Time) (*entity.TopupCode, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.TopupCodeModel{}).
		Where("code = ? AND redeemed_by IS NULL", code).
		Updates(map[string]any{
			"redeemed_by": userID,
			"redeemed_at": at,
		})
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to redeem topup code")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrCodeUnavailable
	}

	var codeM model.TopupCodeModel
	if err := repo.db.WithContext(ctx).Where("code = ?", code).First(&codeM).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load redeemed topup code")
	}

	return toTopupCodeDomain(&codeM), nil
}

// --- Mapper Functions ---

func toTopupCodeDomain(data *model.TopupCodeModel) *entity.TopupCode {
	if data == nil {
		return nil
	}

	return &entity.TopupCode{
		ID:         data.ID,
		Code:       data.Code,
		Amount:     data.Amount,
		CreatedBy:  data.CreatedBy,
		RedeemedBy: data.RedeemedBy,
		RedeemedAt: data.RedeemedAt,
		CreatedAt:  data.CreatedAt,
	}
}

func fromTopupCodeDomain(data *entity.TopupCode) *model.TopupCodeModel {
	if data == nil {
		return nil
	}

	return &model.TopupCodeModel{
		ID:         data.ID,
		Code:       data.Code,
		Amount:     data.Amount,
		CreatedBy:  data.CreatedBy,
		RedeemedBy: data.RedeemedBy,
		RedeemedAt: data.RedeemedAt,
	}
}
