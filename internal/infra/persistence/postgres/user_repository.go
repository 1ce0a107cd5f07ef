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

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID, preloading capability profiles.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("SellerProfile").
		Preload("DriverProfile").
		Where("id = ?", id).
		First(&userM).Error
	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address, preloading capability profiles.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("SellerProfile").
		Preload("DriverProfile").
		Where("email = ?", email).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity, including its capability profiles.
// GORM's Create with associations inserts into users plus seller_profiles
// and/or driver_profiles in one statement batch.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvalidInput.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the user entity with the generated ID and timestamps
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	if user.SellerProfile != nil && userM.SellerProfile != nil {
		user.SellerProfile.UserID = userM.SellerProfile.UserID
		user.SellerProfile.UpdatedAt = userM.SellerProfile.UpdatedAt
	}
	if user.DriverProfile != nil && userM.DriverProfile != nil {
		user.DriverProfile.UserID = userM.DriverProfile.UserID
		user.DriverProfile.UpdatedAt = userM.DriverProfile.UpdatedAt
	}

	return nil
}

// Update modifies an existing user entity, including its capability profiles.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	// Use Session with FullSaveAssociations to update nested associations
	err := repo.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(userM).Error
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvalidInput.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	user.UpdatedAt = userM.UpdatedAt
	if user.SellerProfile != nil && userM.SellerProfile != nil {
		user.SellerProfile.UpdatedAt = userM.SellerProfile.UpdatedAt
	}
	if user.DriverProfile != nil && userM.DriverProfile != nil {
		user.DriverProfile.UpdatedAt = userM.DriverProfile.UpdatedAt
	}

	return nil
}

// List returns users page by page for admin moderation views.
func (repo *userRepository) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	var userMs []*model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("SellerProfile").
		Preload("DriverProfile").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&userMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(userMs))
	for _, userM := range userMs {
		users = append(users, toUserDomain(userM))
	}

	return users, nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:            data.ID,
		Email:         data.Email,
		FullName:      data.FullName,
		Phone:         data.Phone,
		PasswordHash:  data.PasswordHash,
		IsAdmin:       data.IsAdmin,
		SellerProfile: toSellerProfileDomain(data.SellerProfile),
		DriverProfile: toDriverProfileDomain(data.DriverProfile),
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:            data.ID,
		Email:         data.Email,
		FullName:      data.FullName,
		Phone:         data.Phone,
		PasswordHash:  data.PasswordHash,
		IsAdmin:       data.IsAdmin,
		SellerProfile: fromSellerProfileDomain(data.SellerProfile),
		DriverProfile: fromDriverProfileDomain(data.DriverProfile),
	}
}

func toSellerProfileDomain(data *model.SellerProfileModel) *entity.SellerProfile {
	if data == nil {
		return nil
	}

	return &entity.SellerProfile{
		UserID:          data.UserID,
		BusinessName:    data.BusinessName,
		BusinessAddress: data.BusinessAddress,
		IsVerified:      data.IsVerified,
		VerifiedAt:      data.VerifiedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromSellerProfileDomain(data *entity.SellerProfile) *model.SellerProfileModel {
	if data == nil {
		return nil
	}

	return &model.SellerProfileModel{
		UserID:          data.UserID,
		BusinessName:    data.BusinessName,
		BusinessAddress: data.BusinessAddress,
		IsVerified:      data.IsVerified,
		VerifiedAt:      data.VerifiedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func toDriverProfileDomain(data *model.DriverProfileModel) *entity.DriverProfile {
	if data == nil {
		return nil
	}

	return &entity.DriverProfile{
		UserID:       data.UserID,
		VehicleType:  data.VehicleType,
		VehiclePlate: data.VehiclePlate,
		IsVerified:   data.IsVerified,
		VerifiedAt:   data.VerifiedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromDriverProfileDomain(data *entity.DriverProfile) *model.DriverProfileModel {
	if data == nil {
		return nil
	}

	return &model.DriverProfileModel{
		UserID:       data.UserID,
		VehicleType:  data.VehicleType,
		VehiclePlate: data.VehiclePlate,
		IsVerified:   data.IsVerified,
		VerifiedAt:   data.VerifiedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
