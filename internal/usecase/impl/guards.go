package impl

import (
	"context"

	"jordanmarket/internal/domain/entity"
	domainerrors "jordanmarket/internal/domain/errors"
	"jordanmarket/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// requireVerifiedDriver loads the account and checks the driver capability.
func requireVerifiedDriver(ctx context.Context, userRepo repository.UserRepository, driverID uuid.UUID) (*entity.User, error) {
	user, err := userRepo.FindByID(ctx, driverID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load driver account")
	}

	if user.DriverProfile == nil {
		return nil, domainerrors.ErrForbidden.WrapMessage("driver capability required")
	}
	if !user.CanDrive() {
		return nil, domainerrors.ErrDriverNotVerified
	}

	return user, nil
}

// requireAdmin loads the account and checks the admin flag.
func requireAdmin(ctx context.Context, userRepo repository.UserRepository, adminID uuid.UUID) (*entity.User, error) {
	user, err := userRepo.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load admin account")
	}

	if !user.IsAdmin {
		return nil, domainerrors.ErrForbidden.WrapMessage("admin capability required")
	}

	return user, nil
}
