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

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	publisher service.EventPublisher
	logger    *slog.Logger
}

// AdminServiceParams holds dependencies for adminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		publisher: params.Publisher,
		logger:    params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// VerifySeller flips the seller profile to verified. Re-verifying is a no-op.
func (srv *adminService) VerifySeller(ctx context.Context, adminID, userID uuid.UUID) (*entity.User, error) {
	if _, err := requireAdmin(ctx, srv.userRepo, adminID); err != nil {
		return nil, err
	}

	var (
		user    *entity.User
		flipped bool
	)
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		loaded, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to load user for verification")
		}
		user = loaded

		if user.SellerProfile == nil {
			return domainerrors.ErrInvalidState.WrapMessage("user has not applied as a seller")
		}
		if user.SellerProfile.IsVerified {
			return nil
		}

		now := time.Now()
		user.SellerProfile.IsVerified = true
		user.SellerProfile.VerifiedAt = &now
		flipped = true

		return userRepo.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	if flipped {
		srv.log(ctx).Info("Seller verified", slog.Any("userID", userID), slog.Any("adminID", adminID))

		publishNotification(ctx, srv.publisher, srv.logger,
			[]uuid.UUID{userID},
			entity.NotifySellerVerified,
			"Seller account verified",
			"Your seller account has been verified, you can now list products",
			"user", userID,
		)
	}

	return user, nil
}

// VerifyDriver flips the driver profile to verified. Re-verifying is a no-op.
func (srv *adminService) VerifyDriver(ctx context.Context, adminID, userID uuid.UUID) (*entity.User, error) {
	if _, err := requireAdmin(ctx, srv.userRepo, adminID); err != nil {
		return nil, err
	}

	var (
		user    *entity.User
		flipped bool
	)
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		loaded, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to load user for verification")
		}
		user = loaded

		if user.DriverProfile == nil {
			return domainerrors.ErrInvalidState.WrapMessage("user has not applied as a driver")
		}
		if user.DriverProfile.IsVerified {
			return nil
		}

		now := time.Now()
		user.DriverProfile.IsVerified = true
		user.DriverProfile.VerifiedAt = &now
		flipped = true

		return userRepo.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	if flipped {
		srv.log(ctx).Info("Driver verified", slog.Any("userID", userID), slog.Any("adminID", adminID))

		publishNotification(ctx, srv.publisher, srv.logger,
			[]uuid.UUID{userID},
			entity.NotifyDriverVerified,
			"Driver account verified",
			"Your driver account has been verified, you can now accept deliveries",
			"user", userID,
		)
	}

	return user, nil
}

// ListUsers returns registered users, newest first.
func (srv *adminService) ListUsers(ctx context.Context, page usecase.Page) ([]*entity.User, error) {
	page = page.Normalize()

	return srv.userRepo.List(ctx, page.Limit, page.Offset)
}
