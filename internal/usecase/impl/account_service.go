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

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new buyer account.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("email", input.Email), slog.Any("error", err))

		return nil, domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Email:        input.Email,
		FullName:     input.FullName,
		Phone:        input.Phone,
		PasswordHash: hashedPassword,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, err := userRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already registered")
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check existing account")
		}

		return userRepo.Create(ctx, newUser)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: newUser}, nil
}

// Login verifies credentials and issues an access/refresh token pair.
// The access token carries the account's resolved capability set.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to load account for login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Password mismatch during login", slog.Any("userID", user.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	return srv.issueTokens(ctx, user)
}

// Refresh exchanges a valid refresh token for a new token pair. Capabilities
// are re-resolved at refresh time so a freshly verified seller picks up the
// role without logging in again.
func (srv *accountService) Refresh(ctx context.Context, refreshToken string) (*usecase.LoginOutput, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrRefreshTokenInvalid
		}

		return nil, errors.Wrap(err, "failed to load account for refresh")
	}

	return srv.issueTokens(ctx, user)
}

func (srv *accountService) issueTokens(ctx context.Context, user *entity.User) (*usecase.LoginOutput, error) {
	roles := user.Capabilities()

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, roles.ToStrings())
	if err != nil {
		srv.log(ctx).Error("Failed to generate tokens", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
		Roles:        roles,
	}, nil
}

// GetProfile resolves the account's capability set.
func (srv *accountService) GetProfile(ctx context.Context, userID uuid.UUID) (*usecase.ProfileOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	return profileOutput(user), nil
}

// ApplySeller attaches an unverified seller profile to the account.
func (srv *accountService) ApplySeller(ctx context.Context, userID uuid.UUID, input *usecase.ApplySellerInput) (*usecase.ProfileOutput, error) {
	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to load account")
		}
		if user.SellerProfile != nil {
			return domainerrors.ErrConflict.WrapMessage("seller profile already exists")
		}

		user.SellerProfile = &entity.SellerProfile{
			UserID:          user.ID,
			BusinessName:    input.BusinessName,
			BusinessAddress: input.BusinessAddress,
			UpdatedAt:       time.Now(),
		}
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to attach seller profile")
		}
		updated = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Seller profile created, pending verification", slog.Any("userID", userID))

	return profileOutput(updated), nil
}

// ApplyDriver attaches an unverified driver profile to the account.
func (srv *accountService) ApplyDriver(ctx context.Context, userID uuid.UUID, input *usecase.ApplyDriverInput) (*usecase.ProfileOutput, error) {
	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to load account")
		}
		if user.DriverProfile != nil {
			return domainerrors.ErrConflict.WrapMessage("driver profile already exists")
		}

		user.DriverProfile = &entity.DriverProfile{
			UserID:       user.ID,
			VehicleType:  input.VehicleType,
			VehiclePlate: input.VehiclePlate,
			UpdatedAt:    time.Now(),
		}
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to attach driver profile")
		}
		updated = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Driver profile created, pending verification", slog.Any("userID", userID))

	return profileOutput(updated), nil
}

func profileOutput(user *entity.User) *usecase.ProfileOutput {
	roles := user.Capabilities()

	return &usecase.ProfileOutput{
		User:        user,
		Roles:       roles,
		PrimaryRole: roles.Primary(),
	}
}
