package impl

import (
	"context"
	"testing"

	"jordanmarket/internal/domain/entity"
	domainerrors "jordanmarket/internal/domain/errors"
	"jordanmarket/internal/domain/repository"
	"jordanmarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountFixture() (*accountService, *fakeRepoFactory) {
	factory := &fakeRepoFactory{userRepo: &fakeUserRepo{}}

	return &accountService{
		txManager:    &fakeTxManager{factory: factory},
		userRepo:     factory.userRepo,
		hasher:       &fakeHasher{},
		tokenService: &fakeTokenService{},
		logger:       testLogger(),
	}, factory
}

func TestAccountService_Register(t *testing.T) {
	srv, factory := newAccountFixture()

	var created *entity.User
	factory.userRepo.findByEmailFn = func(_ context.Context, _ string) (*entity.User, error) {
		return nil, repository.ErrUserNotFound
	}
	factory.userRepo.createFn = func(_ context.Context, user *entity.User) error {
		user.ID = uuid.New()
		created = user

		return nil
	}

	out, err := srv.Register(context.Background(), &usecase.RegisterInput{
		FullName: "Lina Haddad",
		Email:    "lina@example.com",
		Phone:    "+962790000001",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, created, out.User)
	assert.Equal(t, "lina@example.com", out.User.Email)
	assert.Equal(t, "hashed:correct horse", out.User.PasswordHash)
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	srv, factory := newAccountFixture()

	factory.userRepo.findByEmailFn = func(_ context.Context, _ string) (*entity.User, error) {
		return &entity.User{ID: uuid.New()}, nil
	}

	_, err := srv.Register(context.Background(), &usecase.RegisterInput{
		Email:    "taken@example.com",
		Password: "correct horse",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAccountService_Register_WeakPassword(t *testing.T) {
	srv, _ := newAccountFixture()
	srv.hasher = &fakeHasher{validateErr: errors.New("password must be at least 8 characters")}

	_, err := srv.Register(context.Background(), &usecase.RegisterInput{
		Email:    "lina@example.com",
		Password: "short",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAccountService_Login(t *testing.T) {
	srv, factory := newAccountFixture()

	userID := uuid.New()
	factory.userRepo.findByEmailFn = func(_ context.Context, _ string) (*entity.User, error) {
		return &entity.User{
			ID:            userID,
			PasswordHash:  "hashed:correct horse",
			SellerProfile: &entity.SellerProfile{IsVerified: true},
		}, nil
	}

	out, err := srv.Login(context.Background(), &usecase.LoginInput{
		Email:    "lina@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "access-"+userID.String(), out.AccessToken)
	assert.Equal(t, "refresh-"+userID.String(), out.RefreshToken)
	assert.Equal(t, entity.Roles{entity.RoleBuyer, entity.RoleSeller}, out.Roles)
}

func TestAccountService_Login_BadCredentials(t *testing.T) {
	srv, factory := newAccountFixture()

	factory.userRepo.findByEmailFn = func(_ context.Context, _ string) (*entity.User, error) {
		return nil, repository.ErrUserNotFound
	}
	_, err := srv.Login(context.Background(), &usecase.LoginInput{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	factory.userRepo.findByEmailFn = func(_ context.Context, _ string) (*entity.User, error) {
		return &entity.User{ID: uuid.New(), PasswordHash: "hashed:other"}, nil
	}
	_, err = srv.Login(context.Background(), &usecase.LoginInput{Email: "lina@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_Refresh_InvalidToken(t *testing.T) {
	srv, _ := newAccountFixture()
	srv.tokenService = &fakeTokenService{validateRefreshErr: errors.New("token is expired")}

	_, err := srv.Refresh(context.Background(), "stale-token")
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAccountService_GetProfile(t *testing.T) {
	srv, factory := newAccountFixture()

	userID := uuid.New()
	factory.userRepo.findByIDFn = func(_ context.Context, id uuid.UUID) (*entity.User, error) {
		require.Equal(t, userID, id)

		return &entity.User{ID: id, DriverProfile: &entity.DriverProfile{IsVerified: true}}, nil
	}

	out, err := srv.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, entity.Roles{entity.RoleBuyer, entity.RoleDriver}, out.Roles)
	assert.Equal(t, entity.RoleDriver, out.PrimaryRole)
}

func TestAccountService_ApplySeller(t *testing.T) {
	srv, factory := newAccountFixture()

	userID := uuid.New()
	factory.userRepo.findByIDFn = func(_ context.Context, id uuid.UUID) (*entity.User, error) {
		return &entity.User{ID: id}, nil
	}
	var saved *entity.User
	factory.userRepo.updateFn = func(_ context.Context, user *entity.User) error {
		saved = user

		return nil
	}

	out, err := srv.ApplySeller(context.Background(), userID, &usecase.ApplySellerInput{
		BusinessName:    "Haddad Sweets",
		BusinessAddress: "Rainbow St, Amman",
	})
	require.NoError(t, err)
	require.NotNil(t, saved.SellerProfile)
	assert.Equal(t, "Haddad Sweets", saved.SellerProfile.BusinessName)
	assert.False(t, saved.SellerProfile.IsVerified)
	// The capability is attached but unverified, so the role already shows up.
	assert.Contains(t, out.Roles, entity.RoleSeller)
}

func TestAccountService_ApplySeller_AlreadyApplied(t *testing.T) {
	srv, factory := newAccountFixture()

	factory.userRepo.findByIDFn = func(_ context.Context, id uuid.UUID) (*entity.User, error) {
		return &entity.User{ID: id, SellerProfile: &entity.SellerProfile{}}, nil
	}

	_, err := srv.ApplySeller(context.Background(), uuid.New(), &usecase.ApplySellerInput{BusinessName: "Again"})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestAccountService_ApplyDriver_AlreadyApplied(t *testing.T) {
	srv, factory := newAccountFixture()

	factory.userRepo.findByIDFn = func(_ context.Context, id uuid.UUID) (*entity.User, error) {
		return &entity.User{ID: id, DriverProfile: &entity.DriverProfile{}}, nil
	}

	_, err := srv.ApplyDriver(context.Background(), uuid.New(), &usecase.ApplyDriverInput{VehicleType: "motorbike"})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}
