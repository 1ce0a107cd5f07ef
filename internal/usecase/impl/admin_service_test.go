package impl

import (
	"context"
	"testing"

	"jordanmarket/internal/domain/entity"
	domainerrors "jordanmarket/internal/domain/errors"
	"jordanmarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	srv       *adminService
	factory   *fakeRepoFactory
	publisher *fakePublisher
	admin     *entity.User
}

func newAdminFixture() *adminFixture {
	admin := &entity.User{ID: uuid.New(), IsAdmin: true}
	factory := &fakeRepoFactory{userRepo: &fakeUserRepo{}}
	publisher := &fakePublisher{}

	return &adminFixture{
		srv: &adminService{
			txManager: &fakeTxManager{factory: factory},
			userRepo:  factory.userRepo,
			publisher: publisher,
			logger:    testLogger(),
		},
		factory:   factory,
		publisher: publisher,
		admin:     admin,
	}
}

// routeUsers serves the admin for the capability check and the target for the
// verification lookup.
func (fix *adminFixture) routeUsers(target *entity.User) {
	fix.factory.userRepo.findByIDFn = func(_ context.Context, id uuid.UUID) (*entity.User, error) {
		if id == fix.admin.ID {
			return fix.admin, nil
		}

		return target, nil
	}
}

func TestAdminService_VerifySeller(t *testing.T) {
	fix := newAdminFixture()
	target := &entity.User{ID: uuid.New(), SellerProfile: &entity.SellerProfile{}}
	fix.routeUsers(target)

	var saved *entity.User
	fix.factory.userRepo.updateFn = func(_ context.Context, user *entity.User) error {
		saved = user

		return nil
	}

	user, err := fix.srv.VerifySeller(context.Background(), fix.admin.ID, target.ID)
	require.NoError(t, err)
	assert.True(t, user.SellerProfile.IsVerified)
	assert.NotNil(t, user.SellerProfile.VerifiedAt)
	assert.Equal(t, target, saved)

	require.Len(t, fix.publisher.events, 1)
	assert.Equal(t, string(entity.NotifySellerVerified), fix.publisher.events[0].Type)
}

func TestAdminService_VerifySeller_AlreadyVerifiedIsNoop(t *testing.T) {
	fix := newAdminFixture()
	target := &entity.User{ID: uuid.New(), SellerProfile: &entity.SellerProfile{IsVerified: true}}
	fix.routeUsers(target)

	user, err := fix.srv.VerifySeller(context.Background(), fix.admin.ID, target.ID)
	require.NoError(t, err)
	assert.True(t, user.SellerProfile.IsVerified)

	// No update ran and nobody got re-notified.
	assert.Empty(t, fix.publisher.events)
}

func TestAdminService_VerifySeller_NoApplication(t *testing.T) {
	fix := newAdminFixture()
	target := &entity.User{ID: uuid.New()}
	fix.routeUsers(target)

	_, err := fix.srv.VerifySeller(context.Background(), fix.admin.ID, target.ID)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidState)
}

func TestAdminService_VerifyDriver(t *testing.T) {
	fix := newAdminFixture()
	target := &entity.User{ID: uuid.New(), DriverProfile: &entity.DriverProfile{}}
	fix.routeUsers(target)

	fix.factory.userRepo.updateFn = func(_ context.Context, _ *entity.User) error {
		return nil
	}

	user, err := fix.srv.VerifyDriver(context.Background(), fix.admin.ID, target.ID)
	require.NoError(t, err)
	assert.True(t, user.DriverProfile.IsVerified)

	require.Len(t, fix.publisher.events, 1)
	assert.Equal(t, string(entity.NotifyDriverVerified), fix.publisher.events[0].Type)
}

func TestAdminService_Verify_RequiresAdmin(t *testing.T) {
	fix := newAdminFixture()
	fix.admin.IsAdmin = false
	fix.routeUsers(&entity.User{ID: uuid.New(), SellerProfile: &entity.SellerProfile{}})

	_, err := fix.srv.VerifySeller(context.Background(), fix.admin.ID, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = fix.srv.VerifyDriver(context.Background(), fix.admin.ID, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestAdminService_ListUsers(t *testing.T) {
	fix := newAdminFixture()

	fix.factory.userRepo.listFn = func(_ context.Context, limit, offset int) ([]*entity.User, error) {
		assert.Equal(t, 100, limit)
		assert.Equal(t, 40, offset)

		return []*entity.User{{ID: uuid.New()}}, nil
	}

	users, err := fix.srv.ListUsers(context.Background(), usecase.Page{Limit: 250, Offset: 40})
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
