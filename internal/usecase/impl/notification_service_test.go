package impl

import (
	"context"
	"testing"

	"jordanmarket/internal/domain/entity"
	domainerrors "jordanmarket/internal/domain/errors"
	"jordanmarket/internal/domain/repository"
	"jordanmarket/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotificationFixture() (*notificationService, *fakeNotificationRepo) {
	repo := &fakeNotificationRepo{}

	return &notificationService{
		notificationRepo: repo,
		logger:           testLogger(),
	}, repo
}

func TestNotificationService_Materialize(t *testing.T) {
	srv, repo := newNotificationFixture()

	first := uuid.New()
	second := uuid.New()
	refID := uuid.New()

	var created []*entity.Notification
	repo.createFn = func(_ context.Context, notification *entity.Notification) error {
		created = append(created, notification)

		return nil
	}

	err := srv.Materialize(context.Background(), &service.NotificationEvent{
		RecipientIDs: []string{first.String(), second.String()},
		Type:         string(entity.NotifyOrderPlaced),
		Title:        "New order received",
		Message:      "A buyer placed an order",
		RefType:      "order",
		RefID:        refID.String(),
	})
	require.NoError(t, err)

	require.Len(t, created, 2)
	assert.Equal(t, first, created[0].UserID)
	assert.Equal(t, second, created[1].UserID)
	assert.Equal(t, entity.NotifyOrderPlaced, created[0].Type)
	require.NotNil(t, created[0].RefID)
	assert.Equal(t, refID, *created[0].RefID)
}

func TestNotificationService_Materialize_SkipsBadRecipients(t *testing.T) {
	srv, repo := newNotificationFixture()

	good := uuid.New()
	var created []*entity.Notification
	repo.createFn = func(_ context.Context, notification *entity.Notification) error {
		created = append(created, notification)

		return nil
	}

	err := srv.Materialize(context.Background(), &service.NotificationEvent{
		RecipientIDs: []string{"not-a-uuid", good.String()},
		Type:         string(entity.NotifyOrderStatus),
		Title:        "Order update",
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, good, created[0].UserID)
}

func TestNotificationService_Materialize_ToleratesRowFailures(t *testing.T) {
	srv, repo := newNotificationFixture()

	calls := 0
	repo.createFn = func(_ context.Context, _ *entity.Notification) error {
		calls++
		if calls == 1 {
			return errors.New("insert failed")
		}

		return nil
	}

	err := srv.Materialize(context.Background(), &service.NotificationEvent{
		RecipientIDs: []string{uuid.New().String(), uuid.New().String()},
		Type:         string(entity.NotifyDeliveryUpdate),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestNotificationService_Materialize_MalformedRefID(t *testing.T) {
	srv, repo := newNotificationFixture()

	var created *entity.Notification
	repo.createFn = func(_ context.Context, notification *entity.Notification) error {
		created = notification

		return nil
	}

	err := srv.Materialize(context.Background(), &service.NotificationEvent{
		RecipientIDs: []string{uuid.New().String()},
		Type:         string(entity.NotifyOrderStatus),
		RefID:        "garbage",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Nil(t, created.RefID)
}

func TestNotificationService_Materialize_NilEvent(t *testing.T) {
	srv, _ := newNotificationFixture()

	err := srv.Materialize(context.Background(), nil)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestNotificationService_MarkRead_NotFound(t *testing.T) {
	srv, repo := newNotificationFixture()

	repo.markReadFn = func(_ context.Context, _, _ uuid.UUID) error {
		return repository.ErrNotificationNotFound
	}

	err := srv.MarkRead(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
