package impl

import (
	"context"
	"log/slog"

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

// notificationService implements the NotificationUsecase interface.
type notificationService struct {
	notificationRepo repository.NotificationRepository
	logger           *slog.Logger
}

// NotificationServiceParams holds dependencies for notificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	NotificationRepo repository.NotificationRepository
	Logger           *slog.Logger
}

// NewNotificationService is the constructor for notificationService.
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		notificationRepo: params.NotificationRepo,
		logger:           params.Logger,
	}
}

func (srv *notificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListNotifications returns a user's notifications, newest first.
func (srv *notificationService) ListNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool, page usecase.Page) ([]*entity.Notification, error) {
	page = page.Normalize()

	return srv.notificationRepo.ListByUser(ctx, userID, unreadOnly, page.Limit, page.Offset)
}

// MarkRead flips one notification to read; re-reading is a no-op success.
func (srv *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if err := srv.notificationRepo.MarkRead(ctx, notificationID, userID); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("notification not found")
		}

		return errors.Wrap(err, "failed to mark notification read")
	}

	return nil
}

// MarkAllRead flips every unread notification of the user.
func (srv *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return srv.notificationRepo.MarkAllRead(ctx, userID)
}

// CountUnread returns the user's unread notification count.
func (srv *notificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return srv.notificationRepo.CountUnread(ctx, userID)
}

// Materialize fans one published event out into one notification row per
// recipient. Per-recipient failures are logged and skipped so one bad row
// never blocks the rest of the fan-out; the worker acks either way.
func (srv *notificationService) Materialize(ctx context.Context, event *service.NotificationEvent) error {
	if event == nil {
		return domainerrors.ErrInvalidInput.WrapMessage("missing notification event")
	}
	if len(event.RecipientIDs) == 0 {
		return nil
	}

	var refID *uuid.UUID
	if event.RefID != "" {
		parsed, err := uuid.Parse(event.RefID)
		if err != nil {
			srv.log(ctx).Warn("Notification event carries malformed ref id",
				slog.String("refID", event.RefID),
				slog.String("type", event.Type),
			)
		} else {
			refID = &parsed
		}
	}

	for _, recipient := range event.RecipientIDs {
		userID, err := uuid.Parse(recipient)
		if err != nil {
			srv.log(ctx).Warn("Skipping malformed notification recipient",
				slog.String("recipient", recipient),
				slog.String("type", event.Type),
			)

			continue
		}

		notification := &entity.Notification{
			UserID:  userID,
			Type:    entity.NotificationType(event.Type),
			Title:   event.Title,
			Message: event.Message,
			RefType: event.RefType,
			RefID:   refID,
		}
		if err := srv.notificationRepo.Create(ctx, notification); err != nil {
			srv.log(ctx).Warn("Failed to materialize notification",
				slog.Any("userID", userID),
				slog.String("type", event.Type),
				slog.Any("error", err),
			)

			continue
		}
	}

	return nil
}
