package usecase

import (
	"context"

	"jordanmarket/internal/domain/entity"
	"jordanmarket/internal/domain/service"

	"github.com/google/uuid"
)

// NotificationUsecase defines the interface for user-facing notices.
type NotificationUsecase interface {
	ListNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool, page Page) ([]*entity.Notification, error)

	// MarkRead is idempotent; re-reading a read notification succeeds.
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)

	// Materialize fans a published event out into one notification row per
	// recipient. It is called by the notifier worker, not by HTTP handlers.
	Materialize(ctx context.Context, event *service.NotificationEvent) error
}
