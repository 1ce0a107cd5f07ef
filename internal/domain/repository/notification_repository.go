package repository

import (
	"context"
	"errors"

	"jordanmarket/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrNotificationNotFound is returned when a notification is not found.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository defines the interface for user-facing notices.
type NotificationRepository interface {
	// Create persists a new notification.
	Create(ctx context.Context, notification *entity.Notification) error

	// ListByUser returns a user's notifications, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]*entity.Notification, error)

	// MarkRead flips is_read for one notification owned by the user.
	// Marking an already-read notification is a no-op success.
	MarkRead(ctx context.Context, id, userID uuid.UUID) error

	// MarkAllRead flips is_read for every unread notification of the user.
	MarkAllRead(ctx context.Context, userID uuid.UUID) error

	// CountUnread returns the user's unread notification count.
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}
