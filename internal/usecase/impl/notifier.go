// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "jordanmarket/internal/delivery/context"
	"jordanmarket/internal/domain/entity"
	"jordanmarket/internal/domain/service"

	"github.com/google/uuid"
)

// publishNotification emits a notification event for async fan-out.
// Publishing is best-effort: a failure is logged and swallowed so workflow
// state changes never fail on the notification path.
func publishNotification(
	ctx context.Context,
	publisher service.EventPublisher,
	logger *slog.Logger,
	recipients []uuid.UUID,
	notifyType entity.NotificationType,
	title, message, refType string,
	refID uuid.UUID,
) {
	if publisher == nil || len(recipients) == 0 {
		return
	}

	recipientIDs := make([]string, 0, len(recipients))
	for _, id := range recipients {
		recipientIDs = append(recipientIDs, id.String())
	}

	event := &service.NotificationEvent{
		RequestID:    deliverycontext.GetRequestIDFromContext(ctx),
		RecipientIDs: recipientIDs,
		Type:         string(notifyType),
		Title:        title,
		Message:      message,
		RefType:      refType,
		RefID:        refID.String(),
	}

	if err := publisher.PublishNotificationEvent(ctx, event); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, logger).Warn("Failed to publish notification event",
			slog.String("type", string(notifyType)),
			slog.Any("error", err),
		)
	}
}
