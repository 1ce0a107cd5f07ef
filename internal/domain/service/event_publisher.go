package service

import (
	"context"
)

// NotificationEvent is the fan-out payload published when a workflow state
// change should notify one or more users. The worker materializes one
// notification row per recipient.
type NotificationEvent struct {
	RequestID    string   `json:"request_id,omitempty"` // For distributed tracing
	RecipientIDs []string `json:"recipient_ids"`
	Type         string   `json:"type"`
	Title        string   `json:"title"`
	Message      string   `json:"message"`
	RefType      string   `json:"ref_type,omitempty"`
	RefID        string   `json:"ref_id,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue.
// Publishing is best-effort: workflow state changes never fail on publish errors.
type EventPublisher interface {
	// PublishNotificationEvent publishes a notification event for async processing.
	PublishNotificationEvent(ctx context.Context, event *NotificationEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
