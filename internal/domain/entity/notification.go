package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies a user-facing notice.
type NotificationType string

const (
	NotifyOrderPlaced    NotificationType = "order_placed"
	NotifyOrderStatus    NotificationType = "order_status"
	NotifyOrderCancelled NotificationType = "order_cancelled"
	NotifyDeliveryUpdate NotificationType = "delivery_update"
	NotifyCashConfirmed  NotificationType = "cash_confirmed"
	NotifyWalletCredited NotificationType = "wallet_credited"
	NotifySellerVerified NotificationType = "seller_verified"
	NotifyDriverVerified NotificationType = "driver_verified"
)

// Notification is a best-effort user-facing notice created by workflow events.
// Creation is never transactional with the state change that caused it.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      NotificationType
	Title     string
	Message   string
	RefType   string
	RefID     *uuid.UUID
	IsRead    bool
	CreatedAt time.Time
}
