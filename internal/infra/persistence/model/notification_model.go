package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationModel is the GORM-specific struct for the 'notifications' table.
// Rows are materialized by the notifier worker, one per recipient.
type NotificationModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type      string     `gorm:"type:text;not null"`
	Title     string     `gorm:"type:varchar(200);not null"`
	Message   string     `gorm:"type:text;not null"`
	RefType   string     `gorm:"type:text"`
	RefID     *uuid.UUID `gorm:"type:uuid"`
	IsRead    bool       `gorm:"not null;default:false;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (NotificationModel) TableName() string {
	return "notifications"
}
