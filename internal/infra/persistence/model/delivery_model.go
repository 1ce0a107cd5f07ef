package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryModel is the GORM-specific struct for the 'deliveries' table.
// DriverID stays NULL until a driver wins the conditional assignment.
type DeliveryModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;unique"`
	DriverID      *uuid.UUID      `gorm:"type:uuid;index"`
	Status        string          `gorm:"type:text;not null;default:'available';index"`
	PickupAddress string          `gorm:"type:text;not null"`
	DropAddress   string          `gorm:"type:text;not null"`
	CashCollected decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	AssignedAt    *time.Time
	PickedUpAt    *time.Time
	DeliveredAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (DeliveryModel) TableName() string {
	return "deliveries"
}
