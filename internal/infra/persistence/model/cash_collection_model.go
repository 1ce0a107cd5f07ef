package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashCollectionModel is the GORM-specific struct for the 'cash_collections' table.
// It tracks physical cash from driver collection through admin confirmation.
type CashCollectionModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;unique"`
	DriverID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status          string          `gorm:"type:text;not null;default:'pending';index"`
	AmountExpected  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	AmountCollected decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CollectedAt     *time.Time
	ConfirmedAt     *time.Time
	ConfirmedBy     *uuid.UUID `gorm:"type:uuid"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (CashCollectionModel) TableName() string {
	return "cash_collections"
}
