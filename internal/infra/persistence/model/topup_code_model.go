package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopupCodeModel is the GORM-specific struct for the 'topup_codes' table.
// A code is redeemable while RedeemedBy is NULL; redemption is a conditional
// update so a code can never be consumed twice.
type TopupCodeModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Code       string          `gorm:"type:varchar(32);unique;not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedBy  uuid.UUID       `gorm:"type:uuid;not null;index"`
	RedeemedBy *uuid.UUID      `gorm:"type:uuid;index"`
	RedeemedAt *time.Time
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (TopupCodeModel) TableName() string {
	return "topup_codes"
}
