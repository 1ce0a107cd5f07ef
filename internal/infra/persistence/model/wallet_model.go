package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletModel is the GORM-specific struct for the 'wallets' table.
// Balance mutations run as guarded atomic increments so it never goes negative.
type WalletModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OwnerID   uuid.UUID       `gorm:"type:uuid;not null;unique"`
	Balance   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Transactions []*WalletTransactionModel `gorm:"foreignKey:WalletID"`
}

// TableName explicitly sets the table name for GORM.
func (WalletModel) TableName() string {
	return "wallets"
}

// WalletTransactionModel is the GORM-specific struct for the 'wallet_transactions' table.
// Amounts are stored as absolute values; the sign is derived from Type.
type WalletTransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	WalletID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type        string          `gorm:"type:text;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description string          `gorm:"type:text"`
	RefType     string          `gorm:"type:text"`
	RefID       *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (WalletTransactionModel) TableName() string {
	return "wallet_transactions"
}
