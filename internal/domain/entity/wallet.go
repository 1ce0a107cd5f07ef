package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a wallet movement. The sign of a transaction is
// derived from its type at display time; amounts are stored as absolute values.
type TransactionType string

const (
	TxTopup       TransactionType = "topup"
	TxRefund      TransactionType = "refund"
	TxSaleCredit  TransactionType = "sale_credit"
	TxDeliveryFee TransactionType = "delivery_fee"
	TxPayment     TransactionType = "payment"
	TxPayout      TransactionType = "payout"
)

// IsCredit reports whether the type increases the wallet balance.
func (t TransactionType) IsCredit() bool {
	switch t {
	case TxTopup, TxRefund, TxSaleCredit, TxDeliveryFee:
		return true
	default:
		return false
	}
}

// Signed returns the amount with the display sign applied for this type.
func (t TransactionType) Signed(amount decimal.Decimal) decimal.Decimal {
	if t.IsCredit() {
		return amount
	}

	return amount.Neg()
}

// Wallet holds the QANZ balance of one account. Balance never goes negative
// and is mutated only together with a recorded WalletTransaction.
type Wallet struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WalletTransaction is one recorded movement on a wallet.
type WalletTransaction struct {
	ID          uuid.UUID
	WalletID    uuid.UUID
	Type        TransactionType
	Amount      decimal.Decimal
	Description string
	RefType     string
	RefID       *uuid.UUID
	CreatedAt   time.Time
}
