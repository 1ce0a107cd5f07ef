package usecase

import (
	"context"

	"jordanmarket/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RedeemOutput returns the result of a successful code redemption.
type RedeemOutput struct {
	Amount  decimal.Decimal
	Balance decimal.Decimal
}

// IssueCodeOutput returns a freshly issued top-up code with its QR voucher.
type IssueCodeOutput struct {
	Code  *entity.TopupCode
	QRPNG []byte
}

// WalletUsecase defines the interface for the QANZ wallet and top-up ledger.
type WalletUsecase interface {
	// GetBalance returns the current balance. An account without a wallet row
	// reads as zero; the row is created lazily on first credit.
	GetBalance(ctx context.Context, ownerID uuid.UUID) (decimal.Decimal, error)

	ListTransactions(ctx context.Context, ownerID uuid.UUID, page Page) ([]*entity.WalletTransaction, error)

	// RedeemCode consumes a single-use top-up code and credits the wallet in
	// one transaction. A second redemption of the same code fails and credits
	// nothing.
	RedeemCode(ctx context.Context, ownerID uuid.UUID, code string) (*RedeemOutput, error)

	// IssueCode mints a single-use code for the given QANZ amount (admin only)
	// and renders its QR voucher.
	IssueCode(ctx context.Context, adminID uuid.UUID, amount decimal.Decimal) (*IssueCodeOutput, error)

	ListCodes(ctx context.Context, page Page) ([]*entity.TopupCode, error)
}
