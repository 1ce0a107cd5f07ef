package repository

import (
	"context"
	"errors"

	"jordanmarket/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrWalletNotFound is returned when a wallet row does not exist yet.
// Wallets are created lazily on first use, so callers treat this as "zero balance".
var ErrWalletNotFound = errors.New("wallet not found")

// WalletRepository defines the interface for QANZ wallet persistence.
type WalletRepository interface {
	// FindByOwner retrieves the wallet of an account.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Wallet, error)

	// Create persists a new wallet (lazy creation on first access).
	Create(ctx context.Context, wallet *entity.Wallet) error

	// AddToBalance applies a server-side atomic balance increment
	// (balance = balance + amount). Negative amounts debit the wallet and are
	// guarded by balance + amount >= 0; a miss returns ErrStaleStatus.
	AddToBalance(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) error

	// CreateTransaction records one wallet movement.
	CreateTransaction(ctx context.Context, tx *entity.WalletTransaction) error

	// ListTransactions returns a wallet's movements, newest first.
	ListTransactions(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]*entity.WalletTransaction, error)
}
