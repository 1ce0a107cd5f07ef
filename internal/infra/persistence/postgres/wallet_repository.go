package postgres

import (
	"context"

	"jordanmarket/internal/domain/entity"
	domainerrors "jordanmarket/internal/domain/errors"
	"jordanmarket/internal/domain/repository"
	"jordanmarket/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// walletRepository implements the domain.WalletRepository interface using GORM.
type walletRepository struct {
	db *gorm.DB
}

// NewWalletRepository is the constructor for walletRepository.
func NewWalletRepository(db *gorm.DB) repository.WalletRepository {
	return &walletRepository{db: db}
}

// FindByOwner retrieves the wallet of an account.
func (repo *walletRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Wallet, error) {
	var walletM model.WalletModel
	err := repo.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&walletM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrWalletNotFound
		}

		return nil, errors.Wrap(err, "failed to find wallet by owner")
	}

	return toWalletDomain(&walletM), nil
}

// Create persists a new wallet (lazy creation on first access).
func (repo *walletRepository) Create(ctx context.Context, wallet *entity.Wallet) error {
	walletM := fromWalletDomain(wallet)

	if err := repo.db.WithContext(ctx).Create(walletM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("wallet already exists for owner")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create wallet")
	}

	wallet.ID = walletM.ID
	wallet.CreatedAt = walletM.CreatedAt
	wallet.UpdatedAt = walletM.UpdatedAt

	return nil
}

// AddToBalance applies a server-side atomic balance increment.
// Debits carry a negative amount and are guarded by balance + amount >= 0, so
// the balance can never go negative even under concurrent spends.
func (repo *walletRepository) AddToBalance(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) error {
	result := repo.db.WithContext(ctx).
		Model(&model.WalletModel{}).
		Where("id = ? AND balance + ? >= 0", walletID, amount).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update wallet balance")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStaleStatus
	}

	return nil
}

// CreateTransaction records one wallet movement.
func (repo *walletRepository) CreateTransaction(ctx context.Context, tx *entity.WalletTransaction) error {
	txM := fromWalletTransactionDomain(tx)

	if err := repo.db.WithContext(ctx).Create(txM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrInvalidInput.WrapMessage("unknown wallet reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create wallet transaction")
	}

	tx.ID = txM.ID
	tx.CreatedAt = txM.CreatedAt

	return nil
}

// ListTransactions returns a wallet's movements, newest first.
func (repo *walletRepository) ListTransactions(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]*entity.WalletTransaction, error) {
	var txMs []*model.WalletTransactionModel
	err := repo.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list wallet transactions")
	}

	txs := make([]*entity.WalletTransaction, 0, len(txMs))
	for _, txM := range txMs {
		txs = append(txs, toWalletTransactionDomain(txM))
	}

	return txs, nil
}

// --- Mapper Functions ---

func toWalletDomain(data *model.WalletModel) *entity.Wallet {
	if data == nil {
		return nil
	}

	return &entity.Wallet{
		ID:        data.ID,
		OwnerID:   data.OwnerID,
		Balance:   data.Balance,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromWalletDomain(data *entity.Wallet) *model.WalletModel {
	if data == nil {
		return nil
	}

	return &model.WalletModel{
		ID:      data.ID,
		OwnerID: data.OwnerID,
		Balance: data.Balance,
	}
}

func toWalletTransactionDomain(data *model.WalletTransactionModel) *entity.WalletTransaction {
	if data == nil {
		return nil
	}

	return &entity.WalletTransaction{
		ID:          data.ID,
		WalletID:    data.WalletID,
		Type:        entity.TransactionType(data.Type),
		Amount:      data.Amount,
		Description: data.Description,
		RefType:     data.RefType,
		RefID:       data.RefID,
		CreatedAt:   data.CreatedAt,
	}
}

func fromWalletTransactionDomain(data *entity.WalletTransaction) *model.WalletTransactionModel {
	if data == nil {
		return nil
	}

	return &model.WalletTransactionModel{
		ID:          data.ID,
		WalletID:    data.WalletID,
		Type:        string(data.Type),
		Amount:      data.Amount,
		Description: data.Description,
		RefType:     data.RefType,
		RefID:       data.RefID,
	}
}
