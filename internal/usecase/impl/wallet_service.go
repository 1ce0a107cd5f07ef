package impl

import (
	"context"
	"log/slog"
	"time"

	"jordanmarket/config"
	deliverycontext "jordanmarket/internal/delivery/context"
	"jordanmarket/internal/domain/entity"
	domainerrors "jordanmarket/internal/domain/errors"
	"jordanmarket/internal/domain/repository"
	"jordanmarket/internal/domain/service"
	"jordanmarket/internal/usecase"
	"jordanmarket/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

const (
	defaultCodeLength = 10

	// issueCodeAttempts bounds retries on the (astronomically unlikely)
	// generated-code collision.
	issueCodeAttempts = 3
)

// walletService implements the WalletUsecase interface.
type walletService struct {
	txManager  repository.TransactionManager
	walletRepo repository.WalletRepository
	topupRepo  repository.TopupCodeRepository
	userRepo   repository.UserRepository
	qrService  service.QRCodeService
	publisher  service.EventPublisher
	codeLength int
	logger     *slog.Logger
}

// WalletServiceParams holds dependencies for walletService, injected by Fx.
type WalletServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	WalletRepo repository.WalletRepository
	TopupRepo  repository.TopupCodeRepository
	UserRepo   repository.UserRepository
	QRService  service.QRCodeService
	Publisher  service.EventPublisher
	Config     *config.Config
	Logger     *slog.Logger
}

// NewWalletService is the constructor for walletService.
func NewWalletService(params WalletServiceParams) usecase.WalletUsecase {
	codeLength := defaultCodeLength
	if params.Config != nil && params.Config.Wallet != nil && params.Config.Wallet.CodeLength > 0 {
		codeLength = params.Config.Wallet.CodeLength
	}

	return &walletService{
		txManager:  params.TxManager,
		walletRepo: params.WalletRepo,
		topupRepo:  params.TopupRepo,
		userRepo:   params.UserRepo,
		qrService:  params.QRService,
		publisher:  params.Publisher,
		codeLength: codeLength,
		logger:     params.Logger,
	}
}

func (srv *walletService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetBalance returns the wallet balance, zero when no wallet row exists yet.
func (srv *walletService) GetBalance(ctx context.Context, ownerID uuid.UUID) (decimal.Decimal, error) {
	wallet, err := srv.walletRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrWalletNotFound) {
			return decimal.Zero, nil
		}

		return decimal.Zero, errors.Wrap(err, "failed to load wallet")
	}

	return wallet.Balance, nil
}

// ListTransactions returns the wallet's movements, newest first. An account
// without a wallet row has no movements.
func (srv *walletService) ListTransactions(ctx context.Context, ownerID uuid.UUID, page usecase.Page) ([]*entity.WalletTransaction, error) {
	wallet, err := srv.walletRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrWalletNotFound) {
			return []*entity.WalletTransaction{}, nil
		}

		return nil, errors.Wrap(err, "failed to load wallet")
	}
	page = page.Normalize()

	return srv.walletRepo.ListTransactions(ctx, wallet.ID, page.Limit, page.Offset)
}

// RedeemCode consumes a single-use top-up code and credits the wallet in one
// transaction. The conditional redeem guarded by redeemed_by IS NULL decides
// the race; the wallet credit only happens on the winning side.
func (srv *walletService) RedeemCode(ctx context.Context, ownerID uuid.UUID, codeValue string) (*usecase.RedeemOutput, error) {
	if codeValue == "" {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("top-up code is required")
	}

	var output *usecase.RedeemOutput
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		code, err := repoFactory.TopupCodeRepo().Redeem(ctx, codeValue, ownerID, time.Now())
		if err != nil {
			if errors.Is(err, repository.ErrCodeUnavailable) {
				return domainerrors.ErrInvalidOrUsedCode
			}

			return errors.Wrap(err, "failed to redeem top-up code")
		}

		walletRepo := repoFactory.WalletRepo()
		refID := code.ID
		balance, err := creditWallet(ctx, walletRepo, ownerID, code.Amount, &entity.WalletTransaction{
			Type:        entity.TxTopup,
			Amount:      code.Amount,
			Description: "Top-up code redeemed",
			RefType:     "topup_code",
			RefID:       &refID,
		})
		if err != nil {
			return err
		}

		output = &usecase.RedeemOutput{
			Amount:  code.Amount,
			Balance: balance,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Top-up code redeemed",
		slog.Any("ownerID", ownerID),
		slog.String("amount", util.FormatAmount(output.Amount)),
	)

	publishNotification(ctx, srv.publisher, srv.logger,
		[]uuid.UUID{ownerID},
		entity.NotifyWalletCredited,
		"Wallet topped up",
		util.FormatAmount(output.Amount)+" QANZ added to your wallet",
		"wallet", ownerID,
	)

	return output, nil
}

// IssueCode mints a single-use top-up code and renders its QR voucher.
func (srv *walletService) IssueCode(ctx context.Context, adminID uuid.UUID, amount decimal.Decimal) (*usecase.IssueCodeOutput, error) {
	if _, err := requireAdmin(ctx, srv.userRepo, adminID); err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("top-up amount must be positive")
	}

	var code *entity.TopupCode
	for attempt := 0; attempt < issueCodeAttempts; attempt++ {
		value, err := util.GenerateTopupCode(srv.codeLength)
		if err != nil {
			return nil, errors.Wrap(err, "failed to generate top-up code")
		}

		candidate := &entity.TopupCode{
			Code:      value,
			Amount:    amount,
			CreatedBy: adminID,
		}
		if err := srv.topupRepo.Create(ctx, candidate); err != nil {
			if errors.Is(err, domainerrors.ErrConflict) {
				continue
			}

			return nil, err
		}
		code = candidate

		break
	}
	if code == nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("could not allocate a unique top-up code")
	}

	qrPNG, err := srv.qrService.GenerateTopupQR(code.Code)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render top-up QR")
	}

	srv.log(ctx).Info("Top-up code issued",
		slog.Any("codeID", code.ID),
		slog.String("amount", util.FormatAmount(amount)),
	)

	return &usecase.IssueCodeOutput{Code: code, QRPNG: qrPNG}, nil
}

// ListCodes returns issued codes, newest first.
func (srv *walletService) ListCodes(ctx context.Context, page usecase.Page) ([]*entity.TopupCode, error) {
	page = page.Normalize()

	return srv.topupRepo.List(ctx, page.Limit, page.Offset)
}

// ensureWallet returns the owner's wallet, creating the row on first use.
// A concurrent first-credit race is resolved by re-reading after the unique
// owner constraint rejects the duplicate insert.
func ensureWallet(ctx context.Context, walletRepo repository.WalletRepository, ownerID uuid.UUID) (*entity.Wallet, error) {
	wallet, err := walletRepo.FindByOwner(ctx, ownerID)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, repository.ErrWalletNotFound) {
		return nil, errors.Wrap(err, "failed to load wallet")
	}

	wallet = &entity.Wallet{
		OwnerID: ownerID,
		Balance: decimal.Zero,
	}
	if createErr := walletRepo.Create(ctx, wallet); createErr != nil {
		if errors.Is(createErr, domainerrors.ErrConflict) {
			return walletRepo.FindByOwner(ctx, ownerID)
		}

		return nil, createErr
	}

	return wallet, nil
}

// creditWallet applies one credit movement and records its transaction.
// tx carries the movement metadata; WalletID is filled in here. Returns the
// balance after the credit.
func creditWallet(ctx context.Context, walletRepo repository.WalletRepository, ownerID uuid.UUID, amount decimal.Decimal, tx *entity.WalletTransaction) (decimal.Decimal, error) {
	wallet, err := ensureWallet(ctx, walletRepo, ownerID)
	if err != nil {
		return decimal.Zero, err
	}

	if err := walletRepo.AddToBalance(ctx, wallet.ID, amount); err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to credit wallet")
	}

	tx.WalletID = wallet.ID
	if err := walletRepo.CreateTransaction(ctx, tx); err != nil {
		return decimal.Zero, err
	}

	return wallet.Balance.Add(amount), nil
}
