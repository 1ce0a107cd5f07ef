package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"jordanmarket/internal/domain/entity"
	"jordanmarket/internal/domain/repository"
	"jordanmarket/internal/domain/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Hand-rolled fakes with overridable func fields. A call on an unset func
// panics so tests fail loudly when a path touches an unexpected dependency.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeUserRepo struct {
	findByIDFn    func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	findByEmailFn func(ctx context.Context, email string) (*entity.User, error)
	createFn      func(ctx context.Context, user *entity.User) error
	updateFn      func(ctx context.Context, user *entity.User) error
	listFn        func(ctx context.Context, limit, offset int) ([]*entity.User, error)
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return f.findByEmailFn(ctx, email)
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	return f.createFn(ctx, user)
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	return f.updateFn(ctx, user)
}

func (f *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	return f.listFn(ctx, limit, offset)
}

type fakeProductRepo struct {
	findByIDFn       func(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	listActiveFn     func(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	listBySellerFn   func(ctx context.Context, sellerID uuid.UUID, includeInactive bool) ([]*entity.Product, error)
	createFn         func(ctx context.Context, product *entity.Product) error
	updateFn         func(ctx context.Context, product *entity.Product) error
	decrementStockFn func(ctx context.Context, id uuid.UUID, quantity int) error
	setActiveFn      func(ctx context.Context, id, sellerID uuid.UUID, active bool) error
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeProductRepo) ListActive(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return f.listActiveFn(ctx, limit, offset)
}

func (f *fakeProductRepo) ListBySeller(ctx context.Context, sellerID uuid.UUID, includeInactive bool) ([]*entity.Product, error) {
	return f.listBySellerFn(ctx, sellerID, includeInactive)
}

func (f *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return f.createFn(ctx, product)
}

func (f *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	return f.updateFn(ctx, product)
}

func (f *fakeProductRepo) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	return f.decrementStockFn(ctx, id, quantity)
}

func (f *fakeProductRepo) SetActive(ctx context.Context, id, sellerID uuid.UUID, active bool) error {
	return f.setActiveFn(ctx, id, sellerID, active)
}

type fakeOrderRepo struct {
	createFn       func(ctx context.Context, order *entity.Order) error
	findByIDFn     func(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	listByBuyerFn  func(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]*entity.Order, error)
	listBySellerFn func(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]*entity.Order, error)
	updateStatusFn func(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) error
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	return f.createFn(ctx, order)
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeOrderRepo) ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	return f.listByBuyerFn(ctx, buyerID, limit, offset)
}

func (f *fakeOrderRepo) ListBySeller(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	return f.listBySellerFn(ctx, sellerID, limit, offset)
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) error {
	return f.updateStatusFn(ctx, id, from, to)
}

type fakeDeliveryRepo struct {
	createFn        func(ctx context.Context, delivery *entity.Delivery) error
	findByIDFn      func(ctx context.Context, id uuid.UUID) (*entity.Delivery, error)
	findByOrderIDFn func(ctx context.Context, orderID uuid.UUID) (*entity.Delivery, error)
	listAvailableFn func(ctx context.Context, limit, offset int) ([]*entity.Delivery, error)
	listByDriverFn  func(ctx context.Context, driverID uuid.UUID, limit, offset int) ([]*entity.Delivery, error)
	assignFn        func(ctx context.Context, id, driverID uuid.UUID, at time.Time) error
	markPickedUpFn  func(ctx context.Context, id, driverID uuid.UUID, at time.Time) error
	markDeliveredFn func(ctx context.Context, id, driverID uuid.UUID, at time.Time, cashCollected decimal.Decimal) error
	cancelFn        func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeDeliveryRepo) Create(ctx context.Context, delivery *entity.Delivery) error {
	return f.createFn(ctx, delivery)
}

func (f *fakeDeliveryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Delivery, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeDeliveryRepo) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Delivery, error) {
	return f.findByOrderIDFn(ctx, orderID)
}

func (f *fakeDeliveryRepo) ListAvailable(ctx context.Context, limit, offset int) ([]*entity.Delivery, error) {
	return f.listAvailableFn(ctx, limit, offset)
}

func (f *fakeDeliveryRepo) ListByDriver(ctx context.Context, driverID uuid.UUID, limit, offset int) ([]*entity.Delivery, error) {
	return f.listByDriverFn(ctx, driverID, limit, offset)
}

func (f *fakeDeliveryRepo) Assign(ctx context.Context, id, driverID uuid.UUID, at time.Time) error {
	return f.assignFn(ctx, id, driverID, at)
}

func (f *fakeDeliveryRepo) MarkPickedUp(ctx context.Context, id, driverID uuid.UUID, at time.Time) error {
	return f.markPickedUpFn(ctx, id, driverID, at)
}

func (f *fakeDeliveryRepo) MarkDelivered(ctx context.Context, id, driverID uuid.UUID, at time.Time, cashCollected decimal.Decimal) error {
	return f.markDeliveredFn(ctx, id, driverID, at, cashCollected)
}

func (f *fakeDeliveryRepo) Cancel(ctx context.Context, id uuid.UUID) error {
	return f.cancelFn(ctx, id)
}

type fakeCashRepo struct {
	createFn        func(ctx context.Context, collection *entity.CashCollection) error
	findByIDFn      func(ctx context.Context, id uuid.UUID) (*entity.CashCollection, error)
	findByOrderIDFn func(ctx context.Context, orderID uuid.UUID) (*entity.CashCollection, error)
	listByDriverFn  func(ctx context.Context, driverID uuid.UUID, limit, offset int) ([]*entity.CashCollection, error)
	listByStatusFn  func(ctx context.Context, status entity.CashStatus, limit, offset int) ([]*entity.CashCollection, error)
	markCollectedFn func(ctx context.Context, id, driverID uuid.UUID, amount decimal.Decimal, at time.Time) error
	confirmFn       func(ctx context.Context, id, adminID uuid.UUID, at time.Time) error
	summaryFn       func(ctx context.Context) (*entity.CashSummary, error)
}

func (f *fakeCashRepo) Create(ctx context.Context, collection *entity.CashCollection) error {
	return f.createFn(ctx, collection)
}

func (f *fakeCashRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.CashCollection, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeCashRepo) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.CashCollection, error) {
	return f.findByOrderIDFn(ctx, orderID)
}

func (f *fakeCashRepo) ListByDriver(ctx context.Context, driverID uuid.UUID, limit, offset int) ([]*entity.CashCollection, error) {
	return f.listByDriverFn(ctx, driverID, limit, offset)
}

func (f *fakeCashRepo) ListByStatus(ctx context.Context, status entity.CashStatus, limit, offset int) ([]*entity.CashCollection, error) {
	return f.listByStatusFn(ctx, status, limit, offset)
}

func (f *fakeCashRepo) MarkCollected(ctx context.Context, id, driverID uuid.UUID, amount decimal.Decimal, at time.Time) error {
	return f.markCollectedFn(ctx, id, driverID, amount, at)
}

func (f *fakeCashRepo) Confirm(ctx context.Context, id, adminID uuid.UUID, at time.Time) error {
	return f.confirmFn(ctx, id, adminID, at)
}

func (f *fakeCashRepo) Summary(ctx context.Context) (*entity.CashSummary, error) {
	return f.summaryFn(ctx)
}

type fakeWalletRepo struct {
	findByOwnerFn       func(ctx context.Context, ownerID uuid.UUID) (*entity.Wallet, error)
	createFn            func(ctx context.Context, wallet *entity.Wallet) error
	addToBalanceFn      func(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) error
	createTransactionFn func(ctx context.Context, tx *entity.WalletTransaction) error
	listTransactionsFn  func(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]*entity.WalletTransaction, error)
}

func (f *fakeWalletRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Wallet, error) {
	return f.findByOwnerFn(ctx, ownerID)
}

func (f *fakeWalletRepo) Create(ctx context.Context, wallet *entity.Wallet) error {
	return f.createFn(ctx, wallet)
}

func (f *fakeWalletRepo) AddToBalance(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) error {
	return f.addToBalanceFn(ctx, walletID, amount)
}

func (f *fakeWalletRepo) CreateTransaction(ctx context.Context, tx *entity.WalletTransaction) error {
	return f.createTransactionFn(ctx, tx)
}

func (f *fakeWalletRepo) ListTransactions(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]*entity.WalletTransaction, error) {
	return f.listTransactionsFn(ctx, walletID, limit, offset)
}

type fakeTopupCodeRepo struct {
	createFn func(ctx context.Context, code *entity.TopupCode) error
	listFn   func(ctx context.Context, limit, offset int) ([]*entity.TopupCode, error)
	redeemFn func(ctx context.Context, code string, userID uuid.UUID, at time.Time) (*entity.TopupCode, error)
}

func (f *fakeTopupCodeRepo) Create(ctx context.Context, code *entity.TopupCode) error {
	return f.createFn(ctx, code)
}

func (f *fakeTopupCodeRepo) List(ctx context.Context, limit, offset int) ([]*entity.TopupCode, error) {
	return f.listFn(ctx, limit, offset)
}

func (f *fakeTopupCodeRepo) Redeem(ctx context.Context, code string, userID uuid.UUID, at time.Time) (*entity.TopupCode, error) {
	return f.redeemFn(ctx, code, userID, at)
}

type fakeNotificationRepo struct {
	createFn      func(ctx context.Context, notification *entity.Notification) error
	listByUserFn  func(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]*entity.Notification, error)
	markReadFn    func(ctx context.Context, id, userID uuid.UUID) error
	markAllReadFn func(ctx context.Context, userID uuid.UUID) error
	countUnreadFn func(ctx context.Context, userID uuid.UUID) (int64, error)
}

func (f *fakeNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	return f.createFn(ctx, notification)
}

func (f *fakeNotificationRepo) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	return f.listByUserFn(ctx, userID, unreadOnly, limit, offset)
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return f.markReadFn(ctx, id, userID)
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return f.markAllReadFn(ctx, userID)
}

func (f *fakeNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return f.countUnreadFn(ctx, userID)
}

// fakeRepoFactory hands the same fakes to transactional and direct callers.
type fakeRepoFactory struct {
	userRepo         *fakeUserRepo
	productRepo      *fakeProductRepo
	orderRepo        *fakeOrderRepo
	deliveryRepo     *fakeDeliveryRepo
	cashRepo         *fakeCashRepo
	walletRepo       *fakeWalletRepo
	topupCodeRepo    *fakeTopupCodeRepo
	notificationRepo *fakeNotificationRepo
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository                 { return f.userRepo }
func (f *fakeRepoFactory) ProductRepo() repository.ProductRepository           { return f.productRepo }
func (f *fakeRepoFactory) OrderRepo() repository.OrderRepository               { return f.orderRepo }
func (f *fakeRepoFactory) DeliveryRepo() repository.DeliveryRepository         { return f.deliveryRepo }
func (f *fakeRepoFactory) CashRepo() repository.CashCollectionRepository       { return f.cashRepo }
func (f *fakeRepoFactory) WalletRepo() repository.WalletRepository             { return f.walletRepo }
func (f *fakeRepoFactory) TopupCodeRepo() repository.TopupCodeRepository       { return f.topupCodeRepo }
func (f *fakeRepoFactory) NotificationRepo() repository.NotificationRepository { return f.notificationRepo }

// fakeTxManager runs the callback inline against the fake factory.
type fakeTxManager struct {
	factory *fakeRepoFactory
}

func (f *fakeTxManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(f.factory)
}

type fakePublisher struct {
	events     []*service.NotificationEvent
	publishErr error
}

func (f *fakePublisher) PublishNotificationEvent(_ context.Context, event *service.NotificationEvent) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.events = append(f.events, event)

	return nil
}

func (f *fakePublisher) Close() error { return nil }

type fakeHasher struct {
	validateErr error
}

func (f *fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (f *fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

func (f *fakeHasher) ValidatePasswordStrength(string) error {
	return f.validateErr
}

type fakeTokenService struct {
	generateErr       error
	refreshClaims     *service.Claims
	validateRefreshErr error
}

func (f *fakeTokenService) GenerateTokens(userID uuid.UUID, roles []string) (string, string, error) {
	if f.generateErr != nil {
		return "", "", f.generateErr
	}

	return "access-" + userID.String(), "refresh-" + userID.String(), nil
}

func (f *fakeTokenService) ValidateAccessToken(string) (*service.Claims, error) {
	panic("unexpected ValidateAccessToken call")
}

func (f *fakeTokenService) ValidateRefreshToken(string) (*service.Claims, error) {
	if f.validateRefreshErr != nil {
		return nil, f.validateRefreshErr
	}

	return f.refreshClaims, nil
}

func (f *fakeTokenService) GetRefreshTokenDuration() time.Duration {
	return time.Hour
}

type fakeQRService struct {
	png      []byte
	parsedTo string
}

func (f *fakeQRService) GenerateTopupQR(string) ([]byte, error) {
	return f.png, nil
}

func (f *fakeQRService) ParseTopupQR(string) (string, error) {
	return f.parsedTo, nil
}
