package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// The use case layer drives transactions through it without depending on a
// specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back,
	// otherwise it is committed. All repository instances obtained from the
	// factory share the same transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repository instances bound to one transaction.
type RepositoryFactory interface {
	// UserRepo returns a UserRepository bound to the current transaction.
	UserRepo() UserRepository

	// ProductRepo returns a ProductRepository bound to the current transaction.
	ProductRepo() ProductRepository

	// OrderRepo returns an OrderRepository bound to the current transaction.
	OrderRepo() OrderRepository

	// DeliveryRepo returns a DeliveryRepository bound to the current transaction.
	DeliveryRepo() DeliveryRepository

	// CashRepo returns a CashCollectionRepository bound to the current transaction.
	CashRepo() CashCollectionRepository

	// WalletRepo returns a WalletRepository bound to the current transaction.
	WalletRepo() WalletRepository

	// TopupCodeRepo returns a TopupCodeRepository bound to the current transaction.
	TopupCodeRepo() TopupCodeRepository

	// NotificationRepo returns a NotificationRepository bound to the current transaction.
	NotificationRepo() NotificationRepository
}
