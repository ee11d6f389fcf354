package repositories

import (
	"context"
)

// TransactionManager manages database transactions. Repositories called with
// the context passed to fn take part in the transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// RepositoryManager provides access to all repositories and transaction management
type RepositoryManager interface {
	TransactionManager

	// Orders returns the order repository
	Orders() OrderRepository

	// Staff returns the staff repository
	Staff() StaffRepository

	// Categories returns the category repository
	Categories() CategoryRepository

	// Products returns the product repository
	Products() ProductRepository

	// Customers returns the user directory repository
	Customers() CustomerRepository

	// Vouchers returns the voucher repository
	Vouchers() VoucherRepository

	// Changes returns the feed that receives committed order changes
	Changes() *ChangeFeed

	// Health checks the health of the repository connections
	Health(ctx context.Context) error

	// Close closes all repository connections
	Close() error
}
