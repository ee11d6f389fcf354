package sqlite

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"

	"github.com/tuanvy6922/caketeaadmin/internal/repositories"
)

// SQLiteRepositoryManager implements the RepositoryManager interface for SQLite
type SQLiteRepositoryManager struct {
	*SQLiteTransactionManager

	db           *sql.DB
	logger       *logrus.Logger
	feed         *repositories.ChangeFeed
	orderRepo    *OrderRepository
	staffRepo    *StaffRepository
	categoryRepo *CategoryRepository
	productRepo  *ProductRepository
	customerRepo *CustomerRepository
	voucherRepo  *VoucherRepository
}

// NewSQLiteRepositoryManager wires the repositories over an open, migrated database
func NewSQLiteRepositoryManager(db *sql.DB, logger *logrus.Logger) *SQLiteRepositoryManager {
	if logger == nil {
		logger = logrus.New()
	}

	feed := repositories.NewChangeFeed(logger)
	return &SQLiteRepositoryManager{
		SQLiteTransactionManager: NewSQLiteTransactionManager(db, feed, logger),
		db:                       db,
		logger:                   logger,
		feed:                     feed,
		orderRepo:                NewOrderRepository(db, feed, logger),
		staffRepo:                NewStaffRepository(db, logger),
		categoryRepo:             NewCategoryRepository(db, logger),
		productRepo:              NewProductRepository(db, logger),
		customerRepo:             NewCustomerRepository(db, logger),
		voucherRepo:              NewVoucherRepository(db, logger),
	}
}

// Orders returns the order repository
func (m *SQLiteRepositoryManager) Orders() repositories.OrderRepository {
	return m.orderRepo
}

// Staff returns the staff repository
func (m *SQLiteRepositoryManager) Staff() repositories.StaffRepository {
	return m.staffRepo
}

// Categories returns the category repository
func (m *SQLiteRepositoryManager) Categories() repositories.CategoryRepository {
	return m.categoryRepo
}

// Products returns the product repository
func (m *SQLiteRepositoryManager) Products() repositories.ProductRepository {
	return m.productRepo
}

// Customers returns the user directory repository
func (m *SQLiteRepositoryManager) Customers() repositories.CustomerRepository {
	return m.customerRepo
}

// Vouchers returns the voucher repository
func (m *SQLiteRepositoryManager) Vouchers() repositories.VoucherRepository {
	return m.voucherRepo
}

// Changes returns the order change feed
func (m *SQLiteRepositoryManager) Changes() *repositories.ChangeFeed {
	return m.feed
}

// Health checks the health of the database connection
func (m *SQLiteRepositoryManager) Health(ctx context.Context) error {
	if err := m.db.PingContext(ctx); err != nil {
		return repositories.NewRepositoryError("ping", "database", "", err)
	}
	return nil
}

// Close closes the database connection
func (m *SQLiteRepositoryManager) Close() error {
	m.logger.Info("Closing repository manager")
	return m.db.Close()
}

var _ repositories.RepositoryManager = (*SQLiteRepositoryManager)(nil)
