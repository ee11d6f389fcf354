package repositories

import (
	"context"

	"github.com/tuanvy6922/caketeaadmin/internal/models"
)

// OrderRepository stores orders with their line items
type OrderRepository interface {
	// List returns every order, newest first. Undated orders come last.
	List(ctx context.Context) ([]*models.Order, error)

	// GetByID retrieves an order with its line items
	GetByID(ctx context.Context, id string) (*models.Order, error)

	// Create inserts an order and its line items
	Create(ctx context.Context, order *models.Order) error

	// Upsert inserts or replaces orders by ID, returning how many were written
	Upsert(ctx context.Context, orders []*models.Order) (int, error)

	// UpdateStatus sets the status unless the stored order is completed or cancelled
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus, actor string) error

	// UpdateDeliveryStatus sets the delivery status unless the order is cancelled
	UpdateDeliveryStatus(ctx context.Context, id string, status models.DeliveryStatus, actor string) error

	// AssignStaff sets the assignee unless the order is completed or cancelled
	AssignStaff(ctx context.Context, id, staffID, staffName, actor string) error

	// Count returns the number of stored orders
	Count(ctx context.Context) (int64, error)
}

// StaffRepository stores the staff directory
type StaffRepository interface {
	// List returns every staff member ordered by name
	List(ctx context.Context) ([]*models.Staff, error)

	// GetByID retrieves a staff member by ID (their email)
	GetByID(ctx context.Context, id string) (*models.Staff, error)

	// Upsert inserts or updates a staff member
	Upsert(ctx context.Context, staff *models.Staff) error

	// SetState switches a staff member between Active and Inactive
	SetState(ctx context.Context, id string, state models.StaffState) error
}

// CategoryRepository stores the product categories
type CategoryRepository interface {
	// List returns every category, newest first
	List(ctx context.Context) ([]*models.Category, error)

	// GetByID retrieves a category by ID
	GetByID(ctx context.Context, id string) (*models.Category, error)

	// GetByName retrieves a category by name, ignoring ASCII case
	GetByName(ctx context.Context, name string) (*models.Category, error)

	// Create inserts a category. Names are unique ignoring ASCII case.
	Create(ctx context.Context, category *models.Category) error

	// Rename changes a category name and moves its products along with it
	Rename(ctx context.Context, id, name string) error

	// Delete removes a category that no product refers to
	Delete(ctx context.Context, id string) error
}

// ProductRepository stores the menu
type ProductRepository interface {
	// List returns every product, newest first
	List(ctx context.Context) ([]*models.Product, error)

	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id string) (*models.Product, error)

	// Create inserts a product at the end of the menu order
	Create(ctx context.Context, product *models.Product) error

	// Update replaces every field but created_at and the menu index
	Update(ctx context.Context, product *models.Product) error

	// Delete removes a product
	Delete(ctx context.Context, id string) error

	// CountByCategory returns how many products are filed under a category name
	CountByCategory(ctx context.Context, category string) (int64, error)
}

// CustomerRepository stores the ordering app's user directory
type CustomerRepository interface {
	// List returns every user ordered by name
	List(ctx context.Context) ([]*models.Customer, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*models.Customer, error)

	// Upsert inserts or updates a user
	Upsert(ctx context.Context, customer *models.Customer) error

	// SetState switches a user between Available and Blocked
	SetState(ctx context.Context, id string, state models.CustomerState) error
}

// VoucherRepository stores discount codes
type VoucherRepository interface {
	// List returns every voucher, latest end date first
	List(ctx context.Context) ([]*models.Voucher, error)

	// GetByID retrieves a voucher by ID
	GetByID(ctx context.Context, id string) (*models.Voucher, error)

	// GetByCode retrieves a voucher by code, ignoring ASCII case
	GetByCode(ctx context.Context, code string) (*models.Voucher, error)

	// Upsert inserts a voucher or replaces the one with the same ID
	Upsert(ctx context.Context, voucher *models.Voucher) error

	// SetActive enables or disables a voucher
	SetActive(ctx context.Context, id string, active bool) error

	// Delete removes a voucher
	Delete(ctx context.Context, id string) error
}
