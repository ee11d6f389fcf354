package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvy6922/caketeaadmin/internal/adapters/storage"
	"github.com/tuanvy6922/caketeaadmin/internal/models"
)

// OrderService defines the business operations on orders
type OrderService interface {
	// Listing
	ListOrders(ctx context.Context, req *ListOrdersRequest) (*models.OrderPage, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	FilterOrders(ctx context.Context, criteria models.FilterCriteria) ([]*models.Order, models.RevenueSummary, error)

	// Writes guarded by the status gate
	UpdateStatus(ctx context.Context, id string, req *UpdateStatusRequest) (*models.Order, error)
	UpdateDeliveryStatus(ctx context.Context, id string, req *UpdateDeliveryRequest) (*models.Order, error)
	AssignStaff(ctx context.Context, id string, req *AssignStaffRequest) (*models.Order, error)

	// Bulk load from the ordering app
	ImportOrders(ctx context.Context, orders []*models.Order) (int, error)

	// Subscribe streams a fresh page now and after every committed change
	// until ctx is done. The channel keeps only the latest page.
	Subscribe(ctx context.Context, req *ListOrdersRequest) (<-chan *models.OrderPage, error)
}

// DashboardService builds the home screen overview
type DashboardService interface {
	GetDashboard(ctx context.Context) (*models.Dashboard, error)
}

// StaffService defines the business operations on the staff directory
type StaffService interface {
	SearchStaff(ctx context.Context, req *SearchStaffRequest) (*models.StaffPage, error)
	GetStaff(ctx context.Context, id string) (*models.Staff, error)
	SaveStaff(ctx context.Context, id string, req *SaveStaffRequest) (*models.Staff, error)
	SetStaffState(ctx context.Context, id string, req *SetStaffStateRequest) (*models.Staff, error)
	ImportStaff(ctx context.Context, staff []*models.Staff) (int, error)
}

// CatalogService defines the business operations on categories and products
type CatalogService interface {
	ListCategories(ctx context.Context, req *ListCategoriesRequest) (*models.CategoryPage, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, req *SaveCategoryRequest) (*models.Category, error)
	RenameCategory(ctx context.Context, id string, req *SaveCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	SearchProducts(ctx context.Context, req *SearchProductsRequest) (*models.ProductPage, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, req *UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// ImportCatalog stores categories and products from the ordering app,
	// returning how many of each were written
	ImportCatalog(ctx context.Context, categories []*models.Category, products []*models.Product) (int, int, error)
}

// CustomerService defines the business operations on the app user directory
type CustomerService interface {
	SearchCustomers(ctx context.Context, req *SearchCustomersRequest) (*models.CustomerPage, error)
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id string, req *UpdateCustomerRequest) (*models.Customer, error)
	SetCustomerState(ctx context.Context, id string, req *SetCustomerStateRequest) (*models.Customer, error)
	ImportCustomers(ctx context.Context, customers []*models.Customer) (int, error)
}

// VoucherService defines the business operations on discount codes
type VoucherService interface {
	SearchVouchers(ctx context.Context, req *SearchVouchersRequest) (*models.VoucherPage, error)
	GetVoucher(ctx context.Context, id string) (*models.Voucher, error)
	CreateVoucher(ctx context.Context, req *CreateVoucherRequest) (*models.Voucher, error)
	SetVoucherActive(ctx context.Context, id string, req *SetVoucherActiveRequest) (*models.Voucher, error)
	DeleteVoucher(ctx context.Context, id string) error
	QuoteVoucher(ctx context.Context, req *QuoteVoucherRequest) (*models.VoucherQuote, error)
	ImportVouchers(ctx context.Context, vouchers []*models.Voucher) (int, error)
}

// ExportService generates and serves spreadsheet reports
type ExportService interface {
	ExportOrders(ctx context.Context, req *ExportRequest) (*ExportResult, error)
	ListExports(ctx context.Context) ([]storage.FileMetadata, error)
	GetExport(ctx context.Context, name string) ([]byte, *storage.FileMetadata, error)
}

// Request types

// ListOrdersRequest selects one page of filtered orders
type ListOrdersRequest struct {
	Criteria models.FilterCriteria `json:"criteria"`
	Page     int                   `json:"page" validate:"min=0"`
	PageSize int                   `json:"page_size" validate:"min=0,max=100"`
}

// UpdateStatusRequest represents a status change
type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
	Actor  string             `json:"-"`
}

// UpdateDeliveryRequest represents a delivery status change
type UpdateDeliveryRequest struct {
	DeliveryStatus models.DeliveryStatus `json:"delivery_status" validate:"required"`
	Actor          string                `json:"-"`
}

// AssignStaffRequest sets the order assignee. An empty StaffID unassigns.
type AssignStaffRequest struct {
	StaffID string `json:"staff_id" validate:"omitempty,email"`
	Actor   string `json:"-"`
}

// SearchStaffRequest selects one page of the staff directory
type SearchStaffRequest struct {
	Query    string            `json:"query,omitempty"`
	State    models.StaffState `json:"state,omitempty" validate:"omitempty,oneof=Active Inactive"`
	Page     int               `json:"page" validate:"min=0"`
	PageSize int               `json:"page_size" validate:"min=0,max=100"`
}

// SaveStaffRequest creates or updates a staff member
type SaveStaffRequest struct {
	FullName          string `json:"full_name" validate:"required,max=200"`
	PhoneNumber       string `json:"phone_number,omitempty"`
	StartActivityTime string `json:"start_activity_time,omitempty"`
	EndActivityTime   string `json:"end_activity_time,omitempty"`
	Role              string `json:"role,omitempty" validate:"omitempty,oneof=staff admin"`
}

// SetStaffStateRequest toggles a staff member
type SetStaffStateRequest struct {
	State models.StaffState `json:"state" validate:"required,oneof=Active Inactive"`
}

// ListCategoriesRequest selects one page of categories
type ListCategoriesRequest struct {
	Page     int `json:"page" validate:"min=0"`
	PageSize int `json:"page_size" validate:"min=0,max=100"`
}

// SaveCategoryRequest names a new or renamed category
type SaveCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// SearchProductsRequest selects one page of products
type SearchProductsRequest struct {
	Query    string               `json:"query,omitempty"`
	Category string               `json:"category,omitempty"`
	Status   models.ProductStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	Page     int                  `json:"page" validate:"min=0"`
	PageSize int                  `json:"page_size" validate:"min=0,max=100"`
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name              string            `json:"name" validate:"required,max=255"`
	Description       string            `json:"description,omitempty"`
	Category          string            `json:"category" validate:"required"`
	Prices            models.SizePrices `json:"prices"`
	ImageLink         string            `json:"imagelink_square,omitempty" validate:"omitempty,url"`
	Ingredients       string            `json:"ingredients,omitempty"`
	SpecialIngredient string            `json:"special_ingredient,omitempty"`
	Type              string            `json:"type,omitempty"`
}

// UpdateProductRequest represents a partial product update
type UpdateProductRequest struct {
	Name              *string               `json:"name,omitempty" validate:"omitempty,max=255"`
	Description       *string               `json:"description,omitempty"`
	Category          *string               `json:"category,omitempty"`
	Prices            *models.SizePrices    `json:"prices,omitempty"`
	ImageLink         *string               `json:"imagelink_square,omitempty" validate:"omitempty,url"`
	Ingredients       *string               `json:"ingredients,omitempty"`
	SpecialIngredient *string               `json:"special_ingredient,omitempty"`
	Type              *string               `json:"type,omitempty"`
	Status            *models.ProductStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// SearchCustomersRequest selects one page of the user directory
type SearchCustomersRequest struct {
	Query    string               `json:"query,omitempty"`
	State    models.CustomerState `json:"state,omitempty" validate:"omitempty,oneof=Available Blocked"`
	Page     int                  `json:"page" validate:"min=0"`
	PageSize int                  `json:"page_size" validate:"min=0,max=100"`
}

// UpdateCustomerRequest edits a user's profile
type UpdateCustomerRequest struct {
	FullName    string `json:"full_name" validate:"required,max=200"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty" validate:"max=500"`
	Role        string `json:"role" validate:"required,oneof=user admin"`
}

// SetCustomerStateRequest blocks or unblocks a user
type SetCustomerStateRequest struct {
	State models.CustomerState `json:"state" validate:"required,oneof=Available Blocked"`
}

// SearchVouchersRequest selects one page of vouchers
type SearchVouchersRequest struct {
	Query    string `json:"query,omitempty"`
	Page     int    `json:"page" validate:"min=0"`
	PageSize int    `json:"page_size" validate:"min=0,max=100"`
}

// CreateVoucherRequest creates a voucher. The discount is given in percent.
type CreateVoucherRequest struct {
	Code            string          `json:"code" validate:"required,max=50"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	StartDate       time.Time       `json:"start_date" validate:"required"`
	EndDate         time.Time       `json:"end_date" validate:"required"`
	MinimumAmount   int64           `json:"minimum_amount" validate:"min=0"`
}

// SetVoucherActiveRequest enables or disables a voucher
type SetVoucherActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// QuoteVoucherRequest prices a subtotal with a voucher code
type QuoteVoucherRequest struct {
	Code     string `json:"code" validate:"required"`
	Subtotal int64  `json:"subtotal" validate:"min=0"`
}

// ExportRequest selects the orders to export
type ExportRequest struct {
	Criteria models.FilterCriteria `json:"criteria"`
	Actor    string                `json:"-"`
}

// ExportResult describes a stored workbook
type ExportResult struct {
	Name        string                `json:"name"`
	Size        int64                 `json:"size"`
	OrderCount  int                   `json:"order_count"`
	Revenue     models.RevenueSummary `json:"revenue"`
	GeneratedAt time.Time             `json:"generated_at"`
}
