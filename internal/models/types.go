package models

import (
	"time"
)

// Common constants
const (
	// DefaultPageSize matches the six rows per page of the admin tables
	DefaultPageSize = 6

	// Catalog and directory screens page differently from the order tables
	ProductPageSize  = 10
	CategoryPageSize = 5
	CustomerPageSize = 10
	VoucherPageSize  = 5

	// MaxPageSize caps page_size query parameters
	MaxPageSize = 100

	// DashboardTopProducts is the number of best sellers on the dashboard
	DashboardTopProducts = 3
)

// RevenueSummary holds the four revenue buckets. Amounts are in the smallest currency unit.
type RevenueSummary struct {
	Today int64 `json:"today"`
	Week  int64 `json:"week"`
	Month int64 `json:"month"`
	Total int64 `json:"total"`

	// Excluded counts qualifying orders left out for a missing date or a bad amount
	Excluded int `json:"excluded"`
}

// DailyRevenue is one point of a revenue chart
type DailyRevenue struct {
	Date    time.Time `json:"date"`
	Revenue int64     `json:"revenue"`
	Orders  int       `json:"orders"`
}

// ProductSales represents product sales data for reporting
type ProductSales struct {
	ProductName  string `json:"product_name"`
	QuantitySold int    `json:"quantity_sold"`
	Revenue      int64  `json:"revenue"`
}

// Dashboard is the home screen overview
type Dashboard struct {
	GeneratedAt  time.Time           `json:"generated_at"`
	Revenue      RevenueSummary      `json:"revenue"`
	Last7Days    []DailyRevenue      `json:"last_7_days"`
	Last30Days   []DailyRevenue      `json:"last_30_days"`
	TopProducts  []ProductSales      `json:"top_products"`
	StatusCounts map[OrderStatus]int `json:"status_counts"`
	TotalOrders  int                 `json:"total_orders"`
	ActiveStaff  int                 `json:"active_staff"`
	TotalStaff   int                 `json:"total_staff"`
}

// OrderPage is one page of a filtered order listing
type OrderPage struct {
	Orders     []*Order       `json:"orders"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
	TotalCount int            `json:"total_count"`
	Revenue    RevenueSummary `json:"revenue"`
}

// StaffPage is one page of the staff directory
type StaffPage struct {
	Staff      []*Staff `json:"staff"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalPages int      `json:"total_pages"`
	TotalCount int      `json:"total_count"`
}
