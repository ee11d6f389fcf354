package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NoVoucher is the voucher code the ordering app writes when none was used
const NoVoucher = "Không có"

// Voucher is a discount code. Discount is a fraction of the subtotal, so 0.15 is 15%.
type Voucher struct {
	ID            string          `json:"id" db:"id"`
	Code          string          `json:"code" db:"code" validate:"required,max=50"`
	Discount      decimal.Decimal `json:"discount" db:"discount"`
	StartDate     time.Time       `json:"start_date" db:"start_date"`
	EndDate       time.Time       `json:"end_date" db:"end_date"`
	MinimumAmount int64           `json:"minimum_amount" db:"minimum_amount"`
	IsActive      bool            `json:"is_active" db:"is_active"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// NewVoucher creates an active voucher with a generated ID
func NewVoucher(code string, discount decimal.Decimal, start, end time.Time) *Voucher {
	return &Voucher{
		ID:        uuid.New().String(),
		Code:      strings.TrimSpace(code),
		Discount:  discount,
		StartDate: start,
		EndDate:   end,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
}

// IsVoucherCode reports whether code names a voucher rather than the
// "none" placeholder or an empty value
func IsVoucherCode(code string) bool {
	code = strings.TrimSpace(code)
	return code != "" && code != NoVoucher
}

// Validate validates the voucher data
func (v *Voucher) Validate() error {
	if !IsVoucherCode(v.Code) {
		return fmt.Errorf("voucher code is required")
	}

	if len(v.Code) > 50 {
		return fmt.Errorf("voucher code cannot exceed 50 characters")
	}

	if !v.Discount.IsPositive() || v.Discount.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("discount must be above 0%% and at most 100%%")
	}

	if v.MinimumAmount < 0 {
		return fmt.Errorf("minimum amount cannot be negative")
	}

	if v.StartDate.IsZero() || v.EndDate.IsZero() {
		return fmt.Errorf("start and end dates are required")
	}

	if v.EndDate.Before(v.StartDate) {
		return fmt.Errorf("end date is before start date")
	}

	return nil
}

// VoucherUsage counts the orders that carried a voucher code
type VoucherUsage struct {
	Orders   int   `json:"orders"`
	Discount int64 `json:"discount"`
}

// VoucherPage is one page of the voucher listing
type VoucherPage struct {
	Vouchers   []*Voucher              `json:"vouchers"`
	Usage      map[string]VoucherUsage `json:"usage"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"page_size"`
	TotalPages int                     `json:"total_pages"`
	TotalCount int                     `json:"total_count"`
}

// VoucherQuote is the result of applying a voucher to a subtotal
type VoucherQuote struct {
	Code     string `json:"code"`
	Subtotal int64  `json:"subtotal"`
	Discount int64  `json:"discount"`
	Total    int64  `json:"total"`
}
