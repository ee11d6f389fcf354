package billing

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tuanvy6922/caketeaadmin/internal/models"
)

func testVoucher(discount string, minimum int64) *models.Voucher {
	v := models.NewVoucher("SALE", decimal.RequireFromString(discount), refTime.AddDate(0, 0, -7), refTime.AddDate(0, 0, 7))
	v.MinimumAmount = minimum
	return v
}

func TestCheckVoucher(t *testing.T) {
	disabled := testVoucher("0.1", 0)
	disabled.IsActive = false

	tests := []struct {
		name     string
		voucher  *models.Voucher
		at       int
		subtotal int64
		want     error
	}{
		{"valid", testVoucher("0.1", 50000), 0, 50000, nil},
		{"first instant", testVoucher("0.1", 0), -7, 1, nil},
		{"last instant", testVoucher("0.1", 0), 7, 1, nil},
		{"disabled", disabled, 0, 50000, ErrVoucherInactive},
		{"not started", testVoucher("0.1", 0), -8, 50000, ErrVoucherNotStarted},
		{"expired", testVoucher("0.1", 0), 8, 50000, ErrVoucherExpired},
		{"below minimum", testVoucher("0.1", 50000), 0, 49999, ErrVoucherBelowMinimum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckVoucher(tt.voucher, refTime.AddDate(0, 0, tt.at), tt.subtotal)
			if tt.want == nil {
				if err != nil {
					t.Errorf("CheckVoucher() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) || !IsVoucherRejected(err) {
				t.Errorf("CheckVoucher() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestVoucherDiscount(t *testing.T) {
	tests := []struct {
		name     string
		discount string
		subtotal int64
		want     int64
	}{
		{"ten percent", "0.1", 125000, 12500},
		{"rounds half up", "0.15", 33333, 5000},
		{"whole subtotal", "1", 42000, 42000},
		{"zero subtotal", "0.5", 0, 0},
		{"largest subtotal", "1", math.MaxInt64, math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VoucherDiscount(testVoucher(tt.discount, 0), tt.subtotal)
			if got != tt.want {
				t.Errorf("VoucherDiscount(%s, %d) = %d, want %d", tt.discount, tt.subtotal, got, tt.want)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	q, err := Quote(testVoucher("0.2", 30000), refTime, 30000)
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}
	if q.Discount != 6000 || q.Total != 24000 || q.Code != "SALE" {
		t.Errorf("Quote() = %+v", q)
	}

	if _, err := Quote(testVoucher("0.2", 30000), refTime, 100); !errors.Is(err, ErrVoucherBelowMinimum) {
		t.Errorf("Expected minimum rejection, got %v", err)
	}
}

func TestVoucherUsage(t *testing.T) {
	withCode := func(id, code string, status models.OrderStatus, discount int64) *models.Order {
		o := testOrder(id, status, daysAgo(0), models.AmountOf(100000))
		o.VoucherCode = &code
		o.VoucherDiscount = discount
		return o
	}

	orders := []*models.Order{
		withCode("a", "SALE10", models.OrderStatusCompleted, 10000),
		withCode("b", " sale10", models.OrderStatusPending, 5000),
		withCode("c", "SALE10", models.OrderStatusCancelled, 7000),
		withCode("d", models.NoVoucher, models.OrderStatusCompleted, 0),
		withCode("e", "FREESHIP", models.OrderStatusConfirmed, 15000),
		testOrder("f", models.OrderStatusCompleted, daysAgo(0), models.AmountOf(1)),
	}

	usage := VoucherUsage(orders)
	if len(usage) != 2 {
		t.Fatalf("VoucherUsage() = %+v, want two codes", usage)
	}
	if got := usage["SALE10"]; got.Orders != 2 || got.Discount != 15000 {
		t.Errorf("SALE10 usage = %+v", got)
	}
	if got := usage["FREESHIP"]; got.Orders != 1 || got.Discount != 15000 {
		t.Errorf("FREESHIP usage = %+v", got)
	}
}
