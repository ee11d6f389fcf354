package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvy6922/caketeaadmin/internal/billing"
	"github.com/tuanvy6922/caketeaadmin/internal/models"
	"github.com/tuanvy6922/caketeaadmin/internal/repositories"
)

func createVoucher(t *testing.T, env *testEnv, code, percent string, from, to time.Time, minimum int64) *models.Voucher {
	t.Helper()
	v, err := env.services.VoucherService.CreateVoucher(context.Background(), &CreateVoucherRequest{
		Code:            code,
		DiscountPercent: decimal.RequireFromString(percent),
		StartDate:       from,
		EndDate:         to,
		MinimumAmount:   minimum,
	})
	if err != nil {
		t.Fatalf("CreateVoucher(%s) error = %v", code, err)
	}
	return v
}

func TestCreateVoucher(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	svc := env.services.VoucherService
	from, to := refTime.AddDate(0, 0, -1), refTime.AddDate(0, 1, 0)

	v := createVoucher(t, env, " SALE15 ", "15", from, to, 50000)
	if v.Code != "SALE15" || !v.Discount.Equal(decimal.RequireFromString("0.15")) || !v.IsActive {
		t.Errorf("CreateVoucher() = %+v", v)
	}

	tests := []struct {
		name  string
		req   *CreateVoucherRequest
		check func(error) bool
	}{
		{"zero percent", &CreateVoucherRequest{Code: "ZERO", DiscountPercent: decimal.Zero, StartDate: from, EndDate: to}, IsValidation},
		{"above hundred", &CreateVoucherRequest{Code: "BIG", DiscountPercent: decimal.NewFromInt(120), StartDate: from, EndDate: to}, IsValidation},
		{"ends before start", &CreateVoucherRequest{Code: "BACK", DiscountPercent: decimal.NewFromInt(10), StartDate: to, EndDate: from}, IsValidation},
		{"missing dates", &CreateVoucherRequest{Code: "NODATE", DiscountPercent: decimal.NewFromInt(10)}, IsValidation},
		{"placeholder code", &CreateVoucherRequest{Code: models.NoVoucher, DiscountPercent: decimal.NewFromInt(10), StartDate: from, EndDate: to}, IsValidation},
		{"negative minimum", &CreateVoucherRequest{Code: "NEG", DiscountPercent: decimal.NewFromInt(10), StartDate: from, EndDate: to, MinimumAmount: -1}, IsValidation},
		{"duplicate code", &CreateVoucherRequest{Code: "sale15", DiscountPercent: decimal.NewFromInt(10), StartDate: from, EndDate: to}, repositories.IsDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateVoucher(ctx, tt.req)
			if !tt.check(err) {
				t.Errorf("CreateVoucher() error = %v", err)
			}
		})
	}
}

func TestSearchVouchersWithUsage(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	svc := env.services.VoucherService
	from := refTime.AddDate(0, -1, 0)

	for i, code := range []string{"SALE10", "SALE20", "FREESHIP", "SUMMER", "TET", "NEWBIE"} {
		createVoucher(t, env, code, "10", from, refTime.AddDate(0, 0, i+1), 0)
	}

	sale := "sale10"
	orders := []*models.Order{
		{ID: "v1", CustomerName: "An", CustomerID: "an@example.com", Date: at(0, 9), Status: models.OrderStatusCompleted,
			VoucherCode: &sale, VoucherDiscount: 5000, TotalAmount: models.AmountOf(45000)},
		{ID: "v2", CustomerName: "Binh", CustomerID: "binh@example.com", Date: at(1, 9), Status: models.OrderStatusCancelled,
			VoucherCode: &sale, VoucherDiscount: 5000, TotalAmount: models.AmountOf(45000)},
	}
	if _, err := env.services.OrderService.ImportOrders(ctx, orders); err != nil {
		t.Fatalf("ImportOrders() error = %v", err)
	}

	page, err := svc.SearchVouchers(ctx, nil)
	if err != nil {
		t.Fatalf("SearchVouchers() error = %v", err)
	}
	if page.TotalCount != 6 || page.TotalPages != 2 || len(page.Vouchers) != models.VoucherPageSize {
		t.Errorf("SearchVouchers() = %d items, %d pages, %d on page", page.TotalCount, page.TotalPages, len(page.Vouchers))
	}
	if page.Vouchers[0].Code != "NEWBIE" {
		t.Errorf("Expected latest end date first, got %s", page.Vouchers[0].Code)
	}

	matched, err := svc.SearchVouchers(ctx, &SearchVouchersRequest{Query: "sale"})
	if err != nil {
		t.Fatalf("SearchVouchers() error = %v", err)
	}
	if matched.TotalCount != 2 {
		t.Fatalf("SearchVouchers(sale) = %d, want 2", matched.TotalCount)
	}
	if got := matched.Usage["SALE10"]; got.Orders != 1 || got.Discount != 5000 {
		t.Errorf("SALE10 usage = %+v", got)
	}
	if got, ok := matched.Usage["SALE20"]; !ok || got.Orders != 0 {
		t.Errorf("SALE20 usage = %+v, %v", got, ok)
	}
}

func TestQuoteVoucher(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	svc := env.services.VoucherService

	live := createVoucher(t, env, "LIVE", "10", refTime.AddDate(0, 0, -1), refTime.AddDate(0, 0, 1), 30000)
	createVoucher(t, env, "OLD", "10", refTime.AddDate(0, -2, 0), refTime.AddDate(0, -1, 0), 0)

	quote, err := svc.QuoteVoucher(ctx, &QuoteVoucherRequest{Code: "live", Subtotal: 45000})
	if err != nil {
		t.Fatalf("QuoteVoucher() error = %v", err)
	}
	if quote.Discount != 4500 || quote.Total != 40500 {
		t.Errorf("QuoteVoucher() = %+v", quote)
	}

	tests := []struct {
		name  string
		req   *QuoteVoucherRequest
		check func(error) bool
	}{
		{"below minimum", &QuoteVoucherRequest{Code: "LIVE", Subtotal: 29999}, billing.IsVoucherRejected},
		{"expired", &QuoteVoucherRequest{Code: "OLD", Subtotal: 45000}, billing.IsVoucherRejected},
		{"unknown code", &QuoteVoucherRequest{Code: "NOPE", Subtotal: 45000}, repositories.IsNotFound},
		{"placeholder", &QuoteVoucherRequest{Code: models.NoVoucher, Subtotal: 45000}, IsValidation},
		{"negative subtotal", &QuoteVoucherRequest{Code: "LIVE", Subtotal: -1}, IsValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.QuoteVoucher(ctx, tt.req)
			if !tt.check(err) {
				t.Errorf("QuoteVoucher() error = %v", err)
			}
		})
	}

	off := false
	disabled, err := svc.SetVoucherActive(ctx, live.ID, &SetVoucherActiveRequest{Active: &off})
	if err != nil {
		t.Fatalf("SetVoucherActive() error = %v", err)
	}
	if disabled.IsActive {
		t.Error("Expected voucher to be disabled")
	}
	if _, err := svc.QuoteVoucher(ctx, &QuoteVoucherRequest{Code: "LIVE", Subtotal: 45000}); !billing.IsVoucherRejected(err) {
		t.Errorf("Expected disabled voucher to be rejected, got %v", err)
	}
	if _, err := svc.SetVoucherActive(ctx, live.ID, &SetVoucherActiveRequest{}); !IsValidation(err) {
		t.Errorf("Expected validation error without active flag, got %v", err)
	}

	if err := svc.DeleteVoucher(ctx, live.ID); err != nil {
		t.Fatalf("DeleteVoucher() error = %v", err)
	}
	if _, err := svc.GetVoucher(ctx, live.ID); !repositories.IsNotFound(err) {
		t.Errorf("Expected not found after delete, got %v", err)
	}
}
