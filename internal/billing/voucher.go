package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvy6922/caketeaadmin/internal/models"
)

// CheckVoucher reports why v cannot be applied to subtotal at the given time.
// The validity window includes both its start and end instants.
func CheckVoucher(v *models.Voucher, at time.Time, subtotal int64) error {
	switch {
	case !v.IsActive:
		return ErrVoucherInactive
	case at.Before(v.StartDate):
		return fmt.Errorf("%w: starts %s", ErrVoucherNotStarted, v.StartDate.Format(time.DateOnly))
	case at.After(v.EndDate):
		return fmt.Errorf("%w: ended %s", ErrVoucherExpired, v.EndDate.Format(time.DateOnly))
	case subtotal < v.MinimumAmount:
		return fmt.Errorf("%w: %d < %d", ErrVoucherBelowMinimum, subtotal, v.MinimumAmount)
	}
	return nil
}

// VoucherDiscount is the discount v grants on subtotal, rounded to a whole
// amount and never more than the subtotal itself
func VoucherDiscount(v *models.Voucher, subtotal int64) int64 {
	if subtotal <= 0 || !v.Discount.IsPositive() {
		return 0
	}
	discount, ok := models.WholeAmount(decimal.NewFromInt(subtotal).Mul(v.Discount))
	if !ok || discount > subtotal {
		return subtotal
	}
	return discount
}

// Quote applies v to subtotal at the given time
func Quote(v *models.Voucher, at time.Time, subtotal int64) (models.VoucherQuote, error) {
	if err := CheckVoucher(v, at, subtotal); err != nil {
		return models.VoucherQuote{}, err
	}
	discount := VoucherDiscount(v, subtotal)
	return models.VoucherQuote{
		Code:     v.Code,
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal - discount,
	}, nil
}

// VoucherUsage tallies the orders that carried each voucher code, keyed by
// upper-cased code. Cancelled orders are not counted.
func VoucherUsage(orders []*models.Order) map[string]models.VoucherUsage {
	usage := make(map[string]models.VoucherUsage)
	for _, order := range orders {
		if order.VoucherCode == nil || !models.IsVoucherCode(*order.VoucherCode) {
			continue
		}
		if order.Status == models.OrderStatusCancelled {
			continue
		}
		key := VoucherKey(*order.VoucherCode)
		u := usage[key]
		u.Orders++
		u.Discount += order.VoucherDiscount
		usage[key] = u
	}
	return usage
}

// VoucherKey normalizes a voucher code for lookups
func VoucherKey(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
