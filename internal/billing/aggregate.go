package billing

import (
	"time"

	"github.com/tuanvy6922/caketeaadmin/internal/models"
)

// CountsTowardRevenue reports whether an order's status qualifies it for
// revenue. Only completed orders count.
func CountsTowardRevenue(o *models.Order) bool {
	return o != nil && o.Status == models.OrderStatusCompleted
}

// Aggregate sums completed orders into the today, week, month and total
// buckets relative to ref. Qualifying orders without a date or with an
// amount that does not normalize are left out of every bucket and counted
// in Excluded.
func Aggregate(orders []*models.Order, ref time.Time) models.RevenueSummary {
	var summary models.RevenueSummary

	today := startOfDay(ref)
	weekFrom := today.AddDate(0, 0, -weekDays)
	monthFrom := today.AddDate(0, 0, -monthDays)

	for _, o := range orders {
		if !CountsTowardRevenue(o) {
			continue
		}

		amount, ok := NormalizeAmount(o.TotalAmount)
		if !ok || !o.HasDate() {
			summary.Excluded++
			continue
		}

		d := o.Date.In(ref.Location())
		summary.Total += amount
		if !d.Before(monthFrom) {
			summary.Month += amount
		}
		if !d.Before(weekFrom) {
			summary.Week += amount
		}
		if sameDay(d, today) {
			summary.Today += amount
		}
	}

	return summary
}
