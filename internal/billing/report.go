package billing

import (
	"sort"
	"strings"
	"time"

	"github.com/tuanvy6922/caketeaadmin/internal/models"
)

// DailySeries returns revenue per calendar day for the trailing days ending
// on ref's day, oldest first. Days without revenue are zero.
func DailySeries(orders []*models.Order, ref time.Time, days int) []models.DailyRevenue {
	if days < 1 {
		return []models.DailyRevenue{}
	}

	today := startOfDay(ref)
	series := make([]models.DailyRevenue, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		day := today.AddDate(0, 0, i-days+1)
		series[i].Date = day
		index[dayKey(day)] = i
	}

	for _, o := range orders {
		if !CountsTowardRevenue(o) || !o.HasDate() {
			continue
		}
		amount, ok := NormalizeAmount(o.TotalAmount)
		if !ok {
			continue
		}
		i, found := index[dayKey(o.Date.In(ref.Location()))]
		if !found {
			continue
		}
		series[i].Revenue += amount
		series[i].Orders++
	}

	return series
}

// TopProducts ranks products by units sold across non-cancelled orders.
// Ties are broken by name. n <= 0 returns every product.
func TopProducts(orders []*models.Order, n int) []models.ProductSales {
	byName := make(map[string]*models.ProductSales)
	for _, o := range orders {
		if o == nil || o.Status == models.OrderStatusCancelled {
			continue
		}
		for _, item := range o.Items {
			name := strings.TrimSpace(item.ProductName)
			if name == "" {
				continue
			}
			ps, ok := byName[name]
			if !ok {
				ps = &models.ProductSales{ProductName: name}
				byName[name] = ps
			}
			ps.QuantitySold += item.Quantity
			ps.Revenue += item.LineTotal()
		}
	}

	ranked := make([]models.ProductSales, 0, len(byName))
	for _, ps := range byName {
		ranked = append(ranked, *ps)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].QuantitySold != ranked[j].QuantitySold {
			return ranked[i].QuantitySold > ranked[j].QuantitySold
		}
		return ranked[i].ProductName < ranked[j].ProductName
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// StatusCounts tallies orders by status
func StatusCounts(orders []*models.Order) map[models.OrderStatus]int {
	counts := make(map[models.OrderStatus]int, len(models.OrderStatuses))
	for _, status := range models.OrderStatuses {
		counts[status] = 0
	}
	for _, o := range orders {
		if o != nil {
			counts[o.Status]++
		}
	}
	return counts
}
