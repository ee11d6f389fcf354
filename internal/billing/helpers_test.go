package billing

import (
	"time"

	"github.com/tuanvy6922/caketeaadmin/internal/models"
)

var ict = time.FixedZone("ICT", 7*60*60)

// 15 March 2024, mid-morning local time
var refTime = time.Date(2024, 3, 15, 10, 30, 0, 0, ict)

func daysAgo(n int) *time.Time {
	d := refTime.AddDate(0, 0, -n)
	return &d
}

func testOrder(id string, status models.OrderStatus, date *time.Time, amount models.Amount) *models.Order {
	return &models.Order{
		ID:             id,
		CustomerName:   "Customer " + id,
		CustomerID:     id + "@example.com",
		Date:           date,
		Status:         status,
		DeliveryStatus: models.DeliveryStatusPending,
		TotalAmount:    amount,
	}
}

func ids(orders []*models.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
