package billing

import (
	"testing"

	"github.com/tuanvy6922/caketeaadmin/internal/models"
)

func TestDailySeries(t *testing.T) {
	orders := []*models.Order{
		testOrder("a", models.OrderStatusCompleted, daysAgo(0), models.AmountOf(100)),
		testOrder("b", models.OrderStatusCompleted, daysAgo(0), models.AmountText("50đ")),
		testOrder("c", models.OrderStatusCompleted, daysAgo(6), models.AmountOf(7)),
		testOrder("d", models.OrderStatusCompleted, daysAgo(7), models.AmountOf(1000)),
		testOrder("e", models.OrderStatusPending, daysAgo(1), models.AmountOf(1000)),
		testOrder("f", models.OrderStatusCompleted, nil, models.AmountOf(1000)),
	}

	series := DailySeries(orders, refTime, 7)
	if len(series) != 7 {
		t.Fatalf("len(series) = %d, want 7", len(series))
	}

	if !sameDay(series[0].Date, *daysAgo(6)) || !sameDay(series[6].Date, refTime) {
		t.Errorf("series spans %v to %v", series[0].Date, series[6].Date)
	}
	if series[6].Revenue != 150 || series[6].Orders != 2 {
		t.Errorf("today = %+v, want revenue 150 from 2 orders", series[6])
	}
	if series[0].Revenue != 7 {
		t.Errorf("oldest day revenue = %d, want 7", series[0].Revenue)
	}
	if series[5].Revenue != 0 {
		t.Errorf("yesterday revenue = %d, want 0", series[5].Revenue)
	}

	if len(DailySeries(orders, refTime, 0)) != 0 {
		t.Error("Expected empty series for zero days")
	}
}

func TestTopProducts(t *testing.T) {
	order := func(status models.OrderStatus, items ...models.LineItem) *models.Order {
		o := testOrder("x", status, daysAgo(0), models.AmountOf(0))
		o.Items = items
		return o
	}
	orders := []*models.Order{
		order(models.OrderStatusCompleted,
			models.LineItem{ProductName: "Latte", UnitPrice: 30, Quantity: 2},
			models.LineItem{ProductName: "Mocha", UnitPrice: 35, Quantity: 1}),
		order(models.OrderStatusPending,
			models.LineItem{ProductName: "Latte", UnitPrice: 30, Quantity: 1},
			models.LineItem{ProductName: "Cheesecake", UnitPrice: 40, Quantity: 3}),
		order(models.OrderStatusCancelled,
			models.LineItem{ProductName: "Mocha", UnitPrice: 35, Quantity: 10}),
		order(models.OrderStatusConfirmed,
			models.LineItem{ProductName: "Americano", UnitPrice: 25, Quantity: 1}),
	}

	top := TopProducts(orders, 3)
	want := []models.ProductSales{
		{ProductName: "Cheesecake", QuantitySold: 3, Revenue: 120},
		{ProductName: "Latte", QuantitySold: 3, Revenue: 90},
		{ProductName: "Americano", QuantitySold: 1, Revenue: 25},
	}

	if len(top) != len(want) {
		t.Fatalf("len(top) = %d, want %d", len(top), len(want))
	}
	for i := range want {
		if top[i] != want[i] {
			t.Errorf("top[%d] = %+v, want %+v", i, top[i], want[i])
		}
	}

	if all := TopProducts(orders, 0); len(all) != 4 {
		t.Errorf("Expected 4 products with n=0, got %d", len(all))
	}
}

func TestStatusCounts(t *testing.T) {
	counts := StatusCounts([]*models.Order{
		testOrder("a", models.OrderStatusCompleted, nil, models.AmountOf(0)),
		testOrder("b", models.OrderStatusCompleted, nil, models.AmountOf(0)),
		testOrder("c", models.OrderStatusPending, nil, models.AmountOf(0)),
	})

	if counts[models.OrderStatusCompleted] != 2 || counts[models.OrderStatusPending] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
	if _, ok := counts[models.OrderStatusCancelled]; !ok {
		t.Error("Expected every status to be present")
	}
}
