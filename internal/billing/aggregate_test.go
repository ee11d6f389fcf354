package billing

import (
	"math"
	"testing"

	"github.com/tuanvy6922/caketeaadmin/internal/models"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount models.Amount
		want   int64
		wantOK bool
	}{
		{"number", models.AmountOf(125000), 125000, true},
		{"zero", models.AmountOf(0), 0, true},
		{"negative number", models.AmountOf(-1), 0, false},
		{"formatted", models.AmountText("125,000đ"), 125000, true},
		{"dong sign with spaces", models.AmountText(" 1,250,000 ₫ "), 1250000, true},
		{"plain digits", models.AmountText("42000"), 42000, true},
		{"fraction rounds", models.AmountText("1,000.5đ"), 1001, true},
		{"garbage", models.AmountText("abc"), 0, false},
		{"only suffix", models.AmountText("đ"), 0, false},
		{"negative text", models.AmountText("-5,000đ"), 0, false},
		{"largest int64", models.AmountText("9,223,372,036,854,775,807đ"), math.MaxInt64, true},
		{"beyond int64", models.AmountText("99,999,999,999,999,999,999đ"), 0, false},
		{"rounds past int64", models.AmountText("9223372036854775807.5"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeAmount(tt.amount)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("NormalizeAmount(%v) = (%d, %v), want (%d, %v)", tt.amount, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestAggregate(t *testing.T) {
	orders := []*models.Order{
		testOrder("today", models.OrderStatusCompleted, daysAgo(0), models.AmountText("125,000đ")),
		testOrder("day7", models.OrderStatusCompleted, daysAgo(7), models.AmountOf(10)),
		testOrder("day8", models.OrderStatusCompleted, daysAgo(8), models.AmountOf(20)),
		testOrder("day30", models.OrderStatusCompleted, daysAgo(30), models.AmountOf(30)),
		testOrder("day31", models.OrderStatusCompleted, daysAgo(31), models.AmountOf(40)),
		testOrder("confirmed", models.OrderStatusConfirmed, daysAgo(0), models.AmountOf(1000)),
		testOrder("cancelled", models.OrderStatusCancelled, daysAgo(0), models.AmountOf(2000)),
		testOrder("undated", models.OrderStatusCompleted, nil, models.AmountOf(3000)),
		testOrder("bad", models.OrderStatusCompleted, daysAgo(0), models.AmountText("n/a")),
	}

	got := Aggregate(orders, refTime)
	want := models.RevenueSummary{
		Today:    125000,
		Week:     125010,
		Month:    125060,
		Total:    125100,
		Excluded: 2,
	}

	if got != want {
		t.Errorf("Aggregate() = %+v, want %+v", got, want)
	}
}

func TestAggregateCancelledNeverCounts(t *testing.T) {
	orders := []*models.Order{
		testOrder("x", models.OrderStatusCancelled, daysAgo(0), models.AmountOf(999999)),
		testOrder("y", models.OrderStatusCancelled, nil, models.AmountText("5,000đ")),
	}

	got := Aggregate(orders, refTime)
	if got != (models.RevenueSummary{}) {
		t.Errorf("Expected zero summary for cancelled orders, got %+v", got)
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	orders := []*models.Order{
		testOrder("a", models.OrderStatusCompleted, daysAgo(0), models.AmountOf(5)),
		testOrder("b", models.OrderStatusCompleted, daysAgo(3), models.AmountOf(7)),
		testOrder("c", models.OrderStatusCompleted, daysAgo(12), models.AmountOf(11)),
	}
	reversed := []*models.Order{orders[2], orders[1], orders[0]}

	if Aggregate(orders, refTime) != Aggregate(reversed, refTime) {
		t.Error("Aggregate depends on input order")
	}
}

func TestAggregateMonotonic(t *testing.T) {
	orders := []*models.Order{
		testOrder("a", models.OrderStatusCompleted, daysAgo(2), models.AmountOf(5)),
	}
	before := Aggregate(orders, refTime)

	orders = append(orders, testOrder("b", models.OrderStatusCompleted, daysAgo(0), models.AmountOf(3)))
	after := Aggregate(orders, refTime)

	if after.Today < before.Today || after.Week < before.Week || after.Month < before.Month || after.Total < before.Total {
		t.Errorf("Totals decreased: before %+v, after %+v", before, after)
	}
}
