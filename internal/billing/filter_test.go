package billing

import (
	"testing"
	"time"

	"github.com/tuanvy6922/caketeaadmin/internal/models"
)

func filterFixture() []*models.Order {
	a := testOrder("a", models.OrderStatusCompleted, daysAgo(0), models.AmountOf(100))
	a.CustomerName = "Nguyễn Văn An"
	a.StaffID = "staff1@example.com"

	b := testOrder("b", models.OrderStatusPending, daysAgo(1), models.AmountOf(200))
	b.CustomerName = "Trần Bình"
	b.CustomerID = "binh@cafe.vn"

	c := testOrder("c", models.OrderStatusCancelled, daysAgo(7), models.AmountOf(300))
	c.StaffID = "staff2@example.com"

	d := testOrder("d", models.OrderStatusCompleted, daysAgo(8), models.AmountOf(400))
	d.StaffID = "staff1@example.com"

	e := testOrder("e", models.OrderStatusConfirmed, daysAgo(30), models.AmountOf(500))
	f := testOrder("f", models.OrderStatusCompleted, daysAgo(31), models.AmountOf(600))
	g := testOrder("g", models.OrderStatusWaiting, nil, models.AmountOf(700))

	return []*models.Order{a, b, c, d, e, f, g}
}

func TestFilter(t *testing.T) {
	orders := filterFixture()
	day7 := time.Date(2024, 3, 7, 0, 0, 0, 0, ict)
	day8 := time.Date(2024, 3, 8, 0, 0, 0, 0, ict)

	tests := []struct {
		name     string
		criteria models.FilterCriteria
		want     []string
	}{
		{"identity", models.DefaultCriteria(), []string{"a", "b", "c", "d", "e", "f", "g"}},
		{"zero value behaves as all", models.FilterCriteria{}, []string{"a", "b", "c", "d", "e", "f", "g"}},
		{"whitespace query", models.FilterCriteria{Query: "   "}, []string{"a", "b", "c", "d", "e", "f", "g"}},
		{"query matches name case-insensitively", models.FilterCriteria{Query: "nguyễn"}, []string{"a"}},
		{"query matches customer id", models.FilterCriteria{Query: "CAFE.VN"}, []string{"b"}},
		{"status", models.FilterCriteria{Status: "completed"}, []string{"a", "d", "f"}},
		{"staff", models.FilterCriteria{Staff: "staff1@example.com"}, []string{"a", "d"}},
		{"today", models.FilterCriteria{Preset: models.DatePresetToday}, []string{"a"}},
		{"yesterday", models.FilterCriteria{Preset: models.DatePresetYesterday}, []string{"b"}},
		{"week includes day seven", models.FilterCriteria{Preset: models.DatePresetWeek}, []string{"a", "b", "c"}},
		{"month includes day thirty", models.FilterCriteria{Preset: models.DatePresetMonth}, []string{"a", "b", "c", "d", "e"}},
		{"range is inclusive", models.FilterCriteria{Range: models.DateRange{Start: &day7, End: &day8}}, []string{"c", "d"}},
		{"range open end", models.FilterCriteria{Range: models.DateRange{Start: &day8}}, []string{"a", "b", "c"}},
		{"range open start", models.FilterCriteria{Range: models.DateRange{End: &day7}}, []string{"d", "e", "f"}},
		{"range overrides preset", models.FilterCriteria{Preset: models.DatePresetToday, Range: models.DateRange{Start: &day7, End: &day7}}, []string{"d"}},
		{"predicates combine", models.FilterCriteria{Status: "completed", Staff: "staff1@example.com", Preset: models.DatePresetWeek}, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(orders, tt.criteria, refTime))
			if !equalIDs(got, tt.want) {
				t.Errorf("Filter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterRangeWinsOverWeek(t *testing.T) {
	jan := time.Date(2024, 1, 15, 12, 0, 0, 0, ict)
	orders := []*models.Order{
		testOrder("jan", models.OrderStatusCompleted, &jan, models.AmountOf(1)),
		testOrder("now", models.OrderStatusCompleted, daysAgo(0), models.AmountOf(1)),
	}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, ict)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, ict)

	got := ids(Filter(orders, models.FilterCriteria{
		Preset: models.DatePresetWeek,
		Range:  models.DateRange{Start: &start, End: &end},
	}, refTime))

	if !equalIDs(got, []string{"jan"}) {
		t.Errorf("Expected range to win over week preset, got %v", got)
	}
}

func TestFilterEndOfDayBoundary(t *testing.T) {
	lastSecond := time.Date(2024, 1, 31, 23, 59, 59, 0, ict)
	nextDay := time.Date(2024, 2, 1, 0, 0, 0, 0, ict)
	orders := []*models.Order{
		testOrder("in", models.OrderStatusCompleted, &lastSecond, models.AmountOf(1)),
		testOrder("out", models.OrderStatusCompleted, &nextDay, models.AmountOf(1)),
	}
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, ict)

	got := ids(Filter(orders, models.FilterCriteria{Range: models.DateRange{End: &end}}, refTime))
	if !equalIDs(got, []string{"in"}) {
		t.Errorf("Filter() = %v, want [in]", got)
	}
}

func TestFilterUsesReferenceLocation(t *testing.T) {
	// 20:00 UTC on the 14th is already the 15th in ICT
	utc := time.Date(2024, 3, 14, 20, 0, 0, 0, time.UTC)
	orders := []*models.Order{testOrder("late", models.OrderStatusCompleted, &utc, models.AmountOf(1))}

	got := Filter(orders, models.FilterCriteria{Preset: models.DatePresetToday}, refTime)
	if len(got) != 1 {
		t.Errorf("Expected order to fall on the local day, got %v", ids(got))
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	orders := filterFixture()
	before := ids(orders)

	Filter(orders, models.FilterCriteria{Status: "pending"}, refTime)

	if !equalIDs(ids(orders), before) {
		t.Errorf("Filter mutated its input: %v", ids(orders))
	}
}

func TestFilterEmpty(t *testing.T) {
	got := Filter(nil, models.DefaultCriteria(), refTime)
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", got)
	}
}
