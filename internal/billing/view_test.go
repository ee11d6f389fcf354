package billing

import (
	"fmt"
	"testing"

	"github.com/tuanvy6922/caketeaadmin/internal/models"
)

func snapshot(n int, status models.OrderStatus) []*models.Order {
	out := make([]*models.Order, n)
	for i := range out {
		out[i] = testOrder(fmt.Sprintf("o%02d", i), status, daysAgo(0), models.AmountOf(10))
	}
	return out
}

func TestViewCriteriaResetPage(t *testing.T) {
	setters := map[string]func(v *View){
		"query":    func(v *View) { v.SetQuery("x") },
		"status":   func(v *View) { v.SetStatus("completed") },
		"staff":    func(v *View) { v.SetStaff("s@example.com") },
		"preset":   func(v *View) { v.SetPreset(models.DatePresetWeek) },
		"range":    func(v *View) { v.SetRange(models.DateRange{Start: daysAgo(3)}) },
		"criteria": func(v *View) { v.SetCriteria(models.DefaultCriteria()) },
	}

	for name, set := range setters {
		t.Run(name, func(t *testing.T) {
			v := NewView(6)
			v.Refresh(snapshot(20, models.OrderStatusCompleted), refTime)
			v.SetPage(3)
			set(v)
			if v.Page() != 1 {
				t.Errorf("Page() = %d after %s change, want 1", v.Page(), name)
			}
		})
	}
}

func TestViewResult(t *testing.T) {
	v := NewView(6)
	orders := append(snapshot(10, models.OrderStatusCompleted), snapshot(3, models.OrderStatusPending)...)
	v.Refresh(orders, refTime)
	v.SetStatus("completed")
	v.SetPage(2)

	res := v.Result(refTime)
	if res.TotalCount != 10 || res.TotalPages != 2 || len(res.Orders) != 4 {
		t.Errorf("Result() = count %d pages %d len %d, want 10/2/4", res.TotalCount, res.TotalPages, len(res.Orders))
	}
	if res.Revenue.Total != 100 {
		t.Errorf("Revenue.Total = %d, want 100", res.Revenue.Total)
	}
}

func TestViewRefreshClampsPage(t *testing.T) {
	v := NewView(6)
	v.Refresh(snapshot(20, models.OrderStatusCompleted), refTime)
	v.SetPage(4)

	v.Refresh(snapshot(7, models.OrderStatusCompleted), refTime)
	if v.Page() != 2 {
		t.Errorf("Page() = %d after shrink, want 2", v.Page())
	}

	v.Refresh(nil, refTime)
	if v.Page() != 1 {
		t.Errorf("Page() = %d after empty snapshot, want 1", v.Page())
	}
}

func TestViewRefreshKeepsCriteria(t *testing.T) {
	v := NewView(6)
	v.SetQuery("o01")
	v.Refresh(snapshot(5, models.OrderStatusCompleted), refTime)

	if v.Criteria().Query != "o01" {
		t.Errorf("Criteria lost on refresh: %+v", v.Criteria())
	}
	if res := v.Result(refTime); res.TotalCount != 1 {
		t.Errorf("TotalCount = %d, want 1", res.TotalCount)
	}
}
