package models

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

// TestOrderCreation tests basic order creation and totals
func TestOrderCreation(t *testing.T) {
	items := []LineItem{
		{ProductName: "Trà sữa trân châu", Size: "M", UnitPrice: 35000, Quantity: 2},
		{ProductName: "Bánh tiramisu", UnitPrice: 45000, Quantity: 1},
	}
	order := NewOrder("Nguyễn Văn A", "a@example.com", items)

	if err := order.Validate(); err != nil {
		t.Errorf("Order validation failed: %v", err)
	}

	if order.ItemsSubtotal() != 115000 {
		t.Errorf("Expected subtotal 115000, got %d", order.ItemsSubtotal())
	}

	if order.TotalAmount.Value != 115000 {
		t.Errorf("Expected total 115000, got %d", order.TotalAmount.Value)
	}

	if order.ItemCount() != 3 {
		t.Errorf("Expected 3 units, got %d", order.ItemCount())
	}

	if !order.HasDate() {
		t.Error("Expected new order to be dated")
	}

	order.VoucherDiscount = 200000
	if order.ExpectedTotal() != 0 {
		t.Errorf("Expected total floored at 0, got %d", order.ExpectedTotal())
	}
}

func TestOrderValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *Order)
		wantErr bool
	}{
		{"valid", func(o *Order) {}, false},
		{"missing id", func(o *Order) { o.ID = " " }, true},
		{"unknown status", func(o *Order) { o.Status = "shipped" }, true},
		{"unknown delivery status", func(o *Order) { o.DeliveryStatus = "lost" }, true},
		{"zero quantity", func(o *Order) { o.Items[0].Quantity = 0 }, true},
		{"negative price", func(o *Order) { o.Items[0].UnitPrice = -1 }, true},
		{"blank product", func(o *Order) { o.Items[0].ProductName = "" }, true},
		{"negative discount", func(o *Order) { o.VoucherDiscount = -5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := NewOrder("A", "a@example.com", []LineItem{{ProductName: "Latte", UnitPrice: 30000, Quantity: 1}})
			tt.mutate(order)
			err := order.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	terminal := map[OrderStatus]bool{
		OrderStatusPending:   false,
		OrderStatusConfirmed: false,
		OrderStatusWaiting:   false,
		OrderStatusCompleted: true,
		OrderStatusCancelled: true,
	}
	for status, want := range terminal {
		if got := status.IsTerminal(); got != want {
			t.Errorf("%s.IsTerminal() = %v, want %v", status, got, want)
		}
	}
}

func TestAmountJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Amount
	}{
		{"integer", `125000`, AmountOf(125000)},
		{"float rounds", `99.6`, AmountOf(100)},
		{"formatted string", `"125,000đ"`, AmountText("125,000đ")},
		{"null", `null`, Amount{}},
		{"largest int64", `9223372036854775807`, AmountOf(math.MaxInt64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Amount
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Unmarshal() = %+v, want %+v", got, tt.want)
			}
		})
	}

	for _, input := range []string{`true`, `1e20`, `-9223372036854775809`} {
		var bad Amount
		if err := json.Unmarshal([]byte(input), &bad); err == nil {
			t.Errorf("Expected error for amount %s, got %+v", input, bad)
		}
	}

	out, err := json.Marshal(AmountText("50,000đ"))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != `"50,000đ"` {
		t.Errorf("Expected text form preserved, got %s", out)
	}
}

func TestFilterCriteriaValidate(t *testing.T) {
	jan1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jan31 := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		criteria FilterCriteria
		wantErr  bool
	}{
		{"default", DefaultCriteria(), false},
		{"normalized empty", FilterCriteria{}.Normalize(), false},
		{"known status", FilterCriteria{Status: "completed", Staff: All, Preset: DatePresetWeek}, false},
		{"unknown status", FilterCriteria{Status: "done", Staff: All, Preset: DatePresetAll}, true},
		{"unknown preset", FilterCriteria{Status: All, Staff: All, Preset: "year"}, true},
		{"ordered range", FilterCriteria{Status: All, Staff: All, Preset: DatePresetAll, Range: DateRange{Start: &jan1, End: &jan31}}, false},
		{"reversed range", FilterCriteria{Status: All, Staff: All, Preset: DatePresetAll, Range: DateRange{Start: &jan31, End: &jan1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.criteria.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStaffValidate(t *testing.T) {
	staff := NewStaff("Trần Thị B", " B@Example.com ")
	if staff.ID != "b@example.com" {
		t.Errorf("Expected normalized email ID, got %q", staff.ID)
	}
	if err := staff.Validate(); err != nil {
		t.Errorf("Staff validation failed: %v", err)
	}

	staff.PhoneNumber = "0912 345 678"
	staff.StartActivityTime = "07:30"
	staff.EndActivityTime = "22:00"
	if err := staff.Validate(); err != nil {
		t.Errorf("Staff validation failed: %v", err)
	}

	staff.EndActivityTime = "25:00"
	if err := staff.Validate(); err == nil {
		t.Error("Expected error for invalid activity time")
	}

	staff.EndActivityTime = ""
	staff.PhoneNumber = "12345"
	if err := staff.Validate(); err == nil {
		t.Error("Expected error for invalid phone")
	}

	admin := NewStaff("Admin", "admin@example.com")
	admin.Role = RoleAdmin
	if roles := admin.Roles(); len(roles) != 2 || roles[1] != RoleAdmin {
		t.Errorf("Expected staff and admin roles, got %v", roles)
	}
}
