package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusWaiting   OrderStatus = "waiting"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every known order status in display order
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusWaiting,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// IsValid reports whether s is a known order status
func (s OrderStatus) IsValid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further status change is allowed
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// DeliveryStatus is tracked independently of OrderStatus
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
)

// IsValid reports whether s is a known delivery status
func (s DeliveryStatus) IsValid() bool {
	return s == DeliveryStatusPending || s == DeliveryStatusDelivered
}

// LineItem is one product line of an order. Prices are in the smallest currency unit.
type LineItem struct {
	ProductName string `json:"product_name" db:"product_name" validate:"required,max=200"`
	Size        string `json:"size,omitempty" db:"size" validate:"max=20"`
	UnitPrice   int64  `json:"unit_price" db:"unit_price" validate:"min=0"`
	Quantity    int    `json:"quantity" db:"quantity" validate:"min=1"`
}

// LineTotal returns unit price times quantity
func (li LineItem) LineTotal() int64 {
	return li.UnitPrice * int64(li.Quantity)
}

// Order represents a customer bill as stored by the ordering app
type Order struct {
	ID              string         `json:"id" db:"id" validate:"required"`
	CustomerName    string         `json:"customer_name" db:"customer_name" validate:"max=200"`
	CustomerID      string         `json:"customer_id" db:"customer_id" validate:"max=200"`
	Address         string         `json:"address,omitempty" db:"address"`
	PaymentMethod   string         `json:"payment_method,omitempty" db:"payment_method"`
	Date            *time.Time     `json:"date,omitempty" db:"order_date"`
	Items           []LineItem     `json:"items" validate:"dive"`
	Status          OrderStatus    `json:"status" db:"status" validate:"required"`
	DeliveryStatus  DeliveryStatus `json:"delivery_status" db:"delivery_status"`
	TotalAmount     Amount         `json:"total_amount" db:"total_amount"`
	VoucherCode     *string        `json:"voucher_code,omitempty" db:"voucher_code"`
	VoucherDiscount int64          `json:"voucher_discount,omitempty" db:"voucher_discount" validate:"min=0"`
	StaffID         string         `json:"staff_id,omitempty" db:"staff_id"`
	StaffName       string         `json:"staff_name,omitempty" db:"staff_name"`
	UpdatedBy       string         `json:"updated_by,omitempty" db:"updated_by"`
	UpdatedAt       *time.Time     `json:"updated_at,omitempty" db:"updated_at"`
}

// NewOrder creates a pending order dated now with a generated ID
func NewOrder(customerName, customerID string, items []LineItem) *Order {
	now := time.Now()
	o := &Order{
		ID:             uuid.New().String(),
		CustomerName:   customerName,
		CustomerID:     customerID,
		Date:           &now,
		Items:          items,
		Status:         OrderStatusPending,
		DeliveryStatus: DeliveryStatusPending,
	}
	o.TotalAmount = AmountOf(o.ExpectedTotal())
	return o
}

// HasDate reports whether the order carries a usable date
func (o *Order) HasDate() bool {
	return o.Date != nil && !o.Date.IsZero()
}

// ItemsSubtotal sums the line totals
func (o *Order) ItemsSubtotal() int64 {
	var sum int64
	for _, item := range o.Items {
		sum += item.LineTotal()
	}
	return sum
}

// ExpectedTotal is the subtotal minus the voucher discount, floored at zero
func (o *Order) ExpectedTotal() int64 {
	total := o.ItemsSubtotal() - o.VoucherDiscount
	if total < 0 {
		return 0
	}
	return total
}

// ItemCount returns the number of units across all lines
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// Validate validates the order data
func (o *Order) Validate() error {
	if strings.TrimSpace(o.ID) == "" {
		return fmt.Errorf("order ID is required")
	}

	if !o.Status.IsValid() {
		return fmt.Errorf("invalid order status: %s", o.Status)
	}

	if o.DeliveryStatus != "" && !o.DeliveryStatus.IsValid() {
		return fmt.Errorf("invalid delivery status: %s", o.DeliveryStatus)
	}

	for i, item := range o.Items {
		if strings.TrimSpace(item.ProductName) == "" {
			return fmt.Errorf("item %d: product name is required", i)
		}
		if item.UnitPrice < 0 {
			return fmt.Errorf("item %d: unit price cannot be negative", i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("item %d: quantity must be positive", i)
		}
	}

	if o.VoucherDiscount < 0 {
		return fmt.Errorf("voucher discount cannot be negative")
	}

	return nil
}

// OrderChangeKind names the write that produced an OrderChange
type OrderChangeKind string

const (
	OrderCreated         OrderChangeKind = "created"
	OrderStatusChanged   OrderChangeKind = "status"
	OrderDeliveryChanged OrderChangeKind = "delivery"
	OrderAssigned        OrderChangeKind = "assignee"
	OrdersImported       OrderChangeKind = "import"
)

// OrderChange is published after a committed write to the order store
type OrderChange struct {
	Kind    OrderChangeKind `json:"kind"`
	OrderID string          `json:"order_id,omitempty"`
	Actor   string          `json:"actor,omitempty"`
	At      time.Time       `json:"at"`
}
