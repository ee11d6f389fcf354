package billing

import (
	"fmt"

	"github.com/tuanvy6922/caketeaadmin/internal/models"
)

// CheckStatusChange validates moving an order from current to next.
// Completed and cancelled are final.
func CheckStatusChange(current, next models.OrderStatus) error {
	if !next.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, next)
	}
	if current.IsTerminal() {
		return fmt.Errorf("%w: order is %s", ErrTerminalStatus, current)
	}
	return nil
}

// CheckDeliveryChange validates a delivery status write. Delivery may change
// in any order state except cancelled.
func CheckDeliveryChange(orderStatus models.OrderStatus, next models.DeliveryStatus) error {
	if !next.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, next)
	}
	if orderStatus == models.OrderStatusCancelled {
		return ErrDeliveryLocked
	}
	return nil
}

// CheckAssignment validates changing the staff assignee of an order
func CheckAssignment(orderStatus models.OrderStatus) error {
	if orderStatus.IsTerminal() {
		return fmt.Errorf("%w: order is %s", ErrTerminalStatus, orderStatus)
	}
	return nil
}

// StatusEditable mirrors CheckStatusChange for rendering: false means the
// status control should be disabled.
func StatusEditable(o *models.Order) bool {
	return !o.Status.IsTerminal()
}

// DeliveryEditable reports whether the delivery control should be enabled
func DeliveryEditable(o *models.Order) bool {
	return o.Status != models.OrderStatusCancelled
}
