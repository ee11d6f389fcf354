package billing

import "errors"

var (
	// ErrTerminalStatus is returned when a completed or cancelled order is modified
	ErrTerminalStatus = errors.New("order status is final")

	// ErrDeliveryLocked is returned when delivery changes on a cancelled order
	ErrDeliveryLocked = errors.New("delivery status is locked on a cancelled order")

	// ErrInvalidStatus is returned for an unknown order or delivery status
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidPageSize is returned when a page size below one is requested
	ErrInvalidPageSize = errors.New("page size must be at least 1")
)

// IsPolicyViolation reports whether err was raised by the status gate
func IsPolicyViolation(err error) bool {
	return errors.Is(err, ErrTerminalStatus) || errors.Is(err, ErrDeliveryLocked)
}

// Voucher rejections
var (
	ErrVoucherInactive     = errors.New("voucher is disabled")
	ErrVoucherNotStarted   = errors.New("voucher is not valid yet")
	ErrVoucherExpired      = errors.New("voucher has expired")
	ErrVoucherBelowMinimum = errors.New("order is below the voucher minimum")
)

// IsVoucherRejected reports whether err explains why a voucher cannot be applied
func IsVoucherRejected(err error) bool {
	return errors.Is(err, ErrVoucherInactive) || errors.Is(err, ErrVoucherNotStarted) ||
		errors.Is(err, ErrVoucherExpired) || errors.Is(err, ErrVoucherBelowMinimum)
}
