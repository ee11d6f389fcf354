package services

import (
	"errors"
)

var (
	// ErrValidation marks a rejected request
	ErrValidation = errors.New("validation failed")

	// ErrStaffInactive is returned when assigning an order to an inactive staff member
	ErrStaffInactive = errors.New("staff member is inactive")

	// ErrProtectedAccount is returned when editing or blocking an administrator account
	ErrProtectedAccount = errors.New("administrator accounts cannot be changed")
)

// IsValidation reports whether err is a rejected request
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
