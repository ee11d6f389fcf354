package models

import (
	"fmt"
	"strings"
	"time"
)

// CustomerState is whether an app user may sign in and order
type CustomerState string

const (
	CustomerAvailable CustomerState = "Available"
	CustomerBlocked   CustomerState = "Blocked"
)

// IsValid reports whether s is a known state
func (s CustomerState) IsValid() bool {
	return s == CustomerAvailable || s == CustomerBlocked
}

// Customer roles as stored by the ordering app
const (
	CustomerRoleUser  = "user"
	CustomerRoleAdmin = "admin"
)

// Customer is a registered user of the ordering app
type Customer struct {
	ID          string        `json:"id" db:"id"`
	FullName    string        `json:"full_name" db:"full_name" validate:"required,max=200"`
	Email       string        `json:"email" db:"email" validate:"required,email"`
	PhoneNumber string        `json:"phone_number,omitempty" db:"phone_number"`
	Address     string        `json:"address,omitempty" db:"address"`
	Role        string        `json:"role" db:"role"`
	State       CustomerState `json:"state" db:"state"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// IsAdmin reports whether the account belongs to an administrator.
// Administrator accounts cannot be edited or blocked from the directory.
func (c *Customer) IsAdmin() bool {
	return strings.EqualFold(c.Role, CustomerRoleAdmin)
}

// Validate validates the customer data
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.FullName) == "" {
		return fmt.Errorf("full name is required")
	}

	if !IsValidEmail(c.Email) {
		return fmt.Errorf("invalid email format")
	}

	if !IsValidPhone(c.PhoneNumber) {
		return fmt.Errorf("invalid phone number format")
	}

	if !c.State.IsValid() {
		return fmt.Errorf("invalid customer state: %s", c.State)
	}

	role := strings.ToLower(c.Role)
	if role != CustomerRoleUser && role != CustomerRoleAdmin {
		return fmt.Errorf("invalid customer role: %s", c.Role)
	}

	return nil
}

// GetSearchableText returns the name and email matched by directory search
func (c *Customer) GetSearchableText() string {
	return c.FullName + " " + c.Email
}

// CustomerPage is one page of the user directory
type CustomerPage struct {
	Customers  []*Customer `json:"customers"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
	TotalCount int         `json:"total_count"`
}
