package models

import (
	"fmt"
	"strings"
	"time"
)

// StaffState toggles whether a staff member may take orders
type StaffState string

const (
	StaffActive   StaffState = "Active"
	StaffInactive StaffState = "Inactive"
)

// IsValid reports whether s is a known state
func (s StaffState) IsValid() bool {
	return s == StaffActive || s == StaffInactive
}

// Staff roles carried in access tokens
const (
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

// Staff is a shop employee. The email doubles as the identifier.
type Staff struct {
	ID                string     `json:"id" db:"id"`
	FullName          string     `json:"full_name" db:"full_name" validate:"required,max=200"`
	Email             string     `json:"email" db:"email" validate:"required,email"`
	PhoneNumber       string     `json:"phone_number,omitempty" db:"phone_number"`
	StartActivityTime string     `json:"start_activity_time,omitempty" db:"start_activity_time"`
	EndActivityTime   string     `json:"end_activity_time,omitempty" db:"end_activity_time"`
	State             StaffState `json:"state" db:"state"`
	Role              string     `json:"role" db:"role"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
}

// NewStaff creates an active staff member keyed by email
func NewStaff(fullName, email string) *Staff {
	email = strings.ToLower(strings.TrimSpace(email))
	return &Staff{
		ID:        email,
		FullName:  fullName,
		Email:     email,
		State:     StaffActive,
		Role:      RoleStaff,
		CreatedAt: time.Now(),
	}
}

// IsActive reports whether the staff member may be assigned orders
func (s *Staff) IsActive() bool {
	return s.State == StaffActive
}

// Roles returns the token roles for this staff member
func (s *Staff) Roles() []string {
	if s.Role == RoleAdmin {
		return []string{RoleStaff, RoleAdmin}
	}
	return []string{RoleStaff}
}

// Validate validates the staff data
func (s *Staff) Validate() error {
	if strings.TrimSpace(s.FullName) == "" {
		return fmt.Errorf("full name is required")
	}

	if !IsValidEmail(s.Email) {
		return fmt.Errorf("invalid email format")
	}

	if !IsValidPhone(s.PhoneNumber) {
		return fmt.Errorf("invalid phone number format")
	}

	if !IsValidClock(s.StartActivityTime) || !IsValidClock(s.EndActivityTime) {
		return fmt.Errorf("activity time must be HH:MM")
	}

	if !s.State.IsValid() {
		return fmt.Errorf("invalid staff state: %s", s.State)
	}

	if s.Role != RoleStaff && s.Role != RoleAdmin {
		return fmt.Errorf("invalid staff role: %s", s.Role)
	}

	return nil
}
