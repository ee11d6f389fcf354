package models

import (
	"regexp"
	"strings"
)

// Email validation regex pattern
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Phone number validation regex (Vietnamese mobile format)
var phoneRegex = regexp.MustCompile(`^(\+84|0)[35789]\d{8}$`)

// 24-hour clock, HH:MM
var clockRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// IsValidEmail validates email format
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPhone validates Vietnamese phone number format
func IsValidPhone(phone string) bool {
	if phone == "" {
		return true // Optional field
	}
	cleaned := strings.ReplaceAll(strings.ReplaceAll(phone, " ", ""), "-", "")
	return phoneRegex.MatchString(cleaned)
}

// IsValidClock validates an optional HH:MM time of day
func IsValidClock(clock string) bool {
	if clock == "" {
		return true
	}
	return clockRegex.MatchString(clock)
}
