package models

import (
	"fmt"
	"time"
)

// All disables the status and staff predicates
const All = "all"

// DatePreset is a named rolling date window
type DatePreset string

const (
	DatePresetAll       DatePreset = "all"
	DatePresetToday     DatePreset = "today"
	DatePresetYesterday DatePreset = "yesterday"
	DatePresetWeek      DatePreset = "week"
	DatePresetMonth     DatePreset = "month"
)

// IsValid reports whether p is a known preset
func (p DatePreset) IsValid() bool {
	switch p {
	case DatePresetAll, DatePresetToday, DatePresetYesterday, DatePresetWeek, DatePresetMonth:
		return true
	}
	return false
}

// DateRange is an inclusive calendar-day range. A nil side is unbounded.
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// IsSet reports whether either side of the range is present
func (r DateRange) IsSet() bool {
	return r.Start != nil || r.End != nil
}

// FilterCriteria selects orders for listing, aggregation and export
type FilterCriteria struct {
	Query  string     `json:"query,omitempty"`
	Status string     `json:"status"`
	Staff  string     `json:"staff"`
	Preset DatePreset `json:"date"`
	Range  DateRange  `json:"range"`
}

// DefaultCriteria matches every order
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		Status: All,
		Staff:  All,
		Preset: DatePresetAll,
	}
}

// Normalize fills empty selectors with "all"
func (c FilterCriteria) Normalize() FilterCriteria {
	if c.Status == "" {
		c.Status = All
	}
	if c.Staff == "" {
		c.Staff = All
	}
	if c.Preset == "" {
		c.Preset = DatePresetAll
	}
	return c
}

// Validate checks the selectors against the known values
func (c FilterCriteria) Validate() error {
	if c.Status != All && !OrderStatus(c.Status).IsValid() {
		return fmt.Errorf("invalid status filter: %s", c.Status)
	}

	if !c.Preset.IsValid() {
		return fmt.Errorf("invalid date filter: %s", c.Preset)
	}

	if c.Range.Start != nil && c.Range.End != nil && c.Range.End.Before(*c.Range.Start) {
		return fmt.Errorf("date range end is before start")
	}

	return nil
}
