// Package billing holds the order filter, revenue aggregation, pagination
// and status rules used by every order listing. Functions here are pure:
// they never mutate their inputs and never touch storage.
package billing

import (
	"strings"
	"time"

	"github.com/tuanvy6922/caketeaadmin/internal/models"
)

// Filter returns the orders matching every predicate of c, in input order.
// Predicates run as text, status, staff, then date. Calendar days are
// evaluated in now's location.
func Filter(orders []*models.Order, c models.FilterCriteria, now time.Time) []*models.Order {
	c = c.Normalize()
	match := datePredicate(c, now)
	query := strings.ToLower(strings.TrimSpace(c.Query))

	out := make([]*models.Order, 0, len(orders))
	for _, o := range orders {
		if o == nil {
			continue
		}
		if query != "" && !matchesText(o, query) {
			continue
		}
		if c.Status != models.All && string(o.Status) != c.Status {
			continue
		}
		if c.Staff != models.All && o.StaffID != c.Staff {
			continue
		}
		if match != nil && !match(o) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func matchesText(o *models.Order, query string) bool {
	return strings.Contains(strings.ToLower(o.CustomerName), query) ||
		strings.Contains(strings.ToLower(o.CustomerID), query)
}

// datePredicate returns nil when no date constraint applies. An explicit
// range replaces the preset.
func datePredicate(c models.FilterCriteria, now time.Time) func(*models.Order) bool {
	loc := now.Location()

	if c.Range.IsSet() {
		var from, until time.Time
		if c.Range.Start != nil {
			from = startOfDay(c.Range.Start.In(loc))
		}
		if c.Range.End != nil {
			until = startOfDay(c.Range.End.In(loc)).AddDate(0, 0, 1)
		}
		return func(o *models.Order) bool {
			if !o.HasDate() {
				return false
			}
			d := o.Date.In(loc)
			if !from.IsZero() && d.Before(from) {
				return false
			}
			if !until.IsZero() && !d.Before(until) {
				return false
			}
			return true
		}
	}

	today := startOfDay(now)
	var within func(d time.Time) bool
	switch c.Preset {
	case models.DatePresetToday:
		within = func(d time.Time) bool { return sameDay(d, today) }
	case models.DatePresetYesterday:
		yesterday := today.AddDate(0, 0, -1)
		within = func(d time.Time) bool { return sameDay(d, yesterday) }
	case models.DatePresetWeek:
		from := today.AddDate(0, 0, -weekDays)
		within = func(d time.Time) bool { return !d.Before(from) }
	case models.DatePresetMonth:
		from := today.AddDate(0, 0, -monthDays)
		within = func(d time.Time) bool { return !d.Before(from) }
	default:
		return nil
	}

	return func(o *models.Order) bool {
		return o.HasDate() && within(o.Date.In(loc))
	}
}
