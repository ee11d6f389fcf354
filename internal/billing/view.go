package billing

import (
	"time"

	"github.com/tuanvy6922/caketeaadmin/internal/models"
)

// View is the state behind one order table: the latest snapshot, the
// criteria and the current page. Changing any criterion returns to page 1.
// A View is not safe for concurrent use.
type View struct {
	orders   []*models.Order
	criteria models.FilterCriteria
	page     int
	pageSize int
}

// ViewResult is what a table renders
type ViewResult struct {
	Orders     []*models.Order
	Page       int
	PageSize   int
	TotalPages int
	TotalCount int
	Revenue    models.RevenueSummary
}

// NewView creates a view over an empty snapshot
func NewView(pageSize int) *View {
	if pageSize < 1 {
		pageSize = models.DefaultPageSize
	}
	return &View{
		criteria: models.DefaultCriteria(),
		page:     1,
		pageSize: pageSize,
	}
}

// Criteria returns the current criteria
func (v *View) Criteria() models.FilterCriteria { return v.criteria }

// Page returns the current page number
func (v *View) Page() int { return v.page }

// SetCriteria replaces every criterion
func (v *View) SetCriteria(c models.FilterCriteria) {
	v.criteria = c.Normalize()
	v.page = 1
}

func (v *View) SetQuery(query string) {
	v.criteria.Query = query
	v.page = 1
}

func (v *View) SetStatus(status string) {
	v.criteria.Status = status
	v.page = 1
}

func (v *View) SetStaff(staff string) {
	v.criteria.Staff = staff
	v.page = 1
}

func (v *View) SetPreset(preset models.DatePreset) {
	v.criteria.Preset = preset
	v.page = 1
}

// SetRange sets the explicit range. A zero DateRange clears it.
func (v *View) SetRange(r models.DateRange) {
	v.criteria.Range = r
	v.page = 1
}

// SetPage moves to page p without touching the criteria
func (v *View) SetPage(p int) {
	v.page = p
}

// Refresh swaps in a new snapshot, keeping the criteria and pulling the
// page back inside the new page count.
func (v *View) Refresh(snapshot []*models.Order, now time.Time) {
	v.orders = snapshot
	filtered := Filter(v.orders, v.criteria, now)
	totalPages := (len(filtered) + v.pageSize - 1) / v.pageSize
	if v.page > totalPages {
		v.page = totalPages
	}
	if v.page < 1 {
		v.page = 1
	}
}

// Result filters the snapshot, slices the current page and sums revenue
// over the filtered set.
func (v *View) Result(now time.Time) ViewResult {
	filtered := Filter(v.orders, v.criteria, now)
	page, _ := Paginate(filtered, v.pageSize, v.page)
	return ViewResult{
		Orders:     page.Items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
		TotalCount: page.TotalCount,
		Revenue:    Aggregate(filtered, now),
	}
}
