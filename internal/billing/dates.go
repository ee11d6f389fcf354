package billing

import "time"

const (
	weekDays  = 7
	monthDays = 30
)

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// dayKey identifies a calendar day in the location of t
func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
