package billing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tuanvy6922/caketeaadmin/internal/models"
)

// currency suffixes and thousands separators found in formatted totals
var amountReplacer = strings.NewReplacer(
	"đ", "",
	"₫", "",
	",", "",
	" ", "",
	"\u00a0", "",
)

// NormalizeAmount converts a stored total to an integer amount. It reports
// false for negative, unparsable or out of range values, which callers treat as zero.
func NormalizeAmount(a models.Amount) (int64, bool) {
	if !a.IsText() {
		if a.Value < 0 {
			return 0, false
		}
		return a.Value, true
	}

	cleaned := amountReplacer.Replace(strings.TrimSpace(a.Text))
	if cleaned == "" {
		return 0, false
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil || d.IsNegative() {
		return 0, false
	}
	return models.WholeAmount(d)
}
