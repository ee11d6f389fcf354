package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

var maxAmount = decimal.NewFromInt(math.MaxInt64)

// WholeAmount rounds d to a whole amount. It reports false when the
// rounded value does not fit in an int64.
func WholeAmount(d decimal.Decimal) (int64, bool) {
	d = d.Round(0)
	if d.GreaterThan(maxAmount) || d.LessThan(maxAmount.Neg()) {
		return 0, false
	}
	return d.IntPart(), true
}

// Amount is a money total that arrives either as a number or as a
// pre-formatted string such as "125,000đ". Only one form is set.
type Amount struct {
	Value int64
	Text  string
}

// AmountOf returns a numeric amount
func AmountOf(v int64) Amount {
	return Amount{Value: v}
}

// AmountText returns a textual amount that still needs normalizing
func AmountText(s string) Amount {
	return Amount{Text: s}
}

// IsText reports whether the amount is in its formatted string form
func (a Amount) IsText() bool {
	return a.Text != ""
}

func (a Amount) String() string {
	if a.IsText() {
		return a.Text
	}
	return strconv.FormatInt(a.Value, 10)
}

// MarshalJSON writes the amount back in the form it was received
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.IsText() {
		return json.Marshal(a.Text)
	}
	return []byte(strconv.FormatInt(a.Value, 10)), nil
}

// UnmarshalJSON accepts a JSON number, a JSON string or null
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*a = Amount{}

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		return json.Unmarshal(data, &a.Text)
	}

	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("invalid amount %s: %w", data, err)
	}
	v, ok := WholeAmount(d)
	if !ok {
		return fmt.Errorf("amount %s out of range", data)
	}
	a.Value = v
	return nil
}
