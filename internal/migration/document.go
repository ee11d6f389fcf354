package migration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvy6922/caketeaadmin/internal/models"
)

// Snapshot is a JSON export of the ordering app's document store
type Snapshot struct {
	Bills      []BillDocument     `json:"Bills"`
	Staffs     []StaffDocument    `json:"Staffs"`
	Categories []CategoryDocument `json:"Category"`
	Products   []ProductDocument  `json:"Product"`
	Users      []UserDocument     `json:"USERS"`
	Vouchers   []VoucherDocument  `json:"Vouchers"`
}

// BillDocument is one order as stored by the ordering app
type BillDocument struct {
	ID              string        `json:"id"`
	FullName        string        `json:"fullName"`
	User            string        `json:"user"`
	Address         string        `json:"address"`
	Date            Timestamp     `json:"date"`
	PaymentMethod   string        `json:"paymentMethod"`
	Status          string        `json:"status"`
	DeliveryStatus  string        `json:"deliveryStatus"`
	Items           []BillItem    `json:"items"`
	VoucherCode     string        `json:"voucherCode"`
	VoucherDiscount models.Amount `json:"voucherDiscount"`
	TotalAmount     models.Amount `json:"totalAmount"`
	StaffID         string        `json:"staffId"`
	StaffName       string        `json:"staffName"`
}

// BillItem is one line of a bill
type BillItem struct {
	Name     string        `json:"name"`
	Size     string        `json:"size"`
	Price    models.Amount `json:"price"`
	Quantity int           `json:"quantity"`
}

// StaffDocument is one staff record as stored by the admin app
type StaffDocument struct {
	ID                string          `json:"id"`
	FullName          string          `json:"fullName"`
	Email             string          `json:"email"`
	PhoneNumber       string          `json:"phoneNumber"`
	Role              string          `json:"role"`
	State             string          `json:"state"`
	StartActivityTime json.RawMessage `json:"startActivityTime"`
	EndActivityTime   json.RawMessage `json:"endActivityTime"`
}

// ParseSnapshot decodes a document store export
func ParseSnapshot(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

// Timestamp is a point in time encoded as a {seconds, nanoseconds} object,
// an RFC3339 string or epoch milliseconds. Null and "" leave it unset.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*t = Timestamp{}

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '{':
		var obj struct {
			Seconds      *int64 `json:"seconds"`
			Nanoseconds  int64  `json:"nanoseconds"`
			USeconds     *int64 `json:"_seconds"`
			UNanoseconds int64  `json:"_nanoseconds"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("invalid timestamp object: %w", err)
		}
		switch {
		case obj.Seconds != nil:
			t.Time = time.Unix(*obj.Seconds, obj.Nanoseconds)
		case obj.USeconds != nil:
			t.Time = time.Unix(*obj.USeconds, obj.UNanoseconds)
		default:
			return fmt.Errorf("timestamp object has no seconds: %s", data)
		}
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s = strings.TrimSpace(s); s == "" {
			return nil
		}
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
		t.Time = parsed
	default:
		ms, err := decimal.NewFromString(string(data))
		if err != nil {
			return fmt.Errorf("invalid timestamp %s: %w", data, err)
		}
		t.Time = time.UnixMilli(ms.IntPart())
	}

	t.Valid = true
	return nil
}

// clockValue reads an activity time that is either "HH:MM" or a timestamp
func clockValue(raw json.RawMessage, loc *time.Location) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil && (s == "" || models.IsValidClock(s)) {
		return s, nil
	}

	var ts Timestamp
	if err := ts.UnmarshalJSON(raw); err != nil {
		return "", err
	}
	if !ts.Valid {
		return "", nil
	}
	return ts.Time.In(loc).Format("15:04"), nil
}
