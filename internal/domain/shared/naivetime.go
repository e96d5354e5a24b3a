package shared

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// NaiveTimeLayout is the second-precision, zone-less timestamp format used on
// the wire: "2006-01-02T15:04:05".
const NaiveTimeLayout = "2006-01-02T15:04:05"

// NaiveTime is a timestamp that marshals without a zone suffix and with
// second precision. The web client both sends and compares timestamps in
// this form, so entities exposed over HTTP use it instead of time.Time.
type NaiveTime struct {
	time.Time
}

// NewNaiveTime truncates t to second precision
func NewNaiveTime(t time.Time) NaiveTime {
	return NaiveTime{t.Truncate(time.Second)}
}

// MarshalJSON implements json.Marshaler
func (n NaiveTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + n.Format(NaiveTimeLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. RFC3339 input is accepted as a
// fallback so payloads produced by standard marshalers still parse.
func (n *NaiveTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		n.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(NaiveTimeLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
	}
	n.Time = t.Truncate(time.Second)
	return nil
}

// Value implements driver.Valuer so GORM stores the underlying time
func (n NaiveTime) Value() (driver.Value, error) {
	if n.IsZero() {
		return nil, nil
	}
	return n.Time, nil
}

// Scan implements sql.Scanner
func (n *NaiveTime) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		n.Time = time.Time{}
	case time.Time:
		n.Time = v.Truncate(time.Second)
	case string:
		return n.UnmarshalJSON([]byte(`"` + v + `"`))
	case []byte:
		return n.UnmarshalJSON([]byte(`"` + string(v) + `"`))
	default:
		return fmt.Errorf("cannot scan %T into NaiveTime", value)
	}
	return nil
}
