package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONTime wraps time.Time so sample timestamps coming from lab result
// uploads parse whether or not the lab software includes a timezone or
// fractional seconds.
type JSONTime time.Time

// layouts accepted on input, tried in order. Output is always RFC3339.
var jsonTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999", // lab exports without timezone
	"2006-01-02T15:04:05",
	"2006-01-02", // date-only sample records
}

func (jt *JSONTime) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	for _, layout := range jsonTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*jt = JSONTime(t)
			return nil
		}
	}
	return fmt.Errorf("JSONTime.UnmarshalJSON: cannot parse %q", s)
}

func (jt JSONTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(jt).Format(time.RFC3339))
}

// Value implements driver.Valuer so GORM can bind JSONTime as a
// TIMESTAMPTZ parameter.
func (jt JSONTime) Value() (driver.Value, error) {
	return time.Time(jt), nil
}

// Scan implements sql.Scanner for reading TIMESTAMPTZ columns back.
func (jt *JSONTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*jt = JSONTime(time.Time{})
		return nil
	case time.Time:
		*jt = JSONTime(v)
		return nil
	case []byte:
		return jt.parseDriverString(string(v))
	case string:
		return jt.parseDriverString(v)
	default:
		return fmt.Errorf("JSONTime.Scan: unsupported type %T", src)
	}
}

func (jt *JSONTime) parseDriverString(s string) error {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("JSONTime.Scan: parse %q: %w", s, err)
	}
	*jt = JSONTime(t)
	return nil
}

// Time returns the wrapped time.Time.
func (jt JSONTime) Time() time.Time { return time.Time(jt) }
