package types

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Time is a time.Time that reads and writes JSON in time.DateTime layout and
// binds as a plain time value.
type Time time.Time

func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

func (t *Time) UnmarshalJSON(b []byte) (err error) {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*t = Time{}
		return nil
	}
	nt, err := time.Parse(time.DateTime, s)
	*t = Time(nt)
	return
}

func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t Time) String() string {
	return fmt.Sprintf("%q", time.Time(t).Format(time.DateTime))
}

func (t *Time) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*t = Time{}
	case time.Time:
		*t = Time(v)
	case []byte:
		return t.UnmarshalJSON(v)
	case string:
		return t.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("types: cannot scan %T into Time", value)
	}
	return nil
}

func (t Time) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return time.Time(t), nil
}
