package request

import (
	"strings"
	"time"

	"hotel-reservation/internal/pkg/errs"
)

var ErrInvalidDate = errs.Define(errs.KindValidation, "INVALID_DATE", "dates must be ISO-8601 (YYYY-MM-DD or RFC 3339)")

const dateLayout = "2006-01-02"

// Date accepts a calendar date, read as midnight UTC, or a full RFC 3339 timestamp.
type Date struct {
	time.Time
}

func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{Time: t.UTC()}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	parsed, err := ParseDate(strings.Trim(s, `"`))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.RFC3339) + `"`), nil
}
