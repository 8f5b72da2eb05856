package transaction

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the wire format for transaction dates.
const DateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day component.
//
// Date-only strings are parsed at local midnight rather than UTC. Parsing
// "2025-02-01" as UTC and rendering it in a western timezone would display
// January 31st, so the local-midnight convention avoids off-by-one dates.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month, and day at local midnight.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

// ParseDate parses a date-only string ("2006-01-02") at local midnight.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

// String renders the date in wire format.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// DaysApart returns the absolute whole-day difference between two dates.
// Rounding absorbs DST transitions, where a calendar day is not 24 hours.
func (d Date) DaysApart(other Date) int {
	diff := math.Round(other.Sub(d.Time).Hours() / 24)
	return int(math.Abs(diff))
}

// SameDay reports whether two dates fall on the same calendar day.
func (d Date) SameDay(other Date) bool {
	y1, m1, d1 := d.Date()
	y2, m2, d2 := other.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// MarshalJSON renders the date as a "2006-01-02" JSON string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON parses a "2006-01-02" JSON string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
