package domain

import (
	"regexp"
	"time"
)

// DateLayout is the wire format of every calendar date.
const DateLayout = "2006-01-02"

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDate parses YYYY-MM-DD into midnight UTC. The shape is checked before
// the calendar so that "2023-7-1" is rejected like "2023-02-30".
func ParseDate(s string) (time.Time, error) {
	if !dateRe.MatchString(s) {
		return time.Time{}, ErrInvalidDate
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD using its own calendar fields.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateIn returns the calendar date of t as observed in loc, as midnight UTC.
func DateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
