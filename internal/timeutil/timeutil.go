package timeutil

import (
	"time"
)

// Zone is the company's local time zone (Baghdad, UTC+3)
var Zone *time.Location

func init() {
	var err error
	Zone, err = time.LoadLocation("Asia/Baghdad")
	if err != nil {
		// Fallback: fixed zone if the tz database is not available
		Zone = time.FixedZone("AST", 3*60*60) // UTC+3
	}
}

// Now returns the current time in the company zone
func Now() time.Time {
	return time.Now().In(Zone)
}

// Today returns today's date in the company zone, DateLayout formatted
func Today() string {
	return Now().Format(DateLayout)
}

// ParseDate parses a date-only value in the company zone
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, Zone)
}

// FormatDate formats a time as a date-only value in the company zone
func FormatDate(t time.Time) string {
	return t.In(Zone).Format(DateLayout)
}

// InDateRange reports whether the date-only value falls inside the inclusive
// [start, end] range. Empty bounds are open; an empty date never matches a
// bounded range. Values are ISO dates so string comparison orders correctly.
func InDateRange(date, start, end string) bool {
	if date == "" {
		return start == "" && end == ""
	}
	if start != "" && date < start {
		return false
	}
	if end != "" && date > end {
		return false
	}
	return true
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 03:04 PM"
)
