package domain

import (
	"strings"
	"time"
)

// DateLayout is the storage and input format for calendar dates.
const DateLayout = "2006-01-02"

// DateOf strips the clock from t, keeping its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// WeekOf returns the Monday and Sunday bounding the week that contains date.
func WeekOf(date time.Time) (start, end time.Time) {
	d := DateOf(date)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	start = d.AddDate(0, 0, -offset)
	end = start.AddDate(0, 0, 6)
	return start, end
}

// MonthLabel returns the upper-case English month name of date, e.g. "MARCH".
func MonthLabel(date time.Time) string {
	return strings.ToUpper(date.Month().String())
}
