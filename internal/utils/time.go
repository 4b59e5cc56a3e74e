package utils

import (
	"fmt"
	"time"
)

// DateLayout is how calendar dates are stored in the state document.
const DateLayout = "2006-01-02"

// LoadLocation resolves a timezone name. Empty and "Local" map to time.Local.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load location %q: %w", name, err)
	}
	return loc, nil
}

// Date truncates t to midnight UTC of its calendar day in t's own location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string as a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	return time.Parse(DateLayout, s)
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// MondayIndex returns the weekday with Monday = 0 ... Sunday = 6.
func MondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekStart returns the Monday of the week containing the calendar date t.
func WeekStart(t time.Time) time.Time {
	d := Date(t)
	return d.AddDate(0, 0, -MondayIndex(d))
}

// WeeksBetween returns the signed number of whole weeks from a to b, rounded
// to the nearest week.
func WeeksBetween(a, b time.Time) int {
	days := int(Date(b).Sub(Date(a)).Hours() / 24)
	if days >= 0 {
		return (days + 3) / 7
	}
	return -((-days + 3) / 7)
}

// FloorWeeks returns floor((b - a) / 7 days) for calendar dates.
func FloorWeeks(a, b time.Time) int {
	days := int(Date(b).Sub(Date(a)).Hours() / 24)
	if days >= 0 {
		return days / 7
	}
	return -((-days + 6) / 7)
}
