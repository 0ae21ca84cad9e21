package dateutil

import (
	"strconv"
	"strings"
	"time"

	"task-planner/internal/apperr"
)

// DateLayout is the wire format for all local dates.
const DateLayout = "2006-01-02"

var dayNames = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// FormatDate renders a date as YYYY-MM-DD using its local calendar
// fields. No UTC conversion happens here; converting first would shift
// evening dates by a day in western timezones.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a strict YYYY-MM-DD string into a local midnight
// date. Anything else fails with a ValidationError.
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(DateLayout) {
		return time.Time{}, apperr.Validationf("invalid date %q, expected YYYY-MM-DD", s)
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, apperr.Validationf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// DayName returns the lowercase weekday name, numbered the native way:
// sunday is 0, saturday is 6.
func DayName(t time.Time) string {
	return dayNames[int(t.Weekday())]
}

// ValidDayName reports whether s is one of the seven weekday names.
func ValidDayName(s string) bool {
	for _, name := range dayNames {
		if name == s {
			return true
		}
	}
	return false
}

// AllDayNames returns the seven weekday names, sunday first.
func AllDayNames() []string {
	names := make([]string, len(dayNames))
	copy(names, dayNames[:])
	return names
}

// WeekStart returns the Monday on or before t, at local midnight.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// WeekEnd returns the Sunday ending the ISO week containing t.
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 6)
}

// MonthBounds returns the first and last day of the given month.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// ParseClock parses a strict 24-hour HH:MM string into minutes since
// midnight. Fails with a ValidationError on anything else.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, apperr.Validationf("invalid time %q, expected HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, apperr.Validationf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, apperr.Validationf("invalid minute in %q", s)
	}
	return hour*60 + minute, nil
}
