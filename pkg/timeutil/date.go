// Package timeutil provides the date arithmetic shared by the calendar
// grid and the printers.
package timeutil

import (
	"fmt"
	"time"
)

// Midnight truncates t to the start of its day, preserving the location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Sunday on or before t, at midnight.
func StartOfWeek(t time.Time) time.Time {
	t = Midnight(t)
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// StartOfMonth returns the first day of t's month, at midnight.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// DaysIn returns the number of days in t's month.
func DaysIn(t time.Time) int {
	return StartOfMonth(t).AddDate(0, 1, -1).Day()
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// FormatSeconds renders a second count as m:ss (or h:mm:ss past an
// hour), the way players label track positions. Zero and negative
// inputs render as 0:00, matching tracks whose duration is not yet
// known.
func FormatSeconds(seconds float64) string {
	if seconds <= 0 {
		return "0:00"
	}
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
