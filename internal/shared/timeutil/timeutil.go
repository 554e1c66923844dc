// Package timeutil holds the pure date and duration arithmetic shared by
// the attendance classifier, the leave ledger and the payroll engine.
package timeutil

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
	ClockLayout = "15:04:05"
)

// DurationHours returns the elapsed hours between two wall-clock
// "HH:MM:SS" values. A check-out that reads earlier than the check-in is
// treated as a next-day check-out (midnight rollover), so the result is
// always in [0, 24).
func DurationHours(checkIn, checkOut string) (float64, error) {
	in, err := time.Parse(ClockLayout, checkIn)
	if err != nil {
		return 0, fmt.Errorf("invalid check-in time %q: %w", checkIn, err)
	}
	out, err := time.Parse(ClockLayout, checkOut)
	if err != nil {
		return 0, fmt.Errorf("invalid check-out time %q: %w", checkOut, err)
	}

	diff := out.Sub(in)
	if diff < 0 {
		diff += 24 * time.Hour
	}
	return diff.Hours(), nil
}

// ParseMonth parses a "YYYY-MM" label into the first day of that month (UTC).
func ParseMonth(month string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, month)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", month, err)
	}
	return t, nil
}

// DaysInMonth returns the number of calendar days in a "YYYY-MM" month.
func DaysInMonth(month string) (int, error) {
	first, err := ParseMonth(month)
	if err != nil {
		return 0, err
	}
	return first.AddDate(0, 1, -1).Day(), nil
}

// WorkingDaysInMonth enumerates every calendar date of the month and
// counts those that are neither the weekly rest day nor present in the
// holiday set (keyed "YYYY-MM-DD"). Deterministic for a given holiday set.
func WorkingDaysInMonth(month string, restDay time.Weekday, holidays map[string]struct{}) (int, error) {
	first, err := ParseMonth(month)
	if err != nil {
		return 0, err
	}

	count := 0
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == restDay {
			continue
		}
		if _, ok := holidays[d.Format(DateLayout)]; ok {
			continue
		}
		count++
	}
	return count, nil
}

// MonthsBetween returns the integer month difference between two
// "YYYY-MM" labels. Negative when to precedes from.
func MonthsBetween(from, to string) (int, error) {
	f, err := ParseMonth(from)
	if err != nil {
		return 0, err
	}
	t, err := ParseMonth(to)
	if err != nil {
		return 0, err
	}
	return (t.Year()-f.Year())*12 + int(t.Month()) - int(f.Month()), nil
}

// MonthOf truncates a "YYYY-MM-DD" date string to its "YYYY-MM" label.
func MonthOf(date string) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", date, err)
	}
	return t.Format(MonthLayout), nil
}
