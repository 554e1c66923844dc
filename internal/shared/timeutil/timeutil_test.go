package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationHours_SameDay(t *testing.T) {
	h, err := DurationHours("09:00:00", "18:00:00")
	assert.NoError(t, err)
	assert.InDelta(t, 9.0, h, 1e-9)

	h, err = DurationHours("09:15:00", "13:45:00")
	assert.NoError(t, err)
	assert.InDelta(t, 4.5, h, 1e-9)
}

func TestDurationHours_MidnightRollover(t *testing.T) {
	// Night shift: out reads earlier than in, so it is next-day.
	h, err := DurationHours("22:00:00", "06:00:00")
	assert.NoError(t, err)
	assert.InDelta(t, 8.0, h, 1e-9)

	h, err = DurationHours("23:30:00", "00:30:00")
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, h, 1e-9)
}

func TestDurationHours_ZeroAndBounds(t *testing.T) {
	h, err := DurationHours("09:00:00", "09:00:00")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, h)

	h, err = DurationHours("09:00:00", "08:59:59")
	assert.NoError(t, err)
	assert.Less(t, h, 24.0)
	assert.Greater(t, h, 23.9)
}

func TestDurationHours_Invalid(t *testing.T) {
	_, err := DurationHours("9am", "18:00:00")
	assert.Error(t, err)

	_, err = DurationHours("09:00:00", "")
	assert.Error(t, err)
}

func TestWorkingDaysInMonth_NoHolidays(t *testing.T) {
	// July 2025 has 31 days and starts on a Tuesday: 4 Sundays.
	n, err := WorkingDaysInMonth("2025-07", time.Sunday, nil)
	assert.NoError(t, err)
	assert.Equal(t, 27, n)

	// August 2025 has 31 days and starts on a Friday: 5 Sundays.
	n, err = WorkingDaysInMonth("2025-08", time.Sunday, nil)
	assert.NoError(t, err)
	assert.Equal(t, 26, n)
}

func TestWorkingDaysInMonth_Holidays(t *testing.T) {
	weekdayHoliday := map[string]struct{}{"2025-08-15": {}} // a Friday
	n, err := WorkingDaysInMonth("2025-08", time.Sunday, weekdayHoliday)
	assert.NoError(t, err)
	assert.Equal(t, 25, n)

	sundayHoliday := map[string]struct{}{"2025-08-03": {}} // a Sunday
	n, err = WorkingDaysInMonth("2025-08", time.Sunday, sundayHoliday)
	assert.NoError(t, err)
	assert.Equal(t, 26, n)
}

func TestWorkingDaysInMonth_InvalidMonth(t *testing.T) {
	_, err := WorkingDaysInMonth("2025-13", time.Sunday, nil)
	assert.Error(t, err)
}

func TestMonthsBetween(t *testing.T) {
	for _, tc := range []struct {
		from, to string
		want     int
	}{
		{"2025-01", "2025-01", 0},
		{"2025-01", "2025-03", 2},
		{"2024-11", "2025-02", 3},
		{"2025-03", "2025-01", -2},
	} {
		got, err := MonthsBetween(tc.from, tc.to)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestDaysInMonth(t *testing.T) {
	n, err := DaysInMonth("2024-02")
	assert.NoError(t, err)
	assert.Equal(t, 29, n)

	n, err = DaysInMonth("2025-02")
	assert.NoError(t, err)
	assert.Equal(t, 28, n)
}

func TestMonthOf(t *testing.T) {
	m, err := MonthOf("2025-08-31")
	assert.NoError(t, err)
	assert.Equal(t, "2025-08", m)

	_, err = MonthOf("31-08-2025")
	assert.Error(t, err)
}
