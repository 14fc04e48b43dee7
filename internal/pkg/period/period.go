// Package period enumerates the calendar dates covered by a view window.
//
// Dates are ISO "YYYY-MM-DD" strings in the civil calendar; no time zone is involved.
package period

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidDate  = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidMode  = errors.New("invalid period mode")
	ErrInvalidPart  = errors.New("half-month part must be 1 or 2")
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
	ErrInvalidRange = errors.New("range end is before range start")
)

type Mode string

const (
	ModeDay       Mode = "DAY"
	ModeWeek      Mode = "WEEK"
	ModeMonth     Mode = "MONTH"
	ModeHalfMonth Mode = "HALF_MONTH"
)

// ParseMode accepts a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToUpper(strings.TrimSpace(s))); m {
	case ModeDay, ModeWeek, ModeMonth, ModeHalfMonth:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// ParseDate parses an ISO date into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate renders the civil date of t.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Enumerate returns the ascending dates of the window of the given mode that contains reference.
// For ModeHalfMonth the part is taken from the reference day; callers that already hold an explicit
// part use HalfMonthPeriod.Dates instead.
func Enumerate(reference string, mode Mode) ([]string, error) {
	ref, err := ParseDate(reference)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ModeDay:
		return []string{FormatDate(ref)}, nil
	case ModeWeek:
		// time.Weekday counts Sunday as 0, so a Sunday closes the week that began six days earlier.
		monday := ref.AddDate(0, 0, -((int(ref.Weekday()) + 6) % 7))
		return consecutive(monday, 7), nil
	case ModeMonth:
		return MonthDates(ref.Year(), int(ref.Month()))
	case ModeHalfMonth:
		return HalfMonthOf(ref).Dates()
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
}

// MonthDates returns every date of the given month.
func MonthDates(year, month int) ([]string, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return consecutive(first, DaysIn(year, month)), nil
}

// DaysIn returns the number of days in the month, using day 0 of the following month.
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Range returns every date from start to end inclusive.
func Range(start, end string) ([]string, error) {
	from, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := ParseDate(end)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, ErrInvalidRange
	}
	days := int(to.Sub(from).Hours()/24) + 1
	return consecutive(from, days), nil
}

// InMonth reports whether the ISO date falls in the given year and month.
// Unparsable dates are never in any month.
func InMonth(date string, year, month int) bool {
	t, err := ParseDate(date)
	if err != nil {
		return false
	}
	return t.Year() == year && int(t.Month()) == month
}

func consecutive(start time.Time, n int) []string {
	dates := make([]string, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, FormatDate(start.AddDate(0, 0, i)))
	}
	return dates
}
