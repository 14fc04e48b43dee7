// Package timeofday converts "HH:MM" wall-clock strings into worked durations.
//
// Shifts are assumed to start and end on the same calendar day. A shift whose end is not strictly
// after its start yields zero, as does any string that does not parse; an in-progress edit must
// never break a payroll run.
package timeofday

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// Parse returns the minutes since midnight for an "HH:MM" string.
func Parse(s string) (int, bool) {
	s = strings.TrimSpace(s)
	hh, mm, found := strings.Cut(s, ":")
	if !found || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, false
	}

	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}

	total := h*60 + m
	if total > minutesPerDay {
		return 0, false
	}
	return total, true
}

// Valid reports whether s is a well-formed "HH:MM" string.
func Valid(s string) bool {
	_, ok := Parse(s)
	return ok
}

// MinutesBetween returns the worked minutes from start to end, or 0 when either side is malformed
// or end is not after start.
func MinutesBetween(start, end string) int {
	s, ok := Parse(start)
	if !ok {
		return 0
	}
	e, ok := Parse(end)
	if !ok {
		return 0
	}
	if diff := e - s; diff > 0 {
		return diff
	}
	return 0
}

// HoursBetween is MinutesBetween expressed in fractional hours.
func HoursBetween(start, end string) float64 {
	return float64(MinutesBetween(start, end)) / 60
}

// FormatHour renders a whole hour as a zero-padded "HH:00" string.
func FormatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}
