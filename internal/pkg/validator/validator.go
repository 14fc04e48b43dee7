package validator

import (
	"strconv"
	"strings"
	"time"

	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/timeofday"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IsValidTimeOfDay checks for a 24-hour "HH:MM" wall-clock string.
func IsValidTimeOfDay(s string) bool {
	return timeofday.Valid(s)
}

// IsValidHour checks for a whole hour of the day.
func IsValidHour(h int) bool {
	return h >= 0 && h <= 23
}

// Password validation: at least 4 characters, matching the short shared keys in use on site.
func IsValidPassword(p string) bool {
	return len(strings.TrimSpace(p)) >= 4
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// Itoa converts an integer to a string.
func Itoa(i int) string {
	return strconv.Itoa(i)
}
