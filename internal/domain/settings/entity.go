package settings

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/timeofday"
)

// RowID is the primary key of the single settings row.
const RowID = "system"

// SystemSettings is process-wide configuration, mutated only by an administrator.
type SystemSettings struct {
	DefaultStartHour  int
	DefaultEndHour    int
	GlobalHourlyRate  decimal.Decimal
	AdminPasswordHash string
	// ShiftLockDate closes shift submission for every date on or before it. Empty means open.
	ShiftLockDate string
	UpdatedAt     time.Time
}

// DefaultStartTime is the start time used when neither a request nor an override exists.
func (s SystemSettings) DefaultStartTime() string {
	return timeofday.FormatHour(s.DefaultStartHour)
}

// DefaultEndTime is the end time used when neither a request nor an override exists.
func (s SystemSettings) DefaultEndTime() string {
	return timeofday.FormatHour(s.DefaultEndHour)
}

// IsSubmissionClosed reports whether employees may no longer submit a request for date.
func (s SystemSettings) IsSubmissionClosed(date string) bool {
	return s.ShiftLockDate != "" && date <= s.ShiftLockDate
}
