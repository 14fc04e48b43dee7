package actionlog

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Emitter builds log entries. It never decides whether something is logged; callers invoke one
// constructor per user-facing action.
type Emitter struct {
	newID func() string
	now   func() time.Time
}

func NewEmitter(newID func() string, now func() time.Time) *Emitter {
	return &Emitter{newID: newID, now: now}
}

func (e *Emitter) Entry(action Action, details string) Entry {
	return Entry{
		ID:        e.newID(),
		Timestamp: e.now().UTC(),
		Action:    action,
		Details:   details,
	}
}

func (e *Emitter) StaffAdded(name string) Entry {
	return e.Entry(ActionStaffAdded, "Registered employee: "+name)
}

func (e *Emitter) StaffRemoved(name string) Entry {
	return e.Entry(ActionStaffRemoved, "Removed employee: "+name)
}

func (e *Emitter) StaffUpdated(name string, fields []string) Entry {
	return e.Entry(ActionStaffUpdated, fmt.Sprintf("Updated employee %s: %s", name, strings.Join(fields, ", ")))
}

func (e *Emitter) SiteAdded(name string) Entry {
	return e.Entry(ActionSiteAdded, "Deployed site: "+name)
}

func (e *Emitter) SiteRemoved(name string) Entry {
	return e.Entry(ActionSiteRemoved, "Removed site: "+name)
}

func (e *Emitter) SiteRenamed(oldName, newName string) Entry {
	return e.Entry(ActionSiteRenamed, fmt.Sprintf("Renamed site: %s -> %s", oldName, newName))
}

// SettingsChanged describes the changed settings fields. The global rate change is spelled out.
func (e *Emitter) SettingsChanged(oldRate, newRate decimal.Decimal, fields []string) Entry {
	details := "Settings changed: " + strings.Join(fields, ", ")
	if !oldRate.Equal(newRate) {
		details = fmt.Sprintf("Global rate changed: %s -> %s", oldRate.String(), newRate.String())
		if len(fields) > 1 {
			details += " (" + strings.Join(fields, ", ") + ")"
		}
	}
	return e.Entry(ActionSettingsMod, details)
}

func (e *Emitter) AdminPasswordChanged() Entry {
	return e.Entry(ActionSecurityMod, "Admin password changed")
}

// DailyVerify records one batch approval over dates.
func (e *Emitter) DailyVerify(dates []string, approved int) Entry {
	var span string
	switch len(dates) {
	case 0:
		span = "no dates"
	case 1:
		span = dates[0]
	default:
		span = dates[0] + " to " + dates[len(dates)-1]
	}
	return e.Entry(ActionDailyVerify, fmt.Sprintf("Verified attendance for %s (%d records locked)", span, approved))
}

func (e *Emitter) MasterSync(added, updated, removed int) Entry {
	return e.Entry(ActionMasterSync, fmt.Sprintf("Employee registry synced: %d added, %d updated, %d removed", added, updated, removed))
}

func (e *Emitter) AttendanceEdited(employeeName, date string, fields []string) Entry {
	return e.Entry(ActionAttendanceMod, fmt.Sprintf("Updated %s for %s: %s", employeeName, date, strings.Join(fields, ", ")))
}

func (e *Emitter) PasswordChanged(employeeName string) Entry {
	return e.Entry(ActionProfileUpdate, employeeName+" updated their password.")
}

func (e *Emitter) ShiftSubmitted(employeeName, period string, saved, skipped int) Entry {
	details := fmt.Sprintf("%s submitted shifts for %s (%d days)", employeeName, period, saved)
	if skipped > 0 {
		details += fmt.Sprintf(", %d locked days kept", skipped)
	}
	return e.Entry(ActionShiftSubmit, details)
}
