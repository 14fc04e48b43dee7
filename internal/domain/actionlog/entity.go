package actionlog

import "time"

// Action is the category of a logged mutation.
type Action string

const (
	ActionDailyVerify   Action = "DAILY_VERIFY"
	ActionMasterSync    Action = "MASTER_SYNC"
	ActionStaffAdded    Action = "STAFF_ADDED"
	ActionStaffRemoved  Action = "STAFF_REMOVED"
	ActionStaffUpdated  Action = "STAFF_UPDATED"
	ActionSiteAdded     Action = "SITE_ADDED"
	ActionSiteRemoved   Action = "SITE_REMOVED"
	ActionSiteRenamed   Action = "SITE_RENAMED"
	ActionSettingsMod   Action = "SETTINGS_MOD"
	ActionSecurityMod   Action = "SECURITY_MOD"
	ActionAttendanceMod Action = "ATTENDANCE_MOD"
	ActionProfileUpdate Action = "PROFILE_UPDATE"
	ActionShiftSubmit   Action = "SHIFT_SUBMIT"
)

// DefaultRetention is how many of the newest entries the store keeps.
const DefaultRetention = 200

// Entry is one append-only audit record.
type Entry struct {
	ID        string
	Timestamp time.Time
	Action    Action
	Details   string
}
